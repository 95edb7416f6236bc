package paramutil

import (
	"errors"
	"testing"
)

func TestExtractRequiredString(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]interface{}
		key     string
		want    string
		wantErr bool
	}{
		{"present", map[string]interface{}{"cluster_name": "prod"}, "cluster_name", "prod", false},
		{"missing", map[string]interface{}{}, "cluster_name", "", true},
		{"empty", map[string]interface{}{"cluster_name": ""}, "cluster_name", "", true},
		{"wrong type", map[string]interface{}{"cluster_name": 42}, "cluster_name", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractRequiredString(tt.params, tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractRequiredString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrMissingParameter) {
				t.Errorf("error = %v, want ErrMissingParameter", err)
			}
			if got != tt.want {
				t.Errorf("ExtractRequiredString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractOptionalStringWithDefault(t *testing.T) {
	params := map[string]interface{}{"format": "yaml", "empty": ""}
	if got := ExtractOptionalStringWithDefault(params, "format", "json"); got != "yaml" {
		t.Errorf("got %q, want yaml", got)
	}
	if got := ExtractOptionalStringWithDefault(params, "missing", "json"); got != "json" {
		t.Errorf("got %q, want json", got)
	}
	if got := ExtractOptionalStringWithDefault(params, "empty", "json"); got != "json" {
		t.Errorf("got %q, want json for empty value", got)
	}
}

func TestExtractBool(t *testing.T) {
	params := map[string]interface{}{"active": true, "str": "true"}
	if !ExtractBool(params, "active", false) {
		t.Error("expected true for present bool")
	}
	if !ExtractBool(params, "missing", true) {
		t.Error("expected default true for missing key")
	}
	if ExtractBool(params, "str", false) {
		t.Error("expected default for non-bool value")
	}
}

func TestExtractInt64(t *testing.T) {
	params := map[string]interface{}{
		"float": float64(100),
		"int":   42,
	}
	if got := ExtractInt64(params, "float", 0); got != 100 {
		t.Errorf("got %d, want 100", got)
	}
	if got := ExtractInt64(params, "int", 0); got != 42 {
		t.Errorf("got %d, want 42", got)
	}
	if got := ExtractInt64(params, "missing", 7); got != 7 {
		t.Errorf("got %d, want default 7", got)
	}
}

func TestExtractRequiredInt64(t *testing.T) {
	params := map[string]interface{}{"vmid": float64(101), "name": "vm"}
	got, err := ExtractRequiredInt64(params, "vmid")
	if err != nil || got != 101 {
		t.Fatalf("ExtractRequiredInt64() = %d, %v, want 101, nil", got, err)
	}
	if _, err := ExtractRequiredInt64(params, "name"); !errors.Is(err, ErrMissingParameter) {
		t.Errorf("error = %v, want ErrMissingParameter", err)
	}
	if _, err := ExtractRequiredInt64(params, "missing"); !errors.Is(err, ErrMissingParameter) {
		t.Errorf("error = %v, want ErrMissingParameter", err)
	}
}

func TestValidateEnum(t *testing.T) {
	if err := ValidateEnum("action", "start", "start", "stop", "reboot"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := ValidateEnum("action", "explode", "start", "stop", "reboot")
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("error = %v, want ErrInvalidParameter", err)
	}
	want := "invalid parameter value: action 'explode' must be one of: start, stop, reboot"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{FormatJSON, FormatYAML, FormatTable} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	if err := ValidateFormat("xml"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("error = %v, want ErrInvalidFormat", err)
	}
}
