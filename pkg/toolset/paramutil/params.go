package paramutil

import (
	"fmt"
	"strings"
)

// ExtractRequiredString extracts a required string parameter from params map.
// Returns ErrMissingParameter if the parameter is missing or empty.
func ExtractRequiredString(params map[string]interface{}, key string) (string, error) {
	if v, ok := params[key].(string); ok && v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", ErrMissingParameter, key)
}

// ExtractOptionalString extracts an optional string parameter.
// Returns empty string if the parameter is missing.
func ExtractOptionalString(params map[string]interface{}, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

// ExtractOptionalStringWithDefault extracts an optional string parameter with
// a default value. Returns defaultValue if the parameter is missing or empty.
func ExtractOptionalStringWithDefault(params map[string]interface{}, key, defaultValue string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return defaultValue
}

// ExtractBool extracts a boolean parameter with a default value
func ExtractBool(params map[string]interface{}, key string, defaultValue bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return defaultValue
}

// ExtractInt64 extracts an int64 parameter with a default value. JSON numbers
// arrive as float64, so both numeric representations are accepted.
func ExtractInt64(params map[string]interface{}, key string, defaultValue int64) int64 {
	switch v := params[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return defaultValue
}

// ExtractRequiredInt64 extracts a required integer parameter.
// Returns ErrMissingParameter if the parameter is missing or not a number.
func ExtractRequiredInt64(params map[string]interface{}, key string) (int64, error) {
	switch v := params[key].(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	}
	return 0, fmt.Errorf("%w: %s", ErrMissingParameter, key)
}

// ExtractFloat64 extracts a float64 parameter with a default value.
func ExtractFloat64(params map[string]interface{}, key string, defaultValue float64) float64 {
	if v, ok := params[key].(float64); ok {
		return v
	}
	return defaultValue
}

// ExtractRequiredFloat64 extracts a required float parameter.
func ExtractRequiredFloat64(params map[string]interface{}, key string) (float64, error) {
	if v, ok := params[key].(float64); ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrMissingParameter, key)
}

// ValidateEnum checks that value is one of the allowed values.
// The check runs before any backend call is attempted.
func ValidateEnum(key, value string, allowed ...string) error {
	for _, candidate := range allowed {
		if value == candidate {
			return nil
		}
	}
	return fmt.Errorf("%w: %s '%s' must be one of: %s",
		ErrInvalidParameter, key, value, strings.Join(allowed, ", "))
}

// ExtractFormat extracts the format parameter with "json" as default.
func ExtractFormat(params map[string]interface{}) string {
	return ExtractOptionalStringWithDefault(params, ParamFormat, FormatJSON)
}

// ValidateFormat validates that the format is one of the supported formats
func ValidateFormat(format string) error {
	switch format {
	case FormatJSON, FormatYAML, FormatTable:
		return nil
	default:
		return fmt.Errorf("%w: %s (supported: json, yaml, table)", ErrInvalidFormat, format)
	}
}

// BoolPtr returns a pointer to a boolean value
func BoolPtr(b bool) *bool {
	return &b
}
