package kube

import (
	"errors"
	"strings"
	"testing"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

func TestReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "plain error",
			err:  errors.New("dial tcp: connection refused"),
			want: "dial tcp: connection refused",
		},
		{
			name: "status with reason only",
			err: &apierrors.StatusError{ErrStatus: metav1.Status{
				Reason: metav1.StatusReasonForbidden,
			}},
			want: "Forbidden",
		},
		{
			name: "status message wins over reason",
			err: &apierrors.StatusError{ErrStatus: metav1.Status{
				Reason:  metav1.StatusReasonNotFound,
				Message: `pods "web-0" not found`,
			}},
			want: `pods "web-0" not found`,
		},
		{
			name: "generated not-found error",
			err: apierrors.NewNotFound(
				schema.GroupResource{Resource: "nodes"}, "n1"),
			want: `nodes "n1" not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reason(tt.err); got != tt.want {
				t.Errorf("Reason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInvoke(t *testing.T) {
	t.Run("passes values through", func(t *testing.T) {
		got, err := Invoke(func() (int, error) { return 42, nil })
		if err != nil {
			t.Fatalf("Invoke() error = %v", err)
		}
		if got != 42 {
			t.Errorf("Invoke() = %d, want 42", got)
		}
	})

	t.Run("converts api errors to reasons", func(t *testing.T) {
		_, err := Invoke(func() (int, error) {
			return 0, apierrors.NewNotFound(schema.GroupResource{Resource: "pods"}, "web-0")
		})
		if err == nil {
			t.Fatal("Expected error")
		}
		if err.Error() != `pods "web-0" not found` {
			t.Errorf("Unexpected reason: %v", err)
		}
	})

	t.Run("recovers panics", func(t *testing.T) {
		_, err := Invoke(func() (int, error) {
			panic("nil pointer in client machinery")
		})
		if err == nil {
			t.Fatal("Expected error from recovered panic")
		}
		if !strings.Contains(err.Error(), "nil pointer in client machinery") {
			t.Errorf("Unexpected recovered reason: %v", err)
		}
	})
}

func TestRun(t *testing.T) {
	if err := Run(func() error { return nil }); err != nil {
		t.Errorf("Run() error = %v", err)
	}

	err := Run(func() error {
		return apierrors.NewBadRequest("field selector is invalid")
	})
	if err == nil {
		t.Fatal("Expected error")
	}
	if err.Error() != "field selector is invalid" {
		t.Errorf("Unexpected reason: %v", err)
	}

	err = Run(func() error { panic("boom") })
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Expected recovered panic, got %v", err)
	}
}
