package kube

import (
	"errors"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// Invoke runs one operation against a backend sub-handle and guarantees that
// no failure mode escapes as a panic: the machinery recovers anything the
// client stack throws and every error comes back as a single-line reason.
// All Kubernetes API call sites go through Invoke or Run.
func Invoke[T any](op func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	result, err = op()
	if err != nil {
		err = errors.New(Reason(err))
	}
	return result, err
}

// Run is Invoke for operations that produce no value.
func Run(op func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	if opErr := op(); opErr != nil {
		return errors.New(Reason(opErr))
	}
	return nil
}

// Reason reduces an error from the Kubernetes API machinery to its most
// descriptive single-line message. API errors carry a metav1.Status: its
// short reason replaces the verbose default text, and the detailed status
// message replaces the reason when the server supplied one. Anything else
// falls back to the error's own text.
func Reason(err error) string {
	msg := err.Error()

	var status apierrors.APIStatus
	if errors.As(err, &status) {
		st := status.Status()
		if st.Reason != "" {
			msg = string(st.Reason)
		}
		if st.Message != "" {
			msg = st.Message
		}
	}
	return msg
}
