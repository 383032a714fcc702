package engine

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrorCode classifies processor failures for FFI consumers, which see
// the code string rather than the Go error chain.
type ErrorCode string

const (
	// ErrCodeStyleNotSet: a query ran before any style was supplied.
	ErrCodeStyleNotSet ErrorCode = "STYLE_NOT_SET"
	// ErrCodeStyleInvalid: the current style text failed to compile;
	// the compile diagnostics were returned by SetStyle.
	ErrCodeStyleInvalid ErrorCode = "STYLE_INVALID"
	// ErrCodeUnknownCluster: a cluster id was never inserted.
	ErrCodeUnknownCluster ErrorCode = "UNKNOWN_CLUSTER"
	// ErrCodeBadClusterOrder: the supplied order is not renderable
	// (note numbers decreasing, unknown ids).
	ErrCodeBadClusterOrder ErrorCode = "BAD_CLUSTER_ORDER"
	// ErrCodeNoBibliography: the style has no bibliography section.
	ErrCodeNoBibliography ErrorCode = "NO_BIBLIOGRAPHY"
)

// ProcessorError is a typed failure from a processor operation.
type ProcessorError struct {
	Code    ErrorCode
	Message string

	// ClusterID is set for cluster-scoped failures.
	ClusterID string
}

func (e *ProcessorError) Error() string {
	if e.ClusterID != "" {
		return fmt.Sprintf("%s: %s (cluster %q)", e.Code, e.Message, e.ClusterID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newProcessorError(code ErrorCode, message string) error {
	return errors.WithStack(&ProcessorError{Code: code, Message: message})
}

func newUnknownCluster(id string) error {
	return errors.WithStack(&ProcessorError{
		Code:      ErrCodeUnknownCluster,
		Message:   "cluster was never inserted",
		ClusterID: id,
	})
}

// CodeOf extracts the error code, or "" for untyped errors.
func CodeOf(err error) ErrorCode {
	var pe *ProcessorError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// IsUnknownCluster reports whether err is an unknown-cluster failure.
func IsUnknownCluster(err error) bool {
	return CodeOf(err) == ErrCodeUnknownCluster
}
