package services

import (
	"errors"
	"fmt"
	"strings"

	"mediabox/logger"
	"mediabox/metrics"
)

// AppError is a hard failure with the HTTP status it should surface as.
type AppError struct {
	HTTPCode int
	Message  string
	Err      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newAppError(httpCode int, message string, err error) *AppError {
	return &AppError{HTTPCode: httpCode, Message: message, Err: err}
}

// AsAppError extracts an *AppError from err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Soft failure operations.
const (
	OpSaveMetadata = "save_metadata"
	OpDeleteBlob   = "delete_blob"
	OpSignURL      = "sign_url"
	OpListRecords  = "list_records"
)

// SoftFailure is an error that was logged and swallowed while the surrounding
// operation still succeeded.
type SoftFailure struct {
	Op   string
	Path string
	Err  error
}

func (f SoftFailure) String() string {
	if f.Path == "" {
		return fmt.Sprintf("%s: %v", f.Op, f.Err)
	}
	return fmt.Sprintf("%s %s: %v", f.Op, f.Path, f.Err)
}

// Outcome collects the soft failures of one operation.
type Outcome struct {
	SoftFailures []SoftFailure
}

func (o *Outcome) Degraded() bool {
	return len(o.SoftFailures) > 0
}

func (o *Outcome) Warnings() []string {
	out := make([]string, 0, len(o.SoftFailures))
	for _, f := range o.SoftFailures {
		out = append(out, f.String())
	}
	return out
}

func (o *Outcome) recordSoftFailure(op string, path string, err error) {
	o.SoftFailures = append(o.SoftFailures, SoftFailure{Op: op, Path: path, Err: err})
	metrics.SoftFailuresTotal.WithLabelValues(op).Inc()
	logger.Warnf("%s failed, continuing: %s", strings.ReplaceAll(op, "_", " "), SoftFailure{Op: op, Path: path, Err: err})
}
