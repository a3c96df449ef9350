// Package errors provides structured error handling and warnings for ranger.
//
// Error types carry enough context to be logged as structured events, and
// every constructor attaches a stack trace via cockroachdb/errors. The rest
// of the module imports only this package.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("ranger warning: %v\n", w)
	}
)

// SetWarningHandler replaces the handler invoked by Warn. Passing a handler
// that does nothing silences warnings entirely.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// Warn raises a non-fatal warning through the registered handler.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	if warningHandler != nil {
		warningHandler(w)
	}
}

// NotFittedError is returned when Predict or a result accessor is called on a
// forest that has not been trained or loaded.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("ranger: %s: this forest is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError reports a mismatch between expected and actual data shape.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/variables
}

func (e *DimensionError) Error() string {
	axisName := "variables"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("ranger: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError reports an invalid configuration parameter, such as a
// dependent variable index outside the data or an mtry larger than the
// number of split candidates.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ranger: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError with a stack trace.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// WrongTreeTypeError is returned when a serialized forest carries a tree-type
// tag other than classification.
type WrongTreeTypeError struct {
	Expected uint32
	Got      uint32
}

func (e *WrongTreeTypeError) Error() string {
	return fmt.Sprintf("ranger: wrong tree type %d in forest file, expected %d (classification)", e.Got, e.Expected)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *WrongTreeTypeError) MarshalZerologObject(event *zerolog.Event) {
	event.Uint32("expected", e.Expected).
		Uint32("got", e.Got).
		Str("type", "WrongTreeTypeError")
}

// NewWrongTreeTypeError creates a WrongTreeTypeError with a stack trace.
func NewWrongTreeTypeError(expected, got uint32) error {
	err := &WrongTreeTypeError{Expected: expected, Got: got}
	return errors.WithStack(err)
}

// UndefinedMetricWarning is raised when a metric cannot be computed, for
// example the out-of-bag error when a sample was drawn into every bootstrap
// and therefore never held out.
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined due to %s and the affected samples are excluded.", w.Metric, w.Condition)
}

// NewUndefinedMetricWarning creates a new UndefinedMetricWarning.
func NewUndefinedMetricWarning(metric, condition string) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition}
}

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack attaches a stack trace to err.
func WithStack(err error) error {
	return errors.WithStack(err)
}

var (
	// ErrEmptyData is returned when a dataset has no rows or no columns.
	ErrEmptyData = New("empty data")
)
