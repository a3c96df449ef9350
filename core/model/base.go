// Package model provides the estimator lifecycle state shared by trainable
// types and gob-based persistence helpers for their snapshots.
package model

import (
	"github.com/bgreenwell/ranger/pkg/errors"
)

// EstimatorState tracks where an estimator is in its lifecycle.
type EstimatorState int

const (
	// NotFitted is the state before training: a forest in this state has
	// no trees and no class table, so prediction and result accessors are
	// invalid.
	NotFitted EstimatorState = iota
	// Fitted is the state after a successful Fit or after loading a saved
	// forest: the trees and the class table are in place and read-only.
	Fitted
)

// BaseEstimator is embedded by every trainable type in the module and
// guards the methods that require a trained model.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the estimator has been trained or loaded.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// RequireFitted returns a NotFittedError naming the model and the method
// that was called too early, or nil when the estimator is ready.
func (e *BaseEstimator) RequireFitted(modelName, method string) error {
	if e.state != Fitted {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}

// SetFitted marks the estimator as trained.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the estimator to the untrained state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
