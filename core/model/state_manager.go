// Package model holds what every estimator in linreg shares: fitted-state
// bookkeeping, the Fitter/Predictor contracts, and the persisted coefficient
// pair with its two-scalar file format.
package model

import (
	"sync"

	"github.com/YuminosukeSato/linreg/pkg/errors"
)

// StateManager tracks whether an estimator has been fitted and on how many
// samples. Estimators hold it by pointer (composition instead of embedding).
type StateManager struct {
	mu       sync.RWMutex
	fitted   bool
	nSamples int
}

// NewStateManager creates an unfitted StateManager.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted marks the model as fitted on nSamples samples.
func (s *StateManager) SetFitted(nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
	s.nSamples = nSamples
}

// Reset returns the state to unfitted.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nSamples = 0
}

// NSamples returns the number of samples seen by the last successful fit.
func (s *StateManager) NSamples() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nSamples
}

// RequireFitted returns a NotFittedError naming modelName and method when
// the model has not been fitted.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}
