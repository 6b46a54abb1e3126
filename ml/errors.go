package ml

import "errors"

var (
	// ErrContract reports a caller-side contract violation, such as a
	// vector whose length does not match the trained vocabulary size.
	ErrContract = errors.New("contract violation")
	// ErrCorruptModel reports a persisted model that failed validation.
	ErrCorruptModel = errors.New("corrupt model")
	// ErrModelNotFound reports a missing model file.
	ErrModelNotFound = errors.New("model not found, run `train` first")
	// ErrNotTrained reports use of a classifier before Fit.
	ErrNotTrained = errors.New("model not trained")
)
