package tokenizer

import "errors"

var (
	// ErrMalformedModel indicates a model file line that violates the
	// format grammar or the acyclicity invariant.
	ErrMalformedModel = errors.New("malformed model file")

	// ErrOverwriteRefused is returned by Load when the model already holds
	// symbols and the overwrite flag was not set.
	ErrOverwriteRefused = errors.New("model is not empty; pass overwrite to replace it")

	// ErrUnknownByte is returned when encoding input containing a byte (in
	// a given position class) that was never seen during training.
	ErrUnknownByte = errors.New("byte not in vocabulary")

	// ErrZeroDelta reports an attempt to adjust a counter by zero. This is
	// a programmer error, not a data error.
	ErrZeroDelta = errors.New("counter adjusted by zero")

	// ErrIndexCorrupt reports an inconsistency between the training
	// indices. Training cannot continue past it.
	ErrIndexCorrupt = errors.New("training index corrupt")
)
