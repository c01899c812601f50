package types

import "errors"

// Decoding and schema errors. Validation rejections are never reported through
// these; they are carried by Outcome.
var (
	ErrUnsupportedValue = errors.New("unsupported value")
	ErrMalformedOutcome = errors.New("malformed outcome")
	ErrUnknownParser    = errors.New("unknown parser")
	ErrInvalidSchema    = errors.New("invalid schema")
)
