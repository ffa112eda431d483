package codec

import "errors"

// Sentinel errors for the change-kind registry and codecs.
var (
	// ErrKindAlreadyRegistered is returned when a kind is registered twice.
	ErrKindAlreadyRegistered = errors.New("change kind already registered")

	// ErrUnknownKind is returned when encoding or decoding a kind with no
	// registered codec.
	ErrUnknownKind = errors.New("unknown change kind")

	// ErrUnknownCell is returned when a decoded cell reference does not
	// resolve in the target model.
	ErrUnknownCell = errors.New("unknown cell reference")

	// ErrMalformedChange is returned when encoded data is missing
	// required fields.
	ErrMalformedChange = errors.New("malformed change data")

	// ErrUnsupportedChange is returned when a codec is handed a change of
	// the wrong concrete type.
	ErrUnsupportedChange = errors.New("unsupported change type")
)
