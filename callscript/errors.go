package callscript

import "errors"

var (
	// ErrInvalidAddress is returned when an action target does not decode to
	// exactly 20 bytes.
	ErrInvalidAddress = errors.New("callscript: invalid target address")

	// ErrInvalidPayloadEncoding is returned when a hex payload is not valid hex.
	ErrInvalidPayloadEncoding = errors.New("callscript: invalid payload encoding")

	// ErrPayloadTooLarge is returned when a payload length does not fit in the
	// 4-byte length field.
	ErrPayloadTooLarge = errors.New("callscript: payload too large")

	// ErrUnsupportedVersion is returned when a script does not start with a
	// known version identifier.
	ErrUnsupportedVersion = errors.New("callscript: unsupported script version")

	// ErrTruncatedScript is returned when a script ends in the middle of a record.
	ErrTruncatedScript = errors.New("callscript: truncated script")
)
