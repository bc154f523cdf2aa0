package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidKind       = errors.New("invalid item kind")
	ErrNoFieldsProvided  = errors.New("no item fields provided")
	ErrUnexpectedField   = errors.New("field is not defined for the item kind")
	ErrMissingField      = errors.New("required field is empty")
	ErrFieldTooLong      = errors.New("field value is too long")
	ErrFieldNotUTF8      = errors.New("field value is not valid UTF-8")
	ErrInvalidSnapshot   = errors.New("invalid vault snapshot")
	ErrUnsupportedFormat = errors.New("unsupported snapshot version")
)
