package formstate

import "errors"

var (
	// ErrUnknownSection is returned when a Target names a section other than
	// root, compartments, or sensorAreas.
	ErrUnknownSection = errors.New("formstate: unknown section")
	// ErrUnknownField is returned when the edited field does not exist on the
	// addressed entity.
	ErrUnknownField = errors.New("formstate: unknown field")
	// ErrInvalidValue is returned when a value has the wrong type for a field.
	ErrInvalidValue = errors.New("formstate: invalid value")
	// ErrIndexOutOfRange is returned in strict mode when a Target index or
	// sub-index does not address an existing element.
	ErrIndexOutOfRange = errors.New("formstate: index out of range")
	// ErrEmptySequenceDeletion is returned in strict mode when a delete would
	// remove the last remaining compartment or sensor area.
	ErrEmptySequenceDeletion = errors.New("formstate: deletion would leave sequence empty")
	// ErrMalformedIdentifier is returned in strict mode for values holding
	// whitespace or XML markup characters.
	ErrMalformedIdentifier = errors.New("formstate: malformed identifier")
)

// ErrInvalidPath is returned by ParsePath for paths that do not address an
// editable field.
var ErrInvalidPath = errors.New("formstate: invalid field path")
