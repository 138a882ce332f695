package formstate

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/goliatone/go-unitform/pkg/unit"
)

// Field names accepted by ApplyFieldEdit. They match the element names used
// in the exported document.
const (
	FieldCodeID             = "codeId"
	FieldHumanReadableID    = "humanReadableId"
	FieldModelExternalID    = "modelExternalId"
	FieldHardwareVersion    = "hardwareVersion"
	FieldRetailerExternalID = "retailerExternalId"
	FieldActivated          = "activated"
	FieldHardwareID         = "hardwareId"
	FieldBluetoothID        = "bluetoothId"

	FieldSensorAreaExternalIDs = "sensorAreaExternalIds"
	FieldExternalID            = "externalId"
	FieldSensorUnitHardwareID  = "sensorUnitHardwareId"
	FieldPinID                 = "pinId"
)

// RootFields lists the editable root fields in form order.
var RootFields = []string{
	FieldCodeID,
	FieldHumanReadableID,
	FieldModelExternalID,
	FieldHardwareVersion,
	FieldRetailerExternalID,
	FieldActivated,
	FieldHardwareID,
	FieldBluetoothID,
}

func rootStringField(u *unit.StorageUnit, field string) (*string, bool) {
	switch field {
	case FieldCodeID:
		return &u.CodeID, true
	case FieldHumanReadableID:
		return &u.HumanReadableID, true
	case FieldModelExternalID:
		return &u.ModelExternalID, true
	case FieldHardwareVersion:
		return &u.HardwareVersion, true
	case FieldRetailerExternalID:
		return &u.RetailerExternalID, true
	case FieldHardwareID:
		return &u.HardwareID, true
	case FieldBluetoothID:
		return &u.BluetoothID, true
	default:
		return nil, false
	}
}

// RootValue returns the display value of a root field.
func RootValue(u unit.StorageUnit, field string) (string, error) {
	if field == FieldActivated {
		return strconv.FormatBool(u.Activated), nil
	}
	ptr, ok := rootStringField(&u, field)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return *ptr, nil
}

func stringValue(field string, value any) (string, error) {
	switch typed := value.(type) {
	case string:
		return typed, nil
	case fmt.Stringer:
		return typed.String(), nil
	default:
		return "", fmt.Errorf("%w: %s expects a string, got %T", ErrInvalidValue, field, value)
	}
}

func boolValue(field string, value any) (bool, error) {
	switch typed := value.(type) {
	case bool:
		return typed, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
		if err != nil {
			return false, fmt.Errorf("%w: %s expects a boolean, got %q", ErrInvalidValue, field, typed)
		}
		return parsed, nil
	default:
		return false, fmt.Errorf("%w: %s expects a boolean, got %T", ErrInvalidValue, field, value)
	}
}

// CheckIdentifier rejects values holding whitespace or XML markup
// characters. Strict managers apply it to every string edit.
func CheckIdentifier(field, value string) error {
	for _, r := range value {
		if unicode.IsSpace(r) || strings.ContainsRune(`<>&"'`, r) {
			return fmt.Errorf("%w: %s=%q", ErrMalformedIdentifier, field, value)
		}
	}
	return nil
}
