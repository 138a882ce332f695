package unit

import "fmt"

// CompartmentCodeID returns "{codeID}@COMPARTMENT_{position}".
func CompartmentCodeID(codeID string, position int) string {
	return fmt.Sprintf("%s@%s", codeID, CompartmentHumanReadableID(position))
}

// CompartmentHumanReadableID returns the default label "COMPARTMENT_{position}".
func CompartmentHumanReadableID(position int) string {
	return fmt.Sprintf("COMPARTMENT_%d", position)
}

// SensorAreaExternalID returns "SENSOR_AREA_{codeID}~0-{slot}".
func SensorAreaExternalID(codeID string, slot int) string {
	return fmt.Sprintf("SENSOR_AREA_%s~%s", codeID, PinID(slot))
}

// SensorAreaExternalIDs returns the four sensor area ids referenced by the
// compartment at position: slots 4(position-1)+1 through 4(position-1)+4.
func SensorAreaExternalIDs(codeID string, position int) [SensorAreaSlots]string {
	var ids [SensorAreaSlots]string
	base := (position - 1) * SensorAreaSlots
	for i := range ids {
		ids[i] = SensorAreaExternalID(codeID, base+i+1)
	}
	return ids
}

// PinID returns "0-{position}".
func PinID(position int) string {
	return fmt.Sprintf("0-%d", position)
}

// BluetoothID derives the bluetooth id from a model external id.
func BluetoothID(modelExternalID string) string {
	return "MS-" + modelExternalID
}

// HardwareVersion derives the hardware version from a model external id.
func HardwareVersion(modelExternalID string) string {
	return modelExternalID + ".v1"
}

// NewCompartment builds the compartment appended at position.
func NewCompartment(codeID string, position int) Compartment {
	return Compartment{
		CodeID:                CompartmentCodeID(codeID, position),
		HumanReadableID:       CompartmentHumanReadableID(position),
		SensorAreaExternalIDs: SensorAreaExternalIDs(codeID, position),
	}
}

// NewSensorArea builds the sensor area appended at position with a single
// sensor seeded from hardwareID.
func NewSensorArea(codeID, hardwareID string, position int) SensorArea {
	return SensorArea{
		ExternalID: SensorAreaExternalID(codeID, position),
		Sensors: []Sensor{
			{SensorUnitHardwareID: hardwareID, PinID: PinID(position)},
		},
	}
}
