package unit

// SensorAreaSlots is the fixed number of sensor area ids referenced by every
// compartment.
const SensorAreaSlots = 4

// StorageUnit is the root of the form state.
type StorageUnit struct {
	CodeID             string
	HumanReadableID    string
	ModelExternalID    string
	HardwareVersion    string
	RetailerExternalID string
	Activated          bool
	HardwareID         string
	BluetoothID        string
	Compartments       []Compartment
	SensorAreas        []SensorArea
}

// Compartment is a sub-division of the unit. Its position in
// StorageUnit.Compartments determines the derived identifiers.
type Compartment struct {
	CodeID                string
	HumanReadableID       string
	SensorAreaExternalIDs [SensorAreaSlots]string
}

// SensorArea is a logical sensing zone owning one or more sensors.
type SensorArea struct {
	ExternalID string
	Sensors    []Sensor
}

// Sensor is a single sensing element wired to a sensor unit pin.
type Sensor struct {
	SensorUnitHardwareID string
	PinID                string
}

// Default returns the initial form state: blank root fields, activated, one
// compartment and one sensor area holding a single blank sensor.
func Default() StorageUnit {
	return StorageUnit{
		Activated: true,
		Compartments: []Compartment{
			{HumanReadableID: CompartmentHumanReadableID(1)},
		},
		SensorAreas: []SensorArea{
			{Sensors: []Sensor{{}}},
		},
	}
}

// Clone returns a deep copy so callers can hold a snapshot that later edits
// do not reach.
func (u StorageUnit) Clone() StorageUnit {
	out := u
	if u.Compartments != nil {
		out.Compartments = append([]Compartment(nil), u.Compartments...)
	}
	if u.SensorAreas != nil {
		out.SensorAreas = make([]SensorArea, len(u.SensorAreas))
		for i, area := range u.SensorAreas {
			out.SensorAreas[i] = area.Clone()
		}
	}
	return out
}

// Clone returns a copy of the area with its own sensor slice.
func (a SensorArea) Clone() SensorArea {
	out := a
	if a.Sensors != nil {
		out.Sensors = append([]Sensor(nil), a.Sensors...)
	}
	return out
}
