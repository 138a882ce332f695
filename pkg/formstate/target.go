package formstate

import (
	"fmt"
	"strconv"
	"strings"
)

// Section names the part of the form a Target points into.
type Section string

const (
	SectionRoot         Section = ""
	SectionCompartments Section = "compartments"
	SectionSensorAreas  Section = "sensorAreas"
)

// noSubIndex marks a Target without a sub-index.
const noSubIndex = -1

// Target addresses the entity an edit applies to. Use the constructors; the
// zero value addresses the root unit.
type Target struct {
	Section  Section
	Index    int
	SubIndex int
}

// Root addresses the storage unit itself.
func Root() Target {
	return Target{Section: SectionRoot, SubIndex: noSubIndex}
}

// Compartment addresses the compartment at index (0-based).
func Compartment(index int) Target {
	return Target{Section: SectionCompartments, Index: index, SubIndex: noSubIndex}
}

// CompartmentSlot addresses one element of a compartment's
// sensorAreaExternalIds.
func CompartmentSlot(index, slot int) Target {
	return Target{Section: SectionCompartments, Index: index, SubIndex: slot}
}

// SensorArea addresses the sensor area at index (0-based).
func SensorArea(index int) Target {
	return Target{Section: SectionSensorAreas, Index: index, SubIndex: noSubIndex}
}

// Sensor addresses one sensor inside a sensor area.
func Sensor(area, sensor int) Target {
	return Target{Section: SectionSensorAreas, Index: area, SubIndex: sensor}
}

// HasSubIndex reports whether the target carries a sub-index.
func (t Target) HasSubIndex() bool {
	return t.Section != SectionRoot && t.SubIndex >= 0
}

func (t Target) String() string {
	switch {
	case t.Section == SectionRoot:
		return "root"
	case t.HasSubIndex():
		return fmt.Sprintf("%s[%d][%d]", t.Section, t.Index, t.SubIndex)
	default:
		return fmt.Sprintf("%s[%d]", t.Section, t.Index)
	}
}

// ParsePath resolves a dotted field path into a Target and field name:
//
//	codeId
//	compartments.0.humanReadableId
//	compartments.0.sensorAreaExternalIds.2
//	sensorAreas.1.externalId
//	sensorAreas.1.sensors.0.pinId
func ParsePath(path string) (Target, string, error) {
	segments := strings.Split(strings.TrimSpace(path), ".")
	for _, segment := range segments {
		if segment == "" {
			return Target{}, "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}
	if len(segments) == 1 {
		return Root(), segments[0], nil
	}
	if len(segments) < 3 {
		return Target{}, "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	index, err := parseIndex(path, segments[1])
	if err != nil {
		return Target{}, "", err
	}

	switch Section(segments[0]) {
	case SectionCompartments:
		switch {
		case len(segments) == 3 && segments[2] != FieldSensorAreaExternalIDs:
			return Compartment(index), segments[2], nil
		case len(segments) == 4 && segments[2] == FieldSensorAreaExternalIDs:
			slot, err := parseIndex(path, segments[3])
			if err != nil {
				return Target{}, "", err
			}
			return CompartmentSlot(index, slot), segments[2], nil
		}
	case SectionSensorAreas:
		switch {
		case len(segments) == 3 && !isSensorField(segments[2]):
			return SensorArea(index), segments[2], nil
		case len(segments) == 5 && segments[2] == "sensors":
			sensor, err := parseIndex(path, segments[3])
			if err != nil {
				return Target{}, "", err
			}
			return Sensor(index, sensor), segments[4], nil
		}
	default:
		return Target{}, "", fmt.Errorf("%w: %q", ErrUnknownSection, segments[0])
	}
	return Target{}, "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
}

// isSensorField reports whether field lives on a sensor and so needs a
// sensor index.
func isSensorField(field string) bool {
	switch field {
	case "sensors", FieldSensorUnitHardwareID, FieldPinID:
		return true
	}
	return false
}

func parseIndex(path, raw string) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("%w: %q has bad index %q", ErrInvalidPath, path, raw)
	}
	return index, nil
}
