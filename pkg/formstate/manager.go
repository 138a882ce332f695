package formstate

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-unitform/pkg/unit"
)

// Manager is the single owner of the form state. It is not safe for
// concurrent use; edits are expected to arrive one at a time.
type Manager struct {
	state  unit.StorageUnit
	logger *zap.Logger
	strict bool
}

// New returns a Manager seeded with unit.Default().
func New(options ...Option) *Manager {
	m := &Manager{
		state:  unit.Default(),
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// Snapshot returns a deep copy of the current state.
func (m *Manager) Snapshot() unit.StorageUnit {
	return m.state.Clone()
}

// Strict reports whether the manager rejects out-of-range and malformed edits.
func (m *Manager) Strict() bool {
	return m.strict
}

// CompartmentCount returns the number of compartments.
func (m *Manager) CompartmentCount() int {
	return len(m.state.Compartments)
}

// SensorAreaCount returns the number of sensor areas.
func (m *Manager) SensorAreaCount() int {
	return len(m.state.SensorAreas)
}

// ApplyFieldEdit sets field on the entity addressed by target. Root edits
// re-derive every compartment and sensor area (see Cascade); edits inside a
// compartment or sensor area only touch that element.
func (m *Manager) ApplyFieldEdit(target Target, field string, value any) error {
	var err error
	switch target.Section {
	case SectionRoot:
		err = m.applyRootEdit(field, value)
	case SectionCompartments:
		err = m.applyCompartmentEdit(target, field, value)
	case SectionSensorAreas:
		err = m.applySensorAreaEdit(target, field, value)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownSection, target.Section)
	}
	if err != nil {
		m.logger.Debug("field edit rejected",
			zap.Stringer("target", target),
			zap.String("field", field),
			zap.Error(err),
		)
		return err
	}
	m.logger.Debug("field edited",
		zap.Stringer("target", target),
		zap.String("field", field),
		zap.Any("value", value),
	)
	return nil
}

func (m *Manager) applyRootEdit(field string, value any) error {
	prev := m.state.Clone()
	next := m.state.Clone()

	if field == FieldActivated {
		activated, err := boolValue(field, value)
		if err != nil {
			return err
		}
		next.Activated = activated
	} else {
		ptr, ok := rootStringField(&next, field)
		if !ok {
			return fmt.Errorf("%w: %q on root", ErrUnknownField, field)
		}
		text, err := stringValue(field, value)
		if err != nil {
			return err
		}
		if err := m.checkIdentifier(field, text); err != nil {
			return err
		}
		*ptr = text

		if field == FieldModelExternalID {
			next.HardwareID = text
			next.BluetoothID = unit.BluetoothID(text)
			next.HardwareVersion = unit.HardwareVersion(text)
		}
	}

	Cascade(prev, &next)
	m.state = next
	return nil
}

// Cascade re-derives every compartment and sensor area of next. Identifiers
// interpolate prev.CodeID, the code id before the edit that produced next, so
// an edit to codeId is reflected only by the following root edit. Sensor
// hardware ids use next.HardwareID. Compartment human readable ids are kept.
func Cascade(prev unit.StorageUnit, next *unit.StorageUnit) {
	if next == nil {
		return
	}

	compartments := make([]unit.Compartment, len(next.Compartments))
	for i, compartment := range next.Compartments {
		position := i + 1
		compartment.CodeID = unit.CompartmentCodeID(prev.CodeID, position)
		compartment.SensorAreaExternalIDs = unit.SensorAreaExternalIDs(prev.CodeID, position)
		compartments[i] = compartment
	}
	next.Compartments = compartments

	areas := make([]unit.SensorArea, len(next.SensorAreas))
	for i, area := range next.SensorAreas {
		position := i + 1
		derived := unit.SensorArea{
			ExternalID: unit.SensorAreaExternalID(prev.CodeID, position),
			Sensors:    make([]unit.Sensor, len(area.Sensors)),
		}
		for j := range area.Sensors {
			derived.Sensors[j] = unit.Sensor{
				SensorUnitHardwareID: next.HardwareID,
				PinID:                unit.PinID(position),
			}
		}
		areas[i] = derived
	}
	next.SensorAreas = areas
}

func (m *Manager) applyCompartmentEdit(target Target, field string, value any) error {
	if target.Index < 0 || target.Index >= len(m.state.Compartments) {
		return m.outOfRange(target)
	}
	switch field {
	case FieldCodeID, FieldHumanReadableID:
	case FieldSensorAreaExternalIDs:
		if !target.HasSubIndex() || target.SubIndex >= unit.SensorAreaSlots {
			return m.outOfRange(target)
		}
	default:
		return fmt.Errorf("%w: %q on compartment", ErrUnknownField, field)
	}
	text, err := m.identifierValue(field, value)
	if err != nil {
		return err
	}

	compartment := &m.state.Compartments[target.Index]
	switch field {
	case FieldCodeID:
		compartment.CodeID = text
	case FieldHumanReadableID:
		compartment.HumanReadableID = text
	default:
		compartment.SensorAreaExternalIDs[target.SubIndex] = text
	}
	return nil
}

func (m *Manager) applySensorAreaEdit(target Target, field string, value any) error {
	if target.Index < 0 || target.Index >= len(m.state.SensorAreas) {
		return m.outOfRange(target)
	}
	area := &m.state.SensorAreas[target.Index]
	switch field {
	case FieldExternalID:
	case FieldSensorUnitHardwareID, FieldPinID:
		if !target.HasSubIndex() || target.SubIndex >= len(area.Sensors) {
			return m.outOfRange(target)
		}
	default:
		return fmt.Errorf("%w: %q on sensor area", ErrUnknownField, field)
	}
	text, err := m.identifierValue(field, value)
	if err != nil {
		return err
	}

	if field == FieldExternalID {
		area.ExternalID = text
		return nil
	}

	sensor := &area.Sensors[target.SubIndex]
	if field == FieldPinID {
		sensor.PinID = text
	} else {
		sensor.SensorUnitHardwareID = text
	}
	return nil
}

// AddCompartment appends a compartment derived from the current code id.
func (m *Manager) AddCompartment() {
	position := len(m.state.Compartments) + 1
	m.state.Compartments = append(m.state.Compartments, unit.NewCompartment(m.state.CodeID, position))
	m.logger.Debug("compartment added", zap.Int("position", position))
}

// DeleteCompartment drops the last compartment. Callers gate the action at
// one remaining compartment; in strict mode the manager enforces that gate.
func (m *Manager) DeleteCompartment() error {
	count := len(m.state.Compartments)
	if err := m.checkDelete(count, SectionCompartments); err != nil {
		return err
	}
	if count > 0 {
		m.state.Compartments = m.state.Compartments[:count-1]
	}
	m.logger.Debug("compartment deleted", zap.Int("remaining", len(m.state.Compartments)))
	return nil
}

// AddSensorArea appends a sensor area derived from the current code id whose
// single sensor is seeded with the current hardware id.
func (m *Manager) AddSensorArea() {
	position := len(m.state.SensorAreas) + 1
	m.state.SensorAreas = append(m.state.SensorAreas,
		unit.NewSensorArea(m.state.CodeID, m.state.HardwareID, position))
	m.logger.Debug("sensor area added", zap.Int("position", position))
}

// DeleteSensorArea drops the last sensor area; see DeleteCompartment.
func (m *Manager) DeleteSensorArea() error {
	count := len(m.state.SensorAreas)
	if err := m.checkDelete(count, SectionSensorAreas); err != nil {
		return err
	}
	if count > 0 {
		m.state.SensorAreas = m.state.SensorAreas[:count-1]
	}
	m.logger.Debug("sensor area deleted", zap.Int("remaining", len(m.state.SensorAreas)))
	return nil
}

func (m *Manager) checkDelete(count int, section Section) error {
	if m.strict && count <= 1 {
		return fmt.Errorf("%w: %s has %d element(s)", ErrEmptySequenceDeletion, section, count)
	}
	return nil
}

func (m *Manager) outOfRange(target Target) error {
	if m.strict {
		return fmt.Errorf("%w: %s", ErrIndexOutOfRange, target)
	}
	return nil
}

func (m *Manager) checkIdentifier(field, value string) error {
	if !m.strict {
		return nil
	}
	return CheckIdentifier(field, value)
}

func (m *Manager) identifierValue(field string, value any) (string, error) {
	text, err := stringValue(field, value)
	if err != nil {
		return "", err
	}
	if err := m.checkIdentifier(field, text); err != nil {
		return "", err
	}
	return text, nil
}
