// Package prompt drives the storage unit form from a terminal. A Session asks
// for the root fields, then loops over a menu that edits compartments and
// sensor areas, grows or shrinks either sequence, and exports data.xml.
package prompt

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-unitform/pkg/export"
	"github.com/goliatone/go-unitform/pkg/formstate"
	"github.com/goliatone/go-unitform/pkg/unit"
)

// Menu entries, in display order.
const (
	ActionEditCompartment = iota
	ActionEditSensorArea
	ActionAddCompartment
	ActionDeleteCompartment
	ActionAddSensorArea
	ActionDeleteSensorArea
	ActionShow
	ActionExport
	ActionQuit
)

var menuOptions = []string{
	"Edit compartment",
	"Edit sensor area",
	"Add compartment",
	"Delete compartment",
	"Add sensor area",
	"Delete sensor area",
	"Show summary",
	"Export data.xml",
	"Quit",
}

type fieldLabel struct {
	message string
	help    string
}

var rootLabels = map[string]fieldLabel{
	formstate.FieldCodeID:             {"Code ID", "e.g., 0123456789ac"},
	formstate.FieldHumanReadableID:    {"Human Readable ID", "e.g., MS-222222"},
	formstate.FieldModelExternalID:    {"Model External ID", "e.g., a1b2c3d4e5f6; also sets hardware id, bluetooth id and version"},
	formstate.FieldHardwareVersion:    {"Hardware Version", "e.g., 2023-11-15.1"},
	formstate.FieldRetailerExternalID: {"Retailer External ID", "e.g., RET-001"},
	formstate.FieldActivated:          {"Activated", ""},
	formstate.FieldHardwareID:         {"Sensor Unit Hardware ID", ""},
	formstate.FieldBluetoothID:        {"Sensor Unit Bluetooth ID", ""},
}

// Summarizer renders the current state for the "Show summary" action.
type Summarizer func(unit.StorageUnit) (string, error)

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithExporter overrides the exporter used by the export action.
func WithExporter(exporter *export.Exporter) Option {
	return func(s *Session) {
		if exporter != nil {
			s.exporter = exporter
		}
	}
}

// WithSink sets where exported documents go.
func WithSink(sink export.Sink) Option {
	return func(s *Session) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithSummarizer enables the summary action.
func WithSummarizer(fn Summarizer) Option {
	return func(s *Session) {
		s.summarize = fn
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session is one interactive editing run over a Manager.
type Session struct {
	manager   *formstate.Manager
	driver    PromptDriver
	exporter  *export.Exporter
	sink      export.Sink
	summarize Summarizer
	logger    *zap.Logger
	exports   int
}

// NewSession builds a session with a survey driver, the legacy exporter, and
// a FileSink writing into the working directory.
func NewSession(manager *formstate.Manager, options ...Option) (*Session, error) {
	if manager == nil {
		return nil, ErrNoManager
	}
	s := &Session{
		manager:  manager,
		exporter: export.New(),
		sink:     export.FileSink{Dir: "."},
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver()
	}
	return s, nil
}

// Exports reports how many documents the session saved.
func (s *Session) Exports() int {
	return s.exports
}

// Run prompts the root fields and then serves the menu until Quit.
func (s *Session) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("prompt: context is required")
	}
	if err := s.promptRoot(ctx); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := s.driver.Select(ctx, SelectConfig{
			Message: fmt.Sprintf("Compartments: %d, sensor areas: %d",
				s.manager.CompartmentCount(), s.manager.SensorAreaCount()),
			Options: menuOptions,
		})
		if err != nil {
			return err
		}
		if choice == ActionQuit {
			return nil
		}
		if err := s.dispatch(ctx, choice); err != nil {
			return err
		}
	}
}

func (s *Session) dispatch(ctx context.Context, choice int) error {
	switch choice {
	case ActionEditCompartment:
		return s.editCompartment(ctx)
	case ActionEditSensorArea:
		return s.editSensorArea(ctx)
	case ActionAddCompartment:
		s.manager.AddCompartment()
		return nil
	case ActionDeleteCompartment:
		if s.manager.CompartmentCount() <= 1 {
			return s.driver.Info(ctx, "A storage unit needs at least one compartment.")
		}
		return s.manager.DeleteCompartment()
	case ActionAddSensorArea:
		s.manager.AddSensorArea()
		return nil
	case ActionDeleteSensorArea:
		if s.manager.SensorAreaCount() <= 1 {
			return s.driver.Info(ctx, "A storage unit needs at least one sensor area.")
		}
		return s.manager.DeleteSensorArea()
	case ActionShow:
		return s.show(ctx)
	case ActionExport:
		return s.export(ctx)
	default:
		return s.driver.Info(ctx, fmt.Sprintf("Unknown action %d", choice))
	}
}

func (s *Session) promptRoot(ctx context.Context) error {
	for _, field := range formstate.RootFields {
		label := rootLabels[field]
		if field == formstate.FieldActivated {
			current := s.manager.Snapshot().Activated
			answer, err := s.driver.Confirm(ctx, ConfirmConfig{
				Message: label.message,
				Default: current,
				Help:    label.help,
			})
			if err != nil {
				return err
			}
			if err := s.manager.ApplyFieldEdit(formstate.Root(), field, answer); err != nil {
				return err
			}
			continue
		}

		current, err := formstate.RootValue(s.manager.Snapshot(), field)
		if err != nil {
			return err
		}
		if err := s.promptText(ctx, formstate.Root(), field, label, current); err != nil {
			return err
		}
	}
	return nil
}

// promptText asks until the manager accepts the value. Strict managers also
// hand the driver a validator so survey re-asks inline. Rejections the user
// can fix are reported and re-asked; anything else ends the session.
func (s *Session) promptText(ctx context.Context, target formstate.Target, field string, label fieldLabel, current string) error {
	cfg := InputConfig{
		Message: label.message,
		Default: current,
		Help:    label.help,
	}
	if s.manager.Strict() {
		cfg.Validator = func(answer string) error {
			return formstate.CheckIdentifier(field, answer)
		}
	}
	for {
		answer, err := s.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		err = s.manager.ApplyFieldEdit(target, field, answer)
		if err == nil {
			return nil
		}
		if errors.Is(err, formstate.ErrMalformedIdentifier) || errors.Is(err, formstate.ErrInvalidValue) {
			_ = s.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", label.message, err))
			continue
		}
		return err
	}
}

func (s *Session) choose(ctx context.Context, message, prefix string, count int) (int, error) {
	options := make([]string, count)
	for i := range options {
		options[i] = fmt.Sprintf("%s %d", prefix, i+1)
	}
	return s.driver.Select(ctx, SelectConfig{Message: message, Options: options})
}

func (s *Session) editCompartment(ctx context.Context) error {
	count := s.manager.CompartmentCount()
	if count == 0 {
		return s.driver.Info(ctx, "There are no compartments to edit.")
	}
	index, err := s.choose(ctx, "Which compartment?", "Compartment", count)
	if err != nil {
		return err
	}
	if index < 0 || index >= count {
		return nil
	}

	current := s.manager.Snapshot().Compartments[index]
	if err := s.promptText(ctx, formstate.Compartment(index), formstate.FieldHumanReadableID,
		fieldLabel{message: "Human Readable ID"}, current.HumanReadableID); err != nil {
		return err
	}
	if err := s.promptText(ctx, formstate.Compartment(index), formstate.FieldCodeID,
		fieldLabel{message: "Code ID"}, current.CodeID); err != nil {
		return err
	}
	for slot, id := range current.SensorAreaExternalIDs {
		label := fieldLabel{message: fmt.Sprintf("Sensor Area External ID %d", slot+1)}
		if err := s.promptText(ctx, formstate.CompartmentSlot(index, slot),
			formstate.FieldSensorAreaExternalIDs, label, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) editSensorArea(ctx context.Context) error {
	count := s.manager.SensorAreaCount()
	if count == 0 {
		return s.driver.Info(ctx, "There are no sensor areas to edit.")
	}
	index, err := s.choose(ctx, "Which sensor area?", "Sensor area", count)
	if err != nil {
		return err
	}
	if index < 0 || index >= count {
		return nil
	}

	current := s.manager.Snapshot().SensorAreas[index]
	if err := s.promptText(ctx, formstate.SensorArea(index), formstate.FieldExternalID,
		fieldLabel{message: "External ID"}, current.ExternalID); err != nil {
		return err
	}
	for i, sensor := range current.Sensors {
		target := formstate.Sensor(index, i)
		if err := s.promptText(ctx, target, formstate.FieldSensorUnitHardwareID,
			fieldLabel{message: fmt.Sprintf("Sensor %d Hardware ID", i+1)}, sensor.SensorUnitHardwareID); err != nil {
			return err
		}
		if err := s.promptText(ctx, target, formstate.FieldPinID,
			fieldLabel{message: fmt.Sprintf("Sensor %d Pin ID", i+1)}, sensor.PinID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) show(ctx context.Context) error {
	if s.summarize == nil {
		return s.driver.Info(ctx, "Summary is not available.")
	}
	text, err := s.summarize(s.manager.Snapshot())
	if err != nil {
		return err
	}
	return s.driver.Info(ctx, text)
}

func (s *Session) export(ctx context.Context) error {
	doc, err := s.exporter.Document(s.manager.Snapshot())
	if err != nil {
		return err
	}
	if err := s.sink.Save(ctx, doc); err != nil {
		return err
	}
	s.exports++
	s.logger.Info("document exported", zap.String("name", doc.Name), zap.Int("bytes", len(doc.Body)))
	return s.driver.Info(ctx, fmt.Sprintf("Saved %s", doc.Name))
}
