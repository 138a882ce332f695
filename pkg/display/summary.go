// Package display renders the current form values as a plain-text summary
// using a pongo2 template.
package display

import (
	"embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-unitform/pkg/unit"
)

//go:embed templates/summary.tpl
var templatesFS embed.FS

const summaryTemplate = "templates/summary.tpl"

type unitView struct {
	CodeID             string
	HumanReadableID    string
	ModelExternalID    string
	HardwareVersion    string
	RetailerExternalID string
	Activated          string
	HardwareID         string
	BluetoothID        string
}

type compartmentView struct {
	Position              int
	CodeID                string
	HumanReadableID       string
	SensorAreaExternalIDs []string
}

type sensorAreaView struct {
	Position   int
	ExternalID string
	Sensors    []unit.Sensor
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTemplate replaces the embedded summary template.
func WithTemplate(source string) Option {
	return func(r *Renderer) {
		r.source = source
	}
}

// Renderer turns a unit snapshot into text.
type Renderer struct {
	source   string
	template *pongo2.Template
}

// New compiles the summary template.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.source == "" {
		data, err := templatesFS.ReadFile(summaryTemplate)
		if err != nil {
			return nil, fmt.Errorf("display: read %s: %w", summaryTemplate, err)
		}
		r.source = string(data)
	}
	tpl, err := pongo2.FromString(r.source)
	if err != nil {
		return nil, fmt.Errorf("display: compile template: %w", err)
	}
	r.template = tpl
	return r, nil
}

// Render executes the template against state.
func (r *Renderer) Render(state unit.StorageUnit) (string, error) {
	out, err := r.template.Execute(templateContext(state))
	if err != nil {
		return "", fmt.Errorf("display: render: %w", err)
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

func templateContext(state unit.StorageUnit) pongo2.Context {
	compartments := make([]compartmentView, len(state.Compartments))
	for i, c := range state.Compartments {
		compartments[i] = compartmentView{
			Position:              i + 1,
			CodeID:                c.CodeID,
			HumanReadableID:       c.HumanReadableID,
			SensorAreaExternalIDs: append([]string(nil), c.SensorAreaExternalIDs[:]...),
		}
	}
	areas := make([]sensorAreaView, len(state.SensorAreas))
	for i, a := range state.SensorAreas {
		areas[i] = sensorAreaView{
			Position:   i + 1,
			ExternalID: a.ExternalID,
			Sensors:    a.Sensors,
		}
	}
	return pongo2.Context{
		"unit": unitView{
			CodeID:             state.CodeID,
			HumanReadableID:    state.HumanReadableID,
			ModelExternalID:    state.ModelExternalID,
			HardwareVersion:    state.HardwareVersion,
			RetailerExternalID: state.RetailerExternalID,
			Activated:          strconv.FormatBool(state.Activated),
			HardwareID:         state.HardwareID,
			BluetoothID:        state.BluetoothID,
		},
		"compartments": compartments,
		"sensorAreas":  areas,
	}
}
