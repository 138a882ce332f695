package export

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-unitform/pkg/unit"
	"github.com/goliatone/go-unitform/pkg/xmltree"
)

const (
	// DefaultFilename is the suggested name for the exported document.
	DefaultFilename = "data.xml"
	// ContentType is the MIME type of the exported document.
	ContentType = "application/xml;charset=utf-8"
)

// Option configures an Exporter.
type Option func(*Exporter)

// WithEscaping writes field values XML-escaped instead of verbatim.
func WithEscaping(escape bool) Option {
	return func(e *Exporter) {
		e.escape = escape
	}
}

// WithSanitizer strips markup from field values before they are written and
// turns escaping on.
func WithSanitizer() Option {
	return func(e *Exporter) {
		e.sanitize = true
		e.escape = true
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Exporter turns a storage unit snapshot into the XML import document.
type Exporter struct {
	escape   bool
	sanitize bool
	logger   *zap.Logger
}

// New returns an Exporter producing the legacy unescaped document.
func New(options ...Option) *Exporter {
	e := &Exporter{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// GenerateDocument renders state. It has no side effects besides logging.
func (e *Exporter) GenerateDocument(state unit.StorageUnit) ([]byte, error) {
	if e.sanitize {
		state = e.sanitizeUnit(state)
	}
	var buf bytes.Buffer
	writer := xmltree.NewWriter(xmltree.WithEscaping(e.escape))
	if err := writer.Encode(&buf, Build(state)); err != nil {
		return nil, err
	}
	e.logger.Debug("document generated",
		zap.String("codeId", state.CodeID),
		zap.Int("compartments", len(state.Compartments)),
		zap.Int("sensorAreas", len(state.SensorAreas)),
		zap.Int("bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}

// Document renders state and wraps it for a Sink.
func (e *Exporter) Document(state unit.StorageUnit) (Document, error) {
	body, err := e.GenerateDocument(state)
	if err != nil {
		return Document{}, err
	}
	return Document{
		Name:        DefaultFilename,
		ContentType: ContentType,
		Body:        body,
	}, nil
}

// Build maps state onto the import element tree.
func Build(state unit.StorageUnit) xmltree.Node {
	activated := strconv.FormatBool(state.Activated)

	storageUnit := xmltree.Element("storageUnit",
		xmltree.Leaf("codeId", state.CodeID),
		xmltree.Leaf("humanReadableId", state.HumanReadableID),
		xmltree.Leaf("modelExternalId", state.ModelExternalID),
		xmltree.Leaf("hardwareVersion", state.HardwareVersion),
		xmltree.Leaf("retailerExternalId", state.RetailerExternalID),
		xmltree.Leaf("activated", activated),
		xmltree.Element("sensorUnits",
			xmltree.Element("sensorUnit",
				xmltree.Leaf("hardwareId", state.HardwareID),
				xmltree.Leaf("bluetoothId", state.BluetoothID),
			),
		),
	)

	compartments := xmltree.Element("compartments")
	for _, compartment := range state.Compartments {
		ids := xmltree.Element("sensorAreaExternalIds")
		for _, id := range compartment.SensorAreaExternalIDs {
			ids = ids.Append(xmltree.Leaf("Id", id))
		}
		compartments = compartments.Append(xmltree.Element("Compartment",
			xmltree.Leaf("codeId", compartment.CodeID),
			xmltree.Leaf("storageUnitCodeId", state.CodeID),
			xmltree.Leaf("humanReadableId", compartment.HumanReadableID),
			ids,
		))
	}

	sensorUnits := xmltree.Element("sensorUnits",
		xmltree.Element("sensorUnit",
			xmltree.Leaf("hardwareId", state.HardwareID),
			xmltree.Leaf("bluetoothId", state.BluetoothID),
			xmltree.Leaf("hardwareVersion", state.HardwareVersion),
			xmltree.Leaf("activated", activated),
		),
	)

	sensorAreas := xmltree.Element("sensorAreas")
	for i, area := range state.SensorAreas {
		position := i + 1
		sensors := xmltree.Element("sensors")
		for _, sensor := range area.Sensors {
			sensors = sensors.Append(xmltree.Element("Sensor",
				xmltree.Element("sensorConnection",
					xmltree.Leaf("sensorUnitHardwareId", sensor.SensorUnitHardwareID),
					xmltree.Leaf("pinId", unit.PinID(position)),
				),
			))
		}
		sensorAreas = sensorAreas.Append(xmltree.Element("SensorArea",
			xmltree.Leaf("externalId", unit.SensorAreaExternalID(state.CodeID, position)),
			sensors,
		))
	}

	return xmltree.Element("Import",
		xmltree.Element("storageUnits", storageUnit),
		compartments,
		sensorUnits,
		sensorAreas,
	)
}

var (
	valuePolicyOnce sync.Once
	valuePolicy     *bluemonday.Policy
)

func valueSanitizer() *bluemonday.Policy {
	valuePolicyOnce.Do(func() {
		valuePolicy = bluemonday.StrictPolicy()
	})
	return valuePolicy
}

// markupPattern matches complete element tags and comments. Text such as
// "A<B" or "a&amp;b" holds no element and is left as entered.
var markupPattern = regexp.MustCompile(`<(?:/?[A-Za-z][A-Za-z0-9:-]*(?:\s[^<>]*)?/?|!--[^<>]*--)>`)

// sanitizeValue strips elements from raw. It reports whether the value
// changed. The strict policy returns entity-escaped text, which is decoded
// back so the writer escapes it exactly once.
func sanitizeValue(raw string) (string, bool) {
	if !markupPattern.MatchString(raw) {
		return raw, false
	}
	cleaned := html.UnescapeString(valueSanitizer().Sanitize(raw))
	return cleaned, cleaned != raw
}

func (e *Exporter) sanitizeField(path string, value *string) {
	cleaned, changed := sanitizeValue(*value)
	if !changed {
		return
	}
	e.logger.Warn("value altered by sanitizer",
		zap.String("field", path),
		zap.String("before", *value),
		zap.String("after", cleaned),
	)
	*value = cleaned
}

func (e *Exporter) sanitizeUnit(state unit.StorageUnit) unit.StorageUnit {
	out := state.Clone()
	for _, field := range []struct {
		name  string
		value *string
	}{
		{"codeId", &out.CodeID},
		{"humanReadableId", &out.HumanReadableID},
		{"modelExternalId", &out.ModelExternalID},
		{"hardwareVersion", &out.HardwareVersion},
		{"retailerExternalId", &out.RetailerExternalID},
		{"hardwareId", &out.HardwareID},
		{"bluetoothId", &out.BluetoothID},
	} {
		e.sanitizeField("storageUnit."+field.name, field.value)
	}
	for i := range out.Compartments {
		compartment := &out.Compartments[i]
		prefix := fmt.Sprintf("compartments[%d].", i)
		e.sanitizeField(prefix+"codeId", &compartment.CodeID)
		e.sanitizeField(prefix+"humanReadableId", &compartment.HumanReadableID)
		for k := range compartment.SensorAreaExternalIDs {
			e.sanitizeField(fmt.Sprintf("%ssensorAreaExternalIds[%d]", prefix, k), &compartment.SensorAreaExternalIDs[k])
		}
	}
	for i := range out.SensorAreas {
		area := &out.SensorAreas[i]
		e.sanitizeField(fmt.Sprintf("sensorAreas[%d].externalId", i), &area.ExternalID)
		for j := range area.Sensors {
			prefix := fmt.Sprintf("sensorAreas[%d].sensors[%d].", i, j)
			e.sanitizeField(prefix+"sensorUnitHardwareId", &area.Sensors[j].SensorUnitHardwareID)
			e.sanitizeField(prefix+"pinId", &area.Sensors[j].PinID)
		}
	}
	return out
}
