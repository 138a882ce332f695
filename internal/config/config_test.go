package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-unitform/pkg/formstate"
)

const sampleYAML = `
unit:
  codeId: UNIT1
  humanReadableId: MS-222222
  modelExternalId: MODEL1
  activated: false
compartments: 3
sensorAreas: 2
strict: true
export:
  escape: true
  output: out
`

func TestParse_Sample(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Compartments)
	assert.Equal(t, 2, cfg.SensorAreas)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.Export.Escape)
	assert.False(t, cfg.Export.Sanitize)
	assert.Equal(t, "out", cfg.Export.Output)
	require.NotNil(t, cfg.Unit.CodeID)
	assert.Equal(t, "UNIT1", *cfg.Unit.CodeID)
	assert.Nil(t, cfg.Unit.HardwareID)
}

func TestParse_EmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "colour: red\n",
		"negative count": "compartments: -1\n",
		"blank output":   "export:\n  output: \" \"\n",
		"wrong type":     "unit:\n  activated: maybe\n",
		"negative areas": "sensorAreas: -2\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestApply_ReplaysSeedsInFormOrder(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	m := formstate.New()
	require.NoError(t, cfg.Apply(m))

	state := m.Snapshot()
	assert.Equal(t, "UNIT1", state.CodeID)
	assert.Equal(t, "MODEL1", state.HardwareID)
	assert.Equal(t, "MS-MODEL1", state.BluetoothID)
	assert.Equal(t, "MODEL1.v1", state.HardwareVersion)
	assert.False(t, state.Activated)
	require.Len(t, state.Compartments, 3)
	require.Len(t, state.SensorAreas, 2)
	// codeId is replayed first, so later seeds re-derive with UNIT1.
	assert.Equal(t, "UNIT1@COMPARTMENT_1", state.Compartments[0].CodeID)
	assert.Equal(t, "UNIT1@COMPARTMENT_3", state.Compartments[2].CodeID)
	assert.Equal(t, "MODEL1", state.SensorAreas[1].Sensors[0].SensorUnitHardwareID)
}

func TestApply_ShrinksSequences(t *testing.T) {
	m := formstate.New()
	m.AddCompartment()
	m.AddCompartment()

	cfg := Default()
	cfg.Compartments = 1
	require.NoError(t, cfg.Apply(m))
	assert.Equal(t, 1, m.CompartmentCount())
}

func TestApply_WrapsEditErrors(t *testing.T) {
	bad := "has space"
	cfg := Default()
	cfg.Unit.CodeID = &bad

	err := cfg.Apply(formstate.New(formstate.WithStrict(true)))
	require.ErrorIs(t, err, formstate.ErrMalformedIdentifier)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Compartments)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
