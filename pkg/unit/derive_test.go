package unit_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-unitform/pkg/unit"
)

func TestSensorAreaExternalIDs(t *testing.T) {
	cases := []struct {
		name     string
		codeID   string
		position int
		want     [unit.SensorAreaSlots]string
	}{
		{
			name:     "first compartment",
			codeID:   "UNIT1",
			position: 1,
			want: [unit.SensorAreaSlots]string{
				"SENSOR_AREA_UNIT1~0-1",
				"SENSOR_AREA_UNIT1~0-2",
				"SENSOR_AREA_UNIT1~0-3",
				"SENSOR_AREA_UNIT1~0-4",
			},
		},
		{
			name:     "third compartment",
			codeID:   "X",
			position: 3,
			want: [unit.SensorAreaSlots]string{
				"SENSOR_AREA_X~0-9",
				"SENSOR_AREA_X~0-10",
				"SENSOR_AREA_X~0-11",
				"SENSOR_AREA_X~0-12",
			},
		},
		{
			name:     "blank code id",
			codeID:   "",
			position: 1,
			want: [unit.SensorAreaSlots]string{
				"SENSOR_AREA_~0-1",
				"SENSOR_AREA_~0-2",
				"SENSOR_AREA_~0-3",
				"SENSOR_AREA_~0-4",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := unit.SensorAreaExternalIDs(tc.codeID, tc.position)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewCompartment(t *testing.T) {
	got := unit.NewCompartment("A", 2)
	want := unit.Compartment{
		CodeID:          "A@COMPARTMENT_2",
		HumanReadableID: "COMPARTMENT_2",
		SensorAreaExternalIDs: [unit.SensorAreaSlots]string{
			"SENSOR_AREA_A~0-5", "SENSOR_AREA_A~0-6", "SENSOR_AREA_A~0-7", "SENSOR_AREA_A~0-8",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("compartment mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSensorArea(t *testing.T) {
	got := unit.NewSensorArea("A", "HW", 3)
	want := unit.SensorArea{
		ExternalID: "SENSOR_AREA_A~0-3",
		Sensors:    []unit.Sensor{{SensorUnitHardwareID: "HW", PinID: "0-3"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sensor area mismatch (-want +got):\n%s", diff)
	}
}

func TestModelDerivations(t *testing.T) {
	if got := unit.BluetoothID("M1"); got != "MS-M1" {
		t.Fatalf("expected MS-M1, got %q", got)
	}
	if got := unit.HardwareVersion("M1"); got != "M1.v1" {
		t.Fatalf("expected M1.v1, got %q", got)
	}
}

func TestDefault(t *testing.T) {
	got := unit.Default()
	want := unit.StorageUnit{
		Activated: true,
		Compartments: []unit.Compartment{
			{HumanReadableID: "COMPARTMENT_1"},
		},
		SensorAreas: []unit.SensorArea{
			{Sensors: []unit.Sensor{{}}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("default state mismatch (-want +got):\n%s", diff)
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	original := unit.Default()
	clone := original.Clone()

	clone.Compartments[0].SensorAreaExternalIDs[0] = "changed"
	clone.SensorAreas[0].Sensors[0].PinID = "changed"
	clone.SensorAreas = append(clone.SensorAreas, unit.SensorArea{})

	if original.Compartments[0].SensorAreaExternalIDs[0] != "" {
		t.Fatalf("compartment ids leaked into original")
	}
	if original.SensorAreas[0].Sensors[0].PinID != "" {
		t.Fatalf("sensor leaked into original")
	}
	if len(original.SensorAreas) != 1 {
		t.Fatalf("expected original to keep one sensor area, got %d", len(original.SensorAreas))
	}
}
