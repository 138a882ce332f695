package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExport_Stdout(t *testing.T) {
	out, err := run(t, "export",
		"--set", "codeId=UNIT1",
		"--set", "modelExternalId=MODEL1",
		"--compartments", "2",
		"--output", "-",
	)
	if err != nil {
		t.Fatalf("export: %v\n%s", err, out)
	}
	if got := strings.Count(out, "<hardwareId>MODEL1</hardwareId>"); got != 2 {
		t.Fatalf("expected hardwareId twice, got %d\n%s", got, out)
	}
	if got := strings.Count(out, "<Compartment>"); got != 2 {
		t.Fatalf("expected 2 compartments, got %d\n%s", got, out)
	}
}

func TestExport_WritesFileFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "unit.yaml")
	seed := "unit:\n  codeId: A&B\n  modelExternalId: M\nsensorAreas: 2\nexport:\n  output: " + filepath.Join(dir, "out") + "\n"
	if err := os.WriteFile(cfgPath, []byte(seed), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if out, err := run(t, "export", "--config", cfgPath, "--escape"); err != nil {
		t.Fatalf("export: %v\n%s", err, out)
	}

	data, err := os.ReadFile(filepath.Join(dir, "out", "data.xml"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	doc := string(data)
	if !strings.Contains(doc, "<codeId>A&amp;B</codeId>") {
		t.Fatalf("expected escaped code id:\n%s", doc)
	}
	if got := strings.Count(doc, "<SensorArea>"); got != 2 {
		t.Fatalf("expected 2 sensor areas, got %d", got)
	}
}

func TestExport_StrictRejectsMalformed(t *testing.T) {
	_, err := run(t, "export", "--strict", "--set", "codeId=a b", "--output", "-")
	if err == nil {
		t.Fatalf("expected strict mode to reject whitespace")
	}
}

func TestExport_RejectsBadSet(t *testing.T) {
	if _, err := run(t, "export", "--set", "codeId", "--output", "-"); err == nil {
		t.Fatalf("expected error for --set without value")
	}
	if _, err := run(t, "export", "--set", "widgets.0.x=1", "--output", "-"); err == nil {
		t.Fatalf("expected error for unknown section")
	}
	if _, err := run(t, "export", "--set", "compartments.0.sensorAreaExternalIds=X", "--output", "-"); err == nil {
		t.Fatalf("expected error for sequence field without a slot index")
	}
}

func TestShow(t *testing.T) {
	out, err := run(t, "show", "--set", "codeId=UNIT1", "--set", "compartments.0.humanReadableId=Fridge")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "Storage unit UNIT1") || !strings.Contains(out, "#1 Fridge") {
		t.Fatalf("unexpected summary:\n%s", out)
	}
}
