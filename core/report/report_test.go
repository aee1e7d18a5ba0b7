package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/electa-hq/electa/core/findings"
)

func sampleMap() findings.Map {
	return findings.Map{
		"sdk": {
			Choice:      "Target SDK: Marshmallow",
			Description: "Target SDK version.",
			Fingerprint: "deadbeefdeadbeef",
			Meta:        map[string]any{"severity": "info"},
		},
		"perms": {
			Choice:      "Permissions: [CAMERA, INTERNET]",
			Description: "Requested permissions.",
			Fingerprint: "cafecafecafecafe",
		},
	}
}

func TestJSONReporter_Generate(t *testing.T) {
	data, err := NewJSONReporter("1.2.3").Generate(sampleMap())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var report struct {
		Meta     Meta                      `json:"meta"`
		Findings map[string]map[string]any `json:"findings"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if report.Meta.ToolName != "electa" || report.Meta.ToolVersion != "1.2.3" {
		t.Fatalf("unexpected meta: %+v", report.Meta)
	}
	sdk := report.Findings["sdk"]
	if sdk["choice"] != "Target SDK: Marshmallow" {
		t.Fatalf("unexpected sdk finding: %v", sdk)
	}
	if sdk["severity"] != "info" {
		t.Fatalf("metadata must flatten into the record: %v", sdk)
	}
}

func TestJSONReporter_EmptyMap(t *testing.T) {
	data, err := NewJSONReporter("dev").Generate(nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(string(data), `"findings": {}`) {
		t.Fatalf("empty map must render as an object, got:\n%s", data)
	}
}

func TestJSONReporter_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := NewJSONReporter("dev").WriteToFile(sampleMap(), path); err != nil {
		t.Fatalf("WriteToFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !json.Valid(data) {
		t.Fatal("written report is not valid JSON")
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, sampleMap(), PrintOptions{
		Duration:     1500 * time.Millisecond,
		FilesScanned: 7,
	})

	out := buf.String()
	permsLine := strings.Index(out, "perms")
	sdkLine := strings.Index(out, "sdk")
	if permsLine == -1 || sdkLine == -1 || permsLine > sdkLine {
		t.Fatalf("expected rows sorted by rule ID, got:\n%s", out)
	}
	if !strings.Contains(out, "Target SDK: Marshmallow") {
		t.Fatalf("missing choice column:\n%s", out)
	}
	if !strings.Contains(out, "Files scanned: 7") || !strings.Contains(out, "Scan duration: 1.50s") {
		t.Fatalf("missing summary footer:\n%s", out)
	}
}

func TestPrintTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, findings.Map{}, PrintOptions{})
	if !strings.Contains(buf.String(), "No choices resolved.") {
		t.Fatalf("unexpected empty output %q", buf.String())
	}
}
