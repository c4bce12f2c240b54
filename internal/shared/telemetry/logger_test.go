package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteIncludesLevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	Warn("catalog.fallback", map[string]any{"reason": "no database", "err": errors.New("boom")})

	var payload map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &payload); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if payload["level"] != "warn" || payload["msg"] != "catalog.fallback" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if payload["err"] != "boom" {
		t.Fatalf("expected error to be stringified, got %v", payload["err"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatal("missing ts")
	}
}

func TestReservedKeysWin(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	Info("real", map[string]any{"msg": "spoofed", "level": "error"})
	if !strings.Contains(buf.String(), `"msg":"real"`) || !strings.Contains(buf.String(), `"level":"info"`) {
		t.Fatalf("reserved keys overwritten: %s", buf.String())
	}
}

func TestConfigureFileWritesRotatingLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triage.log")
	closer := ConfigureFile(FileOptions{Path: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
	t.Cleanup(func() { SetOutput(nil) })

	Error("analysis.failed", map[string]any{"analysis_id": "a-1"})
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"analysis_id":"a-1"`) {
		t.Fatalf("unexpected log file contents: %s", data)
	}
}
