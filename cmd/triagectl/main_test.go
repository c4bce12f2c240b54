package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "")
	os.Unsetenv("DATABASE_URL")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := runCmd(t, "", "--seed", "3", "analyze", "fever,", "cough", "and", "chills")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode output: %v (%s)", err, out)
	}
	analysis := payload["analysis"].(map[string]any)
	conds := analysis["conditions"].([]any)
	if conds[0] != "flu" {
		t.Fatalf("expected flu first, got %v", conds)
	}
}

func TestAnalyzeCommandFollowUp(t *testing.T) {
	out, err := runCmd(t, "", "--offline", "analyze", "frequent urination", "--follow-up", "excessive thirst", "--follow-up", "blurred vision")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(out, `"condition_details"`) {
		t.Fatalf("expected final analysis output, got %s", out)
	}
}

func TestAnalyzeCommandStdinFile(t *testing.T) {
	out, err := runCmd(t, "excessive worry and restlessness", "--offline", "analyze", "--file", "-")
	if err != nil {
		t.Fatalf("analyze stdin: %v", err)
	}
	if !strings.Contains(out, `"anxiety"`) {
		t.Fatalf("expected sniffed text note to be analyzed, got %s", out)
	}
}

func TestRecommendCommand(t *testing.T) {
	in := `{"conditions":["flu"],"details":{"flu":{"recommendations":"rest"}},"risk_level":"high"}`
	out, err := runCmd(t, in, "--offline", "--seed", "9", "recommend")
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	var bundle map[string]any
	if err := json.Unmarshal([]byte(out), &bundle); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if bundle["risk_level"] != "high" {
		t.Fatalf("unexpected bundle: %v", bundle)
	}
	if !strings.HasPrefix(bundle["motivational_message"].(string), "Please take your symptoms seriously") {
		t.Fatalf("expected urgency prefix: %v", bundle["motivational_message"])
	}
}

func TestRecommendCommandInvalidTier(t *testing.T) {
	_, err := runCmd(t, `{"conditions":["flu"],"risk_level":"severe"}`, "--offline", "recommend")
	if err == nil || !strings.Contains(err.Error(), "invalid risk level") {
		t.Fatalf("expected invalid risk level error, got %v", err)
	}
}

func TestConditionsCommand(t *testing.T) {
	out, err := runCmd(t, "", "--offline", "conditions")
	if err != nil {
		t.Fatalf("conditions: %v", err)
	}
	var items []map[string]any
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 conditions, got %d", len(items))
	}

	if _, err := runCmd(t, "", "--offline", "conditions", "gout"); err == nil {
		t.Fatal("expected unknown condition to fail")
	}
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("ENV", "dev")
	out, err := runCmd(t, "", "token", "user-1", "--name", "Kim")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if strings.Count(strings.TrimSpace(out), ".") != 2 {
		t.Fatalf("expected a JWT, got %q", out)
	}
}

func TestAnalyzeCommandUnsupportedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.png")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	if err := os.WriteFile(path, png, 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	_, err := runCmd(t, "", "--offline", "analyze", "--file", path)
	if err == nil || !strings.Contains(err.Error(), "unsupported mime type") {
		t.Fatalf("expected unsupported media error, got %v", err)
	}
}
