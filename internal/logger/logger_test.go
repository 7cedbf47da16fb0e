package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestLogger_JSONFieldsAreScoped(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := New(Config{Level: "debug", Format: "json", Output: &buf})

	child := base.WithSession("sess-1").WithError(errors.New("boom"))
	child.Info("pricing failed")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected json log line, got %q: %v", buf.String(), err)
	}
	if line["session_id"] != "sess-1" {
		t.Errorf("expected session_id field, got %v", line["session_id"])
	}
	if line["error"] != "boom" {
		t.Errorf("expected error field, got %v", line["error"])
	}

	buf.Reset()
	base.Info("plain")
	var plain map[string]any
	if err := json.Unmarshal(buf.Bytes(), &plain); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if _, ok := plain["session_id"]; ok {
		t.Error("expected parent logger to be unaffected by child fields")
	}
}

func TestLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(Config{Level: "chatty", Format: "json", Output: &buf})
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug to be suppressed, got %q", buf.String())
	}
}
