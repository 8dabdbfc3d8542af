package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("quiet drops debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewLogger(&buf, false)
		logger.Debug("hidden")
		logger.Warn("shown")
		if strings.Contains(buf.String(), "hidden") {
			t.Errorf("debug record written in quiet mode: %s", buf.String())
		}
		if !strings.Contains(buf.String(), "shown") {
			t.Errorf("warn record missing: %s", buf.String())
		}
	})

	t.Run("verbose keeps debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		NewLogger(&buf, true).Debug("anchor rewritten", "after", "#current")
		if !strings.Contains(buf.String(), "after=#current") {
			t.Errorf("expected debug record: %s", buf.String())
		}
	})
}

func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewJSONLogger(&buf, true).Debug("anchor rewritten", "category", "button-like")
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v: %s", err, buf.String())
	}
	if rec["category"] != "button-like" {
		t.Errorf("category = %v", rec["category"])
	}
}
