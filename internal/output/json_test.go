package output

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONWriter(t *testing.T) {
	result := Result{
		Pack:   "python-azure-ai-agent",
		Mode:   "staged",
		Model:  "claude-opus-4-5-20250514",
		Review: "## Summary\nLooks good.",
	}

	var buf bytes.Buffer
	w := &JSONWriter{}
	if err := w.Write(&buf, result); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var decoded Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded != result {
		t.Errorf("decoded = %+v, want %+v", decoded, result)
	}
	if buf.Bytes()[buf.Len()-1] != '\n' {
		t.Error("expected trailing newline")
	}
}
