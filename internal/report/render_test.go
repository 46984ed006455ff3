package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, Assemble(testInputs(t)), false); err != nil {
		t.Fatalf("RenderSummary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Matching IDs: 2",
		"Only in JSON (API): 1",
		"Only in Excel (Manual): 1",
		"JSON (API) duplicates: 3 (max 2 appearances)",
		"Excel (Manual) only",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI escapes without color:\n%s", out)
	}
}

func TestShouldUseColorNonTerminal(t *testing.T) {
	if ShouldUseColor(&bytes.Buffer{}) {
		t.Fatalf("expected no color for a buffer")
	}
}
