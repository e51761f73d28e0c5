package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogOrdersBySourcePosition(t *testing.T) {
	l := NewLog()
	l.Log(New(CodeUndefinedReference, "a.java", Span{BeginLine: 5, BeginCol: 1}, "y"))
	l.Log(New(CodeMissingSemicolon, "a.java", Span{BeginLine: 2, BeginCol: 3}))
	entries := l.Entries()
	if entries[0].Span.BeginLine != 2 || entries[1].Span.BeginLine != 5 {
		t.Fatalf("entries not sorted by position: %+v", entries)
	}
}

func TestHasError(t *testing.T) {
	l := NewLog()
	l.Log(New(CodeDuplicateImport, "a.java", Span{}, "x"))
	if l.HasError() {
		t.Fatal("warning-only log reported HasError")
	}
	l.Log(New(CodeUndefinedReference, "a.java", Span{}, "y"))
	if !l.HasError() {
		t.Fatal("error-bearing log did not report HasError")
	}
}

func TestAmbiguityCollapsesLosingCandidates(t *testing.T) {
	l := NewLog()
	l.AmbiguityBegin()
	l.Log(New(CodeMissingSemicolon, "a.java", Span{BeginLine: 1, BeginCol: 1}))
	l.Log(New(CodeNoOperand, "a.java", Span{BeginLine: 1, BeginCol: 2}))
	l.Resolve(1)

	entries := l.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected exactly one collapsed entry, got %d: %+v", len(entries), entries)
	}
	if entries[0].Severity != Information {
		t.Fatalf("collapsed ambiguity entry should be Information severity, got %v", entries[0].Severity)
	}
	if !strings.Contains(entries[0].Message, "2 losing-path diagnostics") {
		t.Fatalf("collapsed message missing count: %q", entries[0].Message)
	}
}

func TestRenderIncludesSummary(t *testing.T) {
	l := NewLog()
	l.Log(New(CodeUndefinedReference, "a.java", Span{BeginLine: 1, BeginCol: 1}, "y"))
	var buf bytes.Buffer
	l.Render(&buf, false)
	out := buf.String()
	if !strings.Contains(out, "1 error(s)") {
		t.Fatalf("render missing error count: %q", out)
	}
	if !strings.Contains(out, "a.java:1:1") {
		t.Fatalf("render missing location: %q", out)
	}
}
