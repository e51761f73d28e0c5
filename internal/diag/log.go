package diag

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// ambiguityFrame tracks one open AmbiguityBegin()/AmbiguityEnd() span:
// every diagnostic logged while it is open is tagged with the frame's
// correlation id so losing-candidate errors can be collapsed under a
// single AMBIGUITY entry (spec §4.3, §7).
type ambiguityFrame struct {
	id      uuid.UUID
	entries []*Diagnostic
	winner  int
}

// Log is the append-only error log every component writes to through a
// shared context reference (spec §5, §6).
type Log struct {
	entries []*Diagnostic
	stack   []*ambiguityFrame
	groups  map[uuid.UUID][]*Diagnostic
}

func NewLog() *Log {
	return &Log{groups: make(map[uuid.UUID][]*Diagnostic)}
}

// Log appends d, routing it into the innermost open ambiguity frame
// (if any) instead of the top-level entry list.
func (l *Log) Log(d *Diagnostic) {
	if n := len(l.stack); n > 0 {
		frame := l.stack[n-1]
		d.AmbiguityGroup = frame.id
		frame.entries = append(frame.entries, d)
		return
	}
	l.entries = append(l.entries, d)
}

// AmbiguityBegin opens a new nested sub-log (spec §7: "ambiguity
// entries nest sub-logs, one per candidate") and returns its
// correlation id for tests/debugging.
func (l *Log) AmbiguityBegin() uuid.UUID {
	f := &ambiguityFrame{id: uuid.New()}
	l.stack = append(l.stack, f)
	return f.id
}

// AmbiguityEnd closes the innermost frame without resolving it; all of
// its entries are discarded (used when a candidate simply never
// produced a diagnostic).
func (l *Log) AmbiguityEnd() {
	n := len(l.stack)
	if n == 0 {
		return
	}
	l.stack = l.stack[:n-1]
}

// Resolve closes the innermost frame, keeping only the winning
// candidate's entries (if any) and collapsing every losing candidate's
// diagnostics into a single synthetic AMBIGUITY entry at Information
// severity so the flattened log stays one line per real decision.
func (l *Log) Resolve(winner int) {
	n := len(l.stack)
	if n == 0 {
		return
	}
	f := l.stack[n-1]
	l.stack = l.stack[:n-1]
	l.groups[f.id] = f.entries
	if len(f.entries) == 0 {
		return
	}
	first := f.entries[0]
	d := &Diagnostic{
		Severity: Information,
		Scope:    ScopeSyntax,
		Message:  fmt.Sprintf("ambiguity resolved (candidate %d chosen); %d losing-path diagnostics collapsed", winner, len(f.entries)),
		Span:     first.Span,
		File:     first.File,
	}
	l.Log(d)
}

// Entries returns the flattened, source-ordered log.
func (l *Log) Entries() []*Diagnostic {
	out := make([]*Diagnostic, len(l.entries))
	copy(out, l.entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Span.BeginLine != out[j].Span.BeginLine {
			return out[i].Span.BeginLine < out[j].Span.BeginLine
		}
		return out[i].Span.BeginCol < out[j].Span.BeginCol
	})
	return out
}

// HasError reports whether any logged entry is Error severity — the
// signal the driver uses to short-circuit to emission-skip (spec §4.3).
func (l *Log) HasError() bool {
	for _, e := range l.entries {
		if e.Severity == Error {
			return true
		}
	}
	return false
}

// Render flattens the log to "file:line:col: severity scope-code:
// message" lines plus a humanized summary count, the way the teacher's
// reporting package rolls counts up into an executive summary (minus
// its JSON/XML/CSV surface, which has no analogue here). When color is
// true, severities are ANSI-colored; cmd/javacomp decides that using
// mattn/go-isatty against its output stream, never this package.
func (l *Log) Render(w io.Writer, color bool) {
	var info, warn, errs int
	for _, e := range l.Entries() {
		line := e.Error()
		if color {
			line = colorize(e.Severity, line)
		}
		fmt.Fprintln(w, line)
		switch e.Severity {
		case Information:
			info++
		case Warning:
			warn++
		case Error:
			errs++
		}
	}
	fmt.Fprintf(w, "%s diagnostics: %s error(s), %s warning(s), %s note(s)\n",
		humanize.Comma(int64(info+warn+errs)),
		humanize.Comma(int64(errs)), humanize.Comma(int64(warn)), humanize.Comma(int64(info)))
}

func colorize(sev Severity, s string) string {
	const (
		red    = "\x1b[31m"
		yellow = "\x1b[33m"
		cyan   = "\x1b[36m"
		reset  = "\x1b[0m"
	)
	switch sev {
	case Error:
		return red + s + reset
	case Warning:
		return yellow + s + reset
	default:
		return cyan + s + reset
	}
}
