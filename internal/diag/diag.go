// Package diag is the error-reporter external collaborator (spec §6,
// §7): a closed severity/scope taxonomy, an append-only log, and
// ambiguity-frame nesting. Modeled directly on the teacher's
// internal/errors.SentraError — same shape (Type/Message/Location,
// one-line Error(); the optional Source line is stored but Error()
// does not render it) — generalized
// from the teacher's single ErrorType enum into the spec's orthogonal
// Severity x Scope pair.
package diag

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Severity int

const (
	Information Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Information:
		return "info"
	case Warning:
		return "warning"
	default:
		return "error"
	}
}

type Scope int

const (
	ScopeInternal Scope = iota
	ScopeRuntime
	ScopeLexical
	ScopeSyntax
	ScopeContext
	ScopeOptimization
	ScopeLinker
	ScopeBuild
)

func (s Scope) String() string {
	switch s {
	case ScopeInternal:
		return "internal"
	case ScopeRuntime:
		return "runtime"
	case ScopeLexical:
		return "lexical"
	case ScopeSyntax:
		return "syntax"
	case ScopeContext:
		return "context"
	case ScopeOptimization:
		return "optimization"
	case ScopeLinker:
		return "linker"
	default:
		return "build"
	}
}

// Code is the closed taxonomy of diagnosable conditions (spec §7).
type Code int

const (
	_ Code = iota
	CodeFileOpenFailure
	CodeSizeMismatch
	CodeIllegalChar
	CodeUnterminatedString
	CodeUnterminatedComment
	CodeMalformedNumericPrefix
	CodeMissingSemicolon
	CodeMissingBrace
	CodeMissingName
	CodeMissingType
	CodeMissingDeclarator
	CodeNoOperand
	CodeNoOperator
	CodeNoLvalue
	CodeLiteralAsLvalue
	CodeIncompleteTernary
	CodeDuplicateClass
	CodeDuplicateMember
	CodeDuplicateMethod
	CodeDuplicateParameter
	CodeDuplicateLocal
	CodeAmbiguousDimension
	CodeDuplicateDimension
	CodeUnboundBreak
	CodeUnboundContinue
	CodeUndefinedReference
	CodeAmbiguousImport
	CodeDuplicateImport
	CodeClassImportClash
	CodeDeadCode
	CodeOverflowInt8
	CodeOverflowInt16
	CodeOverflowInt32
	CodeOverflowInt64
	CodeOverflowUint16
	CodeOverflowFP32Exponent
	CodeOverflowFP32Mantissa
	CodeOverflowFP64Exponent
	CodeOverflowFP64Mantissa
)

// descriptor is the fixed (severity, scope) pairing per code; spec §7
// calls this "per-code (severity, scope) descriptor and parameterized
// message".
var descriptor = map[Code]struct {
	sev Severity
	sc  Scope
	msg string
}{
	CodeFileOpenFailure:        {Error, ScopeRuntime, "could not open source file %s"},
	CodeSizeMismatch:           {Error, ScopeRuntime, "source buffer size mismatch: expected %d, got %d"},
	CodeIllegalChar:            {Error, ScopeLexical, "illegal character %q"},
	CodeUnterminatedString:     {Error, ScopeLexical, "unterminated string literal"},
	CodeUnterminatedComment:    {Error, ScopeLexical, "unterminated comment"},
	CodeMalformedNumericPrefix: {Error, ScopeLexical, "malformed numeric literal prefix %q"},
	CodeMissingSemicolon:       {Error, ScopeSyntax, "expected ';'"},
	CodeMissingBrace:           {Error, ScopeSyntax, "expected '%s'"},
	CodeMissingName:            {Error, ScopeSyntax, "expected a name"},
	CodeMissingType:            {Error, ScopeSyntax, "expected a type"},
	CodeMissingDeclarator:      {Error, ScopeSyntax, "expected a declarator"},
	CodeNoOperand:              {Error, ScopeSyntax, "expected an operand"},
	CodeNoOperator:             {Error, ScopeSyntax, "expected an operator"},
	CodeNoLvalue:               {Error, ScopeSyntax, "expected an lvalue"},
	CodeLiteralAsLvalue:        {Error, ScopeSyntax, "a literal cannot be used as an lvalue"},
	CodeIncompleteTernary:      {Error, ScopeSyntax, "incomplete ternary expression"},
	CodeDuplicateClass:         {Error, ScopeContext, "duplicate top-level declaration %q"},
	CodeDuplicateMember:        {Error, ScopeContext, "duplicate member %q"},
	CodeDuplicateMethod:        {Error, ScopeContext, "duplicate method %q"},
	CodeDuplicateParameter:     {Error, ScopeContext, "duplicate parameter %q"},
	CodeDuplicateLocal:         {Error, ScopeContext, "duplicate local %q"},
	CodeAmbiguousDimension:     {Error, ScopeContext, "array dimension given on both type and declarator must agree"},
	CodeDuplicateDimension:     {Error, ScopeContext, "duplicate array dimension"},
	CodeUnboundBreak:           {Error, ScopeContext, "break outside of a loop or switch"},
	CodeUnboundContinue:        {Error, ScopeContext, "continue outside of a loop"},
	CodeUndefinedReference:     {Error, ScopeContext, "undefined reference to %q"},
	CodeAmbiguousImport:        {Error, ScopeContext, "ambiguous import of %q"},
	CodeDuplicateImport:        {Warning, ScopeContext, "duplicate import of %q"},
	CodeClassImportClash:       {Error, ScopeContext, "top-level name %q clashes with an import"},
	CodeDeadCode:               {Warning, ScopeContext, "unreachable statement after %s"},
	CodeOverflowInt8:           {Warning, ScopeContext, "integer literal overflows int8"},
	CodeOverflowInt16:          {Warning, ScopeContext, "integer literal overflows int16"},
	CodeOverflowInt32:          {Warning, ScopeContext, "integer literal overflows int32"},
	CodeOverflowInt64:          {Warning, ScopeContext, "integer literal overflows int64"},
	CodeOverflowUint16:         {Warning, ScopeContext, "integer literal overflows uint16"},
	CodeOverflowFP32Exponent:   {Warning, ScopeContext, "floating literal exponent overflows fp32"},
	CodeOverflowFP32Mantissa:   {Warning, ScopeContext, "floating literal mantissa rounds in fp32"},
	CodeOverflowFP64Exponent:   {Warning, ScopeContext, "floating literal exponent overflows fp64"},
	CodeOverflowFP64Mantissa:   {Warning, ScopeContext, "floating literal mantissa rounds in fp64"},
}

// Span is the two line/col pairs a diagnostic anchors to.
type Span struct {
	BeginLine, BeginCol int
	EndLine, EndCol     int
}

// Diagnostic is a single logged entry.
type Diagnostic struct {
	Severity Severity
	Scope    Scope
	Code     Code
	Message  string
	Span     Span
	File     string
	Source   string // optional source line, for WithSource-style rendering

	// AmbiguityGroup is non-zero when this diagnostic was produced while
	// parsing a losing candidate inside an ambiguity frame; such entries
	// are collapsed under one AMBIGUITY entry by Log.Resolve (spec §4.3, §7).
	AmbiguityGroup uuid.UUID
}

func (d *Diagnostic) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:%d:%d: %s %s-%d: %s", d.File, d.Span.BeginLine, d.Span.BeginCol, d.Severity, d.Scope, d.Code, d.Message)
	return sb.String()
}

// New builds a Diagnostic from its code's fixed descriptor, formatting
// args into the message template.
func New(code Code, file string, span Span, args ...interface{}) *Diagnostic {
	desc, ok := descriptor[code]
	if !ok {
		panic(fmt.Sprintf("diag: unknown code %d", code))
	}
	return &Diagnostic{
		Severity: desc.sev,
		Scope:    desc.sc,
		Code:     code,
		Message:  fmt.Sprintf(desc.msg, args...),
		Span:     span,
		File:     file,
	}
}

func (d *Diagnostic) WithSource(line string) *Diagnostic {
	d.Source = line
	return d
}
