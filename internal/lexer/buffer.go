// Package lexer is the byte-level scanner and reserved-word table that
// feed the parser. The core treats a lexer as an external collaborator
// (see spec §1, §6); this package is the reference implementation used
// by cmd/javacomp and by every test in this module.
package lexer

// Buffer is the bounded byte buffer the spec's external "byte buffer"
// collaborator describes: (base, limit, cursor) with peek(±k), advance,
// eof. The caller owns the backing slice; Buffer never copies it.
type Buffer struct {
	src    []byte
	cursor int
}

// NewBuffer wraps src. Ownership of src remains with the caller; Buffer
// only reads it.
func NewBuffer(src []byte) *Buffer {
	return &Buffer{src: src}
}

func (b *Buffer) Len() int { return len(b.src) }

// Peek returns the byte at cursor+k, or 0 if that position is out of
// range. k may be negative to look behind the cursor.
func (b *Buffer) Peek(k int) byte {
	i := b.cursor + k
	if i < 0 || i >= len(b.src) {
		return 0
	}
	return b.src[i]
}

func (b *Buffer) Advance() byte {
	c := b.Peek(0)
	if b.cursor < len(b.src) {
		b.cursor++
	}
	return c
}

func (b *Buffer) Eof() bool { return b.cursor >= len(b.src) }

func (b *Buffer) Cursor() int { return b.cursor }

func (b *Buffer) SetCursor(c int) { b.cursor = c }

// Slice returns src[from:to), the span a token's lexeme is copied from.
func (b *Buffer) Slice(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(b.src) {
		to = len(b.src)
	}
	if from >= to {
		return ""
	}
	return string(b.src[from:to])
}

// Copy returns an independent cursor sharing the same backing buffer —
// used by the parser to speculate past an ambiguity (spec §4.1, §9)
// without ever mutating or freeing the shared byte slice.
func (b *Buffer) Copy() *Buffer {
	return &Buffer{src: b.src, cursor: b.cursor}
}
