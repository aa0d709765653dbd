// Package template compiles parameterized SQL text into an immutable,
// backend-neutral representation.
//
// Placeholders are written as {name}, where name is a field of the params
// record supplied at bind time. A literal left brace is escaped as {{.
// Compilation records every placeholder occurrence in left-to-right order,
// so a name that appears twice binds the same params field to two positions.
package template

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// ErrTemplate is the category for malformed template text. Every
// compilation failure wraps it.
var ErrTemplate = errors.New("malformed sql template")

// Error describes a compilation failure at a byte offset in the SQL text.
type Error struct {
	Offset  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("sql template: %s at offset %d", e.Message, e.Offset)
}

func (e *Error) Unwrap() error { return ErrTemplate }

// segment is one literal or placeholder run of the source text. Exactly one
// of the two fields is meaningful: a placeholder segment has name != "".
type segment struct {
	literal string
	name    string
}

// Template is a compiled SQL template. It is immutable once constructed and
// safe for concurrent use.
type Template struct {
	text     string
	segments []segment
	names    []string
}

// sqlLexer tokenizes template text into placeholder and literal runs.
// A stray left brace that does not open a well-formed placeholder matches
// the Stray rule, which Compile reports as an error.
var sqlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Escape", Pattern: `\{\{`},
	{Name: "Placeholder", Pattern: `\{[ \t]*[A-Za-z_][A-Za-z0-9_]*[ \t]*\}`},
	{Name: "Stray", Pattern: `\{[^{]?`},
	{Name: "Text", Pattern: `[^{]+`},
})

var symbols = sqlLexer.Symbols()

// Compile parses sqlText once and returns its template. It is pure and
// side-effect-free; identical input always yields an equivalent template.
func Compile(sqlText string) (*Template, error) {
	lx, err := sqlLexer.LexString("", sqlText)
	if err != nil {
		return nil, &Error{Offset: 0, Message: err.Error()}
	}

	t := &Template{text: sqlText}
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			t.segments = append(t.segments, segment{literal: literal.String()})
			literal.Reset()
		}
	}

	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, &Error{Offset: len(sqlText), Message: err.Error()}
		}
		if tok.EOF() {
			break
		}

		switch tok.Type {
		case symbols["Text"]:
			literal.WriteString(tok.Value)
		case symbols["Escape"]:
			literal.WriteString("{")
		case symbols["Placeholder"]:
			flush()
			name := strings.TrimSpace(tok.Value[1 : len(tok.Value)-1])
			t.segments = append(t.segments, segment{name: name})
			t.names = append(t.names, name)
		case symbols["Stray"]:
			offset := tok.Pos.Offset
			rest := sqlText[offset:]
			if close := strings.IndexByte(rest, '}'); close >= 0 && !strings.ContainsRune(rest[1:close], '{') {
				return nil, &Error{Offset: offset, Message: fmt.Sprintf("invalid placeholder name %q", rest[1:close])}
			}
			return nil, &Error{Offset: offset, Message: "unterminated placeholder"}
		}
	}

	flush()
	return t, nil
}

// MustCompile is like Compile but panics on error. It is intended for
// templates declared as package variables.
func MustCompile(sqlText string) *Template {
	t, err := Compile(sqlText)
	if err != nil {
		panic(err)
	}
	return t
}

// Text returns the original SQL text the template was compiled from.
func (t *Template) Text() string { return t.text }

// Placeholders returns the placeholder names in source occurrence order.
// Duplicate occurrences are kept: the result has one entry per occurrence,
// and its length is the number of bind positions the template expects.
func (t *Template) Placeholders() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Render produces backend-ready SQL with each placeholder occurrence
// rewritten to the dialect's marker syntax.
func (t *Template) Render(d Dialect) string {
	var sb strings.Builder
	n := 0
	for _, seg := range t.segments {
		if seg.name == "" {
			sb.WriteString(seg.literal)
			continue
		}
		n++
		sb.WriteString(d.Marker(n, seg.name))
	}
	return sb.String()
}
