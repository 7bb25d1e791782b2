package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	catalogLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:pt|mm|cm|in)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z_-]*`},
		{Name: "Symbol", Pattern: `[;]`},
	})

	catalogParser = participle.MustBuild[File](
		participle.Lexer(catalogLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// File is the root of a paper catalog file:
//
//	# A4 sheets, 3 columns by 7 rows
//	paper "A4 21up 70mm x 42.4mm" size 210mm x 297mm grid 3 x 7
//
// Entries are separated by newlines or semicolons.
type File struct {
	Papers []*Paper `parser:"( Newline | ';' )* ( @@ ( Newline | ';' )* )*"`
}

// Paper declares one sheet geometry. Lengths keep their unit suffix and are
// converted by the catalog.
type Paper struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Name    StringLiteral  `parser:"'paper' @String"`
	Width   string         `parser:"'size' @Number"`
	Height  string         `parser:"'x' @Number"`
	Columns int            `parser:"'grid' @Number"`
	Rows    int            `parser:"'x' @Number"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a catalog from r; name is used in error positions.
func Parse(name string, r io.Reader) (*File, error) {
	return catalogParser.Parse(name, r)
}

// ParseString parses a catalog held in a string.
func ParseString(input string) (*File, error) {
	return catalogParser.ParseString("", input)
}
