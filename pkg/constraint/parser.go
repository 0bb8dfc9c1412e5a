package constraint

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ConstraintLexer defines the lexical structure for constraint files.
var ConstraintLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments ("--" to end of line)
	{Name: "Comment", Pattern: `--[^\n]*`},

	// Whitespace
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	// Keywords
	{Name: "KwLoc", Pattern: `\bloc\b`},
	{Name: "KwIOStandard", Pattern: `\biostandard\b`},

	// Identifiers: port names may carry bus indices like data[3]
	{Name: "Ident", Pattern: `[A-Za-z_$][A-Za-z0-9_$.\[\]]*`},
})

// Parser parses constraint files.
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser creates a new constraint file parser instance.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(ConstraintLexer),
		participle.Elide("Comment", "Whitespace"),
	)
	if err != nil {
		return nil, fmt.Errorf("constraint: build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse parses a constraint file from a reader.
func (p *Parser) Parse(r io.Reader) (*File, error) {
	file, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("constraint: parse error: %w", err)
	}
	return file, nil
}

// ParseString parses a constraint file from a string.
func (p *Parser) ParseString(input string) (*File, error) {
	file, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("constraint: parse error: %w", err)
	}
	return file, nil
}

// ParseFile parses a constraint file from a file path.
func (p *Parser) ParseFile(filename string) (*File, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("constraint: open %s: %w", filename, err)
	}
	defer f.Close()

	return p.Parse(f)
}
