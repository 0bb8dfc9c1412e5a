package device

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser parses device description files.
type Parser struct {
	parser *participle.Parser[DeviceFile]
}

// NewParser creates a new device file parser instance.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[DeviceFile](
		participle.Lexer(DeviceLexer),
		participle.Elide("Comment", "Whitespace"),
	)
	if err != nil {
		return nil, fmt.Errorf("device: build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse parses a device file from a reader.
func (p *Parser) Parse(r io.Reader) (*DeviceFile, error) {
	file, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("device: parse error: %w", err)
	}
	return file, nil
}

// ParseString parses a device file from a string.
func (p *Parser) ParseString(input string) (*DeviceFile, error) {
	file, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("device: parse error: %w", err)
	}
	return file, nil
}

// ParseFile parses a device file from a file path.
func (p *Parser) ParseFile(filename string) (*DeviceFile, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("device: open %s: %w", filename, err)
	}
	defer f.Close()

	return p.Parse(f)
}

// LoadFile parses a device file and builds the database in one step.
func LoadFile(filename string) (*MemoryDatabase, error) {
	parser, err := NewParser()
	if err != nil {
		return nil, err
	}
	file, err := parser.ParseFile(filename)
	if err != nil {
		return nil, err
	}
	return file.Build()
}
