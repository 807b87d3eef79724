package face

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser reads face files.
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser creates a new face parser instance.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(FaceLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
	)
	if err != nil {
		return nil, fmt.Errorf("face: failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// Parse parses a face description from a reader. name is used in error
// positions.
func (p *Parser) Parse(name string, r io.Reader) (*Face, error) {
	file, err := p.parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("face: parse error: %w", err)
	}
	return decode(file)
}

// ParseString parses a face description from a string.
func (p *Parser) ParseString(name, input string) (*Face, error) {
	file, err := p.parser.ParseString(name, input)
	if err != nil {
		return nil, fmt.Errorf("face: parse error: %w", err)
	}
	return decode(file)
}

// ParseFile parses the face file at path.
func (p *Parser) ParseFile(path string) (*Face, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("face: failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(path, file)
}
