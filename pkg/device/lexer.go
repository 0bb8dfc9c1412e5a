package device

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// DeviceLexer defines the lexical structure for device description files.
// The format is line-oriented: one "device" header followed by one "site"
// statement per site, with "--" comments.
var DeviceLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments ("--" to end of line)
	{Name: "Comment", Pattern: `--[^\n]*`},

	// Whitespace
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	// Keywords
	{Name: "KwDevice", Pattern: `\bdevice\b`},
	{Name: "KwSite", Pattern: `\bsite\b`},
	{Name: "KwType", Pattern: `\btype\b`},
	{Name: "KwPin", Pattern: `\bpin\b`},

	// Identifiers: site names include coordinates like IOB_X0Y42, package
	// pins are short alphanumerics like T14
	{Name: "Ident", Pattern: `[A-Za-z$][A-Za-z0-9_./]*`},
})
