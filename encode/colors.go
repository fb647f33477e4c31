package encode

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml/lexer"
	"github.com/goccy/go-yaml/printer"
)

// Colors assigns terminal colors to the token classes of YAML output.
type Colors struct {
	MapKey color.Attribute
	String color.Attribute
	Number color.Attribute
	Bool   color.Attribute
	Anchor color.Attribute
}

func NewColors() *Colors {
	return &Colors{
		MapKey: color.FgHiCyan,
		String: color.FgHiGreen,
		Number: color.FgHiMagenta,
		Bool:   color.FgHiYellow,
		Anchor: color.FgHiBlue,
	}
}

// Colorize returns src, a YAML document, with color escapes inserted.
// Colorize is a no-op when color output is globally disabled (see
// color.NoColor).
func (c *Colors) Colorize(src string) string {
	if color.NoColor {
		return src
	}
	prop := func(a color.Attribute) func() *printer.Property {
		return func() *printer.Property {
			return &printer.Property{
				Prefix: escape(a),
				Suffix: escape(color.Reset),
			}
		}
	}
	p := printer.Printer{
		MapKey: prop(c.MapKey),
		String: prop(c.String),
		Number: prop(c.Number),
		Bool:   prop(c.Bool),
		Anchor: prop(c.Anchor),
		Alias:  prop(c.Anchor),
	}
	res := p.PrintTokens(lexer.Tokenize(src))
	if len(src) != 0 && src[len(src)-1] == '\n' && (len(res) == 0 || res[len(res)-1] != '\n') {
		res += "\n"
	}
	return res
}

func escape(a color.Attribute) string {
	return fmt.Sprintf("\x1b[%dm", a)
}
