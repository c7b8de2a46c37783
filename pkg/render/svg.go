package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/wordcloud/pkg/fonts"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	embedFont  bool
	background string
	id         string
}

// WithEmbeddedFont inlines the measurement font so the drawing matches the
// packed boxes exactly.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// WithBackground fills the canvas with color.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithID sets the id attribute of the root element.
func WithID(id string) SVGOption { return func(r *svgRenderer) { r.id = id } }

// RenderSVG writes s as a standalone SVG document. Glyph coordinates are
// relative to the canvas center, so all text is drawn inside a group
// translated to (Width/2, Height/2).
func RenderSVG(s Scene, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	idAttr := ""
	if r.id != "" {
		idAttr = fmt.Sprintf(` id="%s"`, html.EscapeString(r.id))
	}
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg"%s viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		idAttr, num(s.Width), num(s.Height), num(s.Width), num(s.Height))

	family := fontFamily(s.Font)
	if r.embedFont {
		fmt.Fprintf(&buf, "  <defs><style>@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s); }</style></defs>\n",
			fonts.FontFamily, fonts.GoBoldBase64())
		family = fmt.Sprintf("'%s', %s", fonts.FontFamily, family)
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", html.EscapeString(r.background))
	}

	fmt.Fprintf(&buf, `  <g transform="translate(%s,%s)" font-family="%s" text-anchor="middle">`+"\n",
		num(s.Width/2), num(s.Height/2), html.EscapeString(family))
	for _, g := range s.Glyphs {
		renderGlyph(&buf, g)
	}
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func renderGlyph(buf *bytes.Buffer, g Glyph) {
	fmt.Fprintf(buf, `    <text data-key="%s" transform="%s" font-size="%spx" fill="%s"`,
		html.EscapeString(g.Key), Transform(g), num(g.FontSize), html.EscapeString(g.Fill))
	if g.Opacity != 1 {
		fmt.Fprintf(buf, ` fill-opacity="%s"`, num(g.Opacity))
	}
	fmt.Fprintf(buf, ">%s</text>\n", html.EscapeString(g.Text))
}

// Transform returns the SVG transform attribute for g.
func Transform(g Glyph) string {
	return fmt.Sprintf("translate(%s,%s)rotate(%s)", num(g.X), num(g.Y), num(g.Rotate))
}

func fontFamily(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fonts.FallbackFontFamily
	}
	if strings.ContainsAny(name, " ,'\"") {
		name = "'" + strings.ReplaceAll(name, "'", "") + "'"
	}
	return name + ", " + fonts.FallbackFontFamily
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
