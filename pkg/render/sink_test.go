package render

import (
	"encoding/json"
	"strings"
	"testing"
)

func testScene() Scene {
	return Scene{
		Width:  600,
		Height: 500,
		Font:   "Impact",
		Glyphs: []Glyph{
			{Key: "k1", Text: "Go", X: 10, Y: -20.5, Rotate: 90, FontSize: 70, Fill: Palette[0], Opacity: 1},
			{Key: "k2", Text: "<b>&", X: 0, Y: 0, FontSize: 20, Fill: Palette[1], Opacity: 1},
		},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testScene()))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 600 500" width="600" height="500">`) {
		t.Errorf("unexpected header: %s", svg[:80])
	}
	if n := strings.Count(svg, "<text "); n != 2 {
		t.Errorf("got %d <text> elements, want 2", n)
	}
	for _, want := range []string{
		`<g transform="translate(300,250)"`,
		`text-anchor="middle"`,
		`transform="translate(10,-20.5)rotate(90)"`,
		`font-size="70px"`,
		`fill="#1f77b4"`,
		`&lt;b&gt;&amp;</text>`,
		`Impact, `,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(svg, "@font-face") {
		t.Error("font should not be embedded by default")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(testScene(), WithEmbeddedFont(), WithBackground("#fff"), WithID("cloud")))
	for _, want := range []string{"@font-face", "data:font/ttf;base64,", `fill="#fff"`, `id="cloud"`, "&#39;Go Bold&#39;, Impact"} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	svg := string(RenderSVG(Scene{Width: 100, Height: 50}))
	if strings.Contains(svg, "<text") {
		t.Error("empty scene should have no text")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("SVG not terminated")
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testScene(), WithJSONSeed(7), WithJSONMode(ModeFullRedraw))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	var out struct {
		Width  float64 `json:"width"`
		Seed   uint64  `json:"seed"`
		Mode   string  `json:"mode"`
		Glyphs []Glyph `json:"glyphs"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Width != 600 || out.Seed != 7 || out.Mode != "redraw" || len(out.Glyphs) != 2 {
		t.Errorf("decoded = %+v", out)
	}

	empty, _ := RenderJSON(Scene{})
	if !strings.Contains(string(empty), `"glyphs": []`) {
		t.Errorf("empty scene should encode an empty glyph list: %s", empty)
	}
}

func TestEncodeOps(t *testing.T) {
	r := NewReconciler(ModeIncremental)
	ops := r.Reconcile(placement("a"))
	data, err := EncodeOps(3, ops)
	if err != nil {
		t.Fatalf("EncodeOps: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"generation":3`, `"kind":"enter"`, `"duration_ms":600`, `"key":"a"`} {
		if !strings.Contains(s, want) {
			t.Errorf("ops JSON missing %s: %s", want, s)
		}
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{
		0:      "0",
		-0.001: "0",
		1.5:    "1.5",
		2.0:    "2",
		-3.126: "-3.13",
		300:    "300",
	}
	for in, want := range tests {
		if got := num(in); got != want {
			t.Errorf("num(%g) = %q, want %q", in, got, want)
		}
	}
}
