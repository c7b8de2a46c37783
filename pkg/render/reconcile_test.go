package render

import (
	"testing"

	"github.com/matzehuels/wordcloud/pkg/pack"
)

func placement(keys ...string) []pack.Placed {
	out := make([]pack.Placed, len(keys))
	for i, k := range keys {
		out[i] = pack.Placed{Key: k, Text: k, X: float64(i * 10), Y: float64(-i * 5), FontSize: float64(20 + i)}
	}
	return out
}

func kinds(ops []Op) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = op.Kind.String() + ":" + op.Key
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestReconcileEnterUpdateExit(t *testing.T) {
	r := NewReconciler(ModeIncremental)

	ops := r.Reconcile(placement("a", "b"))
	if got, want := kinds(ops), []string{"enter:a", "enter:b"}; !equal(got, want) {
		t.Fatalf("first pass = %v, want %v", got, want)
	}

	// b moves to index 0 (new position and color), a exits, c enters.
	next := placement("b", "c")
	ops = r.Reconcile(next)
	if got, want := kinds(ops), []string{"exit:a", "update:b", "enter:c"}; !equal(got, want) {
		t.Fatalf("second pass = %v, want %v", got, want)
	}

	glyphs := r.Glyphs()
	if len(glyphs) != 2 || glyphs[0].Key != "b" || glyphs[1].Key != "c" {
		t.Fatalf("glyphs = %+v", glyphs)
	}
	if glyphs[0].Fill != Palette[0] || glyphs[1].Fill != Palette[1] {
		t.Errorf("fills = %s, %s; want palette by placed index", glyphs[0].Fill, glyphs[1].Fill)
	}
}

func TestReconcileOpShapes(t *testing.T) {
	r := NewReconciler(ModeIncremental)
	ops := r.Reconcile(placement("a"))
	enter := ops[0]
	if enter.From.FontSize != 1 || enter.From.Opacity != 1 {
		t.Errorf("enter starts at size %g opacity %g, want 1 and 1", enter.From.FontSize, enter.From.Opacity)
	}
	if enter.To.FontSize != 20 || enter.Duration != EnterDuration {
		t.Errorf("enter target = %+v over %v", enter.To, enter.Duration)
	}
	if enter.From.X != enter.To.X || enter.From.Y != enter.To.Y {
		t.Error("enter should start at the target position")
	}

	ops = r.Reconcile(nil)
	exit := ops[0]
	if exit.Kind != OpExit || exit.Duration != ExitDuration {
		t.Fatalf("exit = %+v", exit)
	}
	if exit.To.Opacity != ExitOpacity || exit.To.FontSize != 1 {
		t.Errorf("exit target = %+v", exit.To)
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d after exit", r.Len())
	}
}

func TestReconcileIdempotent(t *testing.T) {
	r := NewReconciler(ModeIncremental)
	p := placement("x", "y", "z")
	r.Reconcile(p)
	if ops := r.Reconcile(p); len(ops) != 0 {
		t.Errorf("second reconcile produced %v", kinds(ops))
	}
}

func TestReconcileNoEnterExitOnSecondPassWithMovedGlyphs(t *testing.T) {
	r := NewReconciler(ModeIncremental)
	r.Reconcile(placement("x", "y"))

	moved := placement("x", "y")
	moved[0].X += 3
	moved[1].Rotate = 90
	enter, update, exit := Counts(r.Reconcile(moved))
	if enter != 0 || exit != 0 || update != 2 {
		t.Errorf("counts = %d/%d/%d, want 0/2/0", enter, update, exit)
	}
}

func TestReconcileFullRedraw(t *testing.T) {
	r := NewReconciler(ModeFullRedraw)
	r.Reconcile(placement("a", "b"))

	ops := r.Reconcile(placement("a", "b"))
	want := []string{"exit:a", "exit:b", "enter:a", "enter:b"}
	if got := kinds(ops); !equal(got, want) {
		t.Fatalf("redraw pass = %v, want %v", got, want)
	}
	if r.Mode() != ModeFullRedraw {
		t.Errorf("Mode() = %v", r.Mode())
	}
}

func TestReconcileDuplicateKeys(t *testing.T) {
	r := NewReconciler(ModeIncremental)
	p := placement("a", "a", "b")
	ops := r.Reconcile(p)
	if got, want := kinds(ops), []string{"enter:a", "enter:b"}; !equal(got, want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
}

func TestReconcileRoundTripRestoresScene(t *testing.T) {
	r := NewReconciler(ModeIncremental)
	before := placement("a", "b")
	r.Reconcile(before)
	snapshot := r.Glyphs()

	r.Reconcile(append(placement("a", "b"), pack.Placed{Key: "test", Text: "Test", FontSize: 10}))
	r.Reconcile(before)

	after := r.Glyphs()
	if len(after) != len(snapshot) {
		t.Fatalf("len = %d, want %d", len(after), len(snapshot))
	}
	for i := range after {
		if after[i] != snapshot[i] {
			t.Errorf("glyph %d = %+v, want %+v", i, after[i], snapshot[i])
		}
	}
}

func TestReset(t *testing.T) {
	r := NewReconciler(ModeIncremental)
	r.Reconcile(placement("a", "b"))
	ops := r.Reset()
	if enter, _, exit := Counts(ops); enter != 0 || exit != 2 {
		t.Errorf("Reset ops = %v", kinds(ops))
	}
	if r.Len() != 0 {
		t.Error("Reset should clear the scene")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeIncremental, false},
		{"incremental", ModeIncremental, false},
		{"redraw", ModeFullRedraw, false},
		{"full", ModeFullRedraw, false},
		{"sometimes", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestFill(t *testing.T) {
	if Fill(0) != "#1f77b4" || Fill(20) != Fill(0) || Fill(21) != "#aec7e8" {
		t.Error("Fill should cycle the category20 palette")
	}
}
