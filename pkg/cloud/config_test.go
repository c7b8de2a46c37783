package cloud

import (
	"math"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Width != 600 || c.Height != 500 {
		t.Errorf("size = %gx%g, want 600x500", c.Width, c.Height)
	}
	if c.WordLimit != 15 || c.MinFontSize != 20 || c.MaxFontSize != 70 {
		t.Errorf("limits = %+v", c)
	}
	if c.Rotation != RotateNone {
		t.Errorf("Rotation = %q", c.Rotation)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestSetDefaultsKeepsExplicitValues(t *testing.T) {
	c := Config{Width: 300, WordLimit: 3, Rotation: RotateRandom}
	c.SetDefaults()
	if c.Width != 300 || c.Height != DefaultHeight || c.WordLimit != 3 || c.Rotation != RotateRandom {
		t.Errorf("SetDefaults overwrote values: %+v", c)
	}
}

func TestSetDefaultsKeepsZeroPadding(t *testing.T) {
	c := Default()
	c.Padding = 0
	c.SetDefaults()
	if c.Padding != 0 {
		t.Errorf("Padding = %g, want 0", c.Padding)
	}
	if Default().Padding != DefaultPadding {
		t.Errorf("Default().Padding = %g", Default().Padding)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"min equals max", func(c *Config) { c.MinFontSize, c.MaxFontSize = 30, 30 }, true},
		{"fixed rotation", func(c *Config) { c.Rotation, c.FixedDegree = RotateFixed, -45 }, true},
		{"zero padding", func(c *Config) { c.Padding = 0 }, true},

		{"zero width", func(c *Config) { c.Width = 0 }, false},
		{"negative height", func(c *Config) { c.Height = -1 }, false},
		{"NaN width", func(c *Config) { c.Width = math.NaN() }, false},
		{"zero limit", func(c *Config) { c.WordLimit = 0 }, false},
		{"min above max", func(c *Config) { c.MinFontSize, c.MaxFontSize = 80, 70 }, false},
		{"zero min font", func(c *Config) { c.MinFontSize = 0 }, false},
		{"unknown rotation", func(c *Config) { c.Rotation = "sideways" }, false},
		{"fixed with inf degree", func(c *Config) { c.Rotation, c.FixedDegree = RotateFixed, math.Inf(1) }, false},
		{"negative padding", func(c *Config) { c.Padding = -2 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("Validate() = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", RotateNone, false},
		{"0", RotateNone, false},
		{"none", RotateNone, false},
		{"1", RotateRandom, false},
		{"Random", RotateRandom, false},
		{"2", RotateFixed, false},
		{" fixed ", RotateFixed, false},
		{"3", "", true},
		{"diagonal", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestModeUnmarshalText(t *testing.T) {
	var m Mode
	if err := m.UnmarshalText([]byte("2")); err != nil || m != RotateFixed {
		t.Errorf("UnmarshalText(2) = %q, %v", m, err)
	}
	if err := m.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText(bogus) should fail")
	}
}

func TestString(t *testing.T) {
	c := Default()
	c.Rotation, c.FixedDegree = RotateFixed, 45
	want := "600x500 limit=15 font=20-70 rotate=fixed(45°)"
	if got := c.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
