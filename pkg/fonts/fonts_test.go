package fonts

import (
	"encoding/base64"
	"sync"
	"testing"
)

func TestGoBoldParses(t *testing.T) {
	f, err := GoBold()
	if err != nil || f == nil {
		t.Fatalf("GoBold() = %v, %v", f, err)
	}
	again, _ := GoBold()
	if again != f {
		t.Error("GoBold should return the cached font")
	}
}

func TestGoBoldBase64(t *testing.T) {
	data, err := base64.StdEncoding.DecodeString(GoBoldBase64())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty font data")
	}
}

func TestMeasure(t *testing.T) {
	m, err := NewMeasurer()
	if err != nil {
		t.Fatalf("NewMeasurer: %v", err)
	}
	defer m.Close()

	small, err := m.Measure("cloud", 20)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	large, err := m.Measure("cloud", 40)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if small.Width <= 0 || small.Height() <= 0 {
		t.Fatalf("extent = %+v, want positive", small)
	}
	if large.Width <= small.Width*1.8 || large.Width >= small.Width*2.2 {
		t.Errorf("width should scale with size: %g vs %g", small.Width, large.Width)
	}

	longer, _ := m.Measure("clouds", 20)
	if longer.Width <= small.Width {
		t.Errorf("longer text should be wider: %g <= %g", longer.Width, small.Width)
	}

	empty, _ := m.Measure("", 20)
	if empty.Width != 0 {
		t.Errorf("empty width = %g", empty.Width)
	}
}

func TestMeasureConcurrent(t *testing.T) {
	m, err := NewMeasurer()
	if err != nil {
		t.Fatalf("NewMeasurer: %v", err)
	}
	defer m.Close()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(size float64) {
			defer wg.Done()
			if _, err := m.Measure("gopher", size); err != nil {
				t.Errorf("Measure: %v", err)
			}
		}(float64(10 + i))
	}
	wg.Wait()
}
