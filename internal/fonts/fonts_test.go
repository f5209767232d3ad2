package fonts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goitalic"
)

func TestParseWeight(t *testing.T) {
	tests := []struct {
		token string
		want  Weight
	}{
		{"", WeightNormal},
		{"normal", WeightNormal},
		{"Bold", WeightBold},
		{"lighter", WeightLight},
		{"bolder", WeightBolder},
		{"600", 600},
	}
	for _, tt := range tests {
		got, err := ParseWeight(tt.token)
		if err != nil {
			t.Fatalf("ParseWeight(%q): %v", tt.token, err)
		}
		if got != tt.want {
			t.Errorf("ParseWeight(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}

	for _, bad := range []string{"heavy", "50", "450", "1000"} {
		if _, err := ParseWeight(bad); !errors.Is(err, ErrUnknownWeight) {
			t.Errorf("ParseWeight(%q) err = %v, want ErrUnknownWeight", bad, err)
		}
	}
}

func TestRegistryDefaults(t *testing.T) {
	r := NewRegistry()
	for _, name := range DefaultFamilies {
		if !r.Has(name) {
			t.Errorf("default family %q missing", name)
		}
	}
	if r.Font("Arial", WeightBold) == r.Font("Arial", WeightNormal) {
		t.Error("bold and normal Arial resolve to the same font")
	}
	if r.Font("Courier New", WeightNormal) == r.Font("Arial", WeightNormal) {
		t.Error("Courier New should use the monospace font")
	}
	if r.Font("No Such Font", WeightNormal) != r.Font(DefaultFamily, WeightNormal) {
		t.Error("unknown family should fall back to the default family")
	}
	// 600 sits halfway between medium and bold.
	if r.Font("Arial", 600) != r.Font("Arial", WeightMedium) {
		t.Error("ties should resolve to the lighter weight")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Brand Sans-Bold.ttf"), goitalic.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.ttf"), []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	n, err := r.LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("registered %d fonts, want 1", n)
	}
	if !r.Has("brand sans") {
		t.Fatalf("families = %v, want brand sans", r.Families())
	}
}
