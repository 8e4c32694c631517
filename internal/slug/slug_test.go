package slug

import (
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Matemáticas", "matematicas"},
		{"  Historia  del   Arte ", "historia-del-arte"},
		{"Ñandú & Pingüino!", "nandu-pinguino"},
		{"a--b---c", "a-b-c"},
		{"física - química", "fisica-quimica"},
		{"Año 2024", "ano-2024"},
		{"日本語", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGenerated(t *testing.T) {
	got := Generated("nota", time.UnixMilli(1700000000123))
	if got != "nota-1700000000123" {
		t.Errorf("Generated = %q", got)
	}
}

func TestRoute(t *testing.T) {
	if Route("") != "/" {
		t.Errorf("home route = %q", Route(""))
	}
	if Route("math") != "/c/math" {
		t.Errorf("category route = %q", Route("math"))
	}
}
