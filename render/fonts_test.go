package render

import (
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestFaceFallback(t *testing.T) {
	tests := []struct {
		name     string
		fontName string
	}{
		{"empty name", ""},
		{"unregistered name", "no-such-font"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Face(tt.fontName, 16); got != basicfont.Face7x13 {
				t.Errorf("Face(%q) did not fall back to basicfont", tt.fontName)
			}
		})
	}
}

func TestRegisterFontEmpty(t *testing.T) {
	RegisterFont("", []byte{1})
	RegisterFont("x", nil)
	if Face("x", 12) != basicfont.Face7x13 {
		t.Error("empty data registration should not produce a face")
	}
}
