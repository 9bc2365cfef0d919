package render

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var (
	fontData  = map[string][]byte{}
	parsed    = map[string]*truetype.Font{}
	faceCache = map[string]font.Face{}
)

// RegisterFont stores raw TTF data under name.
func RegisterFont(name string, ttf []byte) {
	if name == "" || len(ttf) == 0 {
		return
	}
	fontData[name] = ttf
	delete(parsed, name)
}

// RegisterFontFile reads a TTF file and registers it under name.
func RegisterFontFile(name, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	RegisterFont(name, b)
	return nil
}

// Face returns a sized face for a registered font. An empty or unknown
// name falls back to the built-in basicfont face.
func Face(name string, size float64) font.Face {
	if name == "" {
		return basicfont.Face7x13
	}
	key := fmt.Sprintf("%s:%g", name, size)
	if f, ok := faceCache[key]; ok {
		return f
	}
	ft, ok := parsed[name]
	if !ok {
		data, have := fontData[name]
		if !have {
			return basicfont.Face7x13
		}
		var err error
		ft, err = truetype.Parse(data)
		if err != nil {
			return basicfont.Face7x13
		}
		parsed[name] = ft
	}
	f := truetype.NewFace(ft, &truetype.Options{Size: size})
	faceCache[key] = f
	return f
}
