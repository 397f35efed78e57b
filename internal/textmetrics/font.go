package textmetrics

import (
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// ErrNoFont is returned when a font provider has no usable font.
var ErrNoFont = errors.New("no font loaded")

// Font rasterizes words with a TrueType font.
type Font struct {
	ttf *truetype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// DefaultFont returns a provider for the embedded Go Regular font.
func DefaultFont() (*Font, error) {
	return ParseFont(goregular.TTF)
}

// LoadFont parses a TrueType file from disk.
func LoadFont(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	return ParseFont(data)
}

// ParseFont parses TrueType data.
func ParseFont(data []byte) (*Font, error) {
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Font{ttf: ttf, faces: map[float64]font.Face{}}, nil
}

func (f *Font) face(size float64) font.Face {
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(f.ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	f.faces[size] = face
	return face
}

// Rasterize draws text on a tight canvas of advance width by line height.
func (f *Font) Rasterize(text string, size float64) (*image.Alpha, error) {
	if f == nil || f.ttf == nil {
		return nil, ErrNoFont
	}
	if size <= 0 {
		return image.NewAlpha(image.Rectangle{}), nil
	}
	// 26.6 fixed point overflows well before this, so check the size first.
	if err := checkDimensions(size, size); err != nil {
		return nil, err
	}
	face := f.face(size)
	m := face.Metrics()
	advance := font.MeasureString(face, text)
	fw := math.Ceil(float64(advance) / 64)
	fh := math.Ceil(float64(m.Ascent+m.Descent) / 64)
	if err := checkDimensions(fw, fh); err != nil {
		return nil, err
	}
	w, h := int(fw), int(fh)
	img := image.NewAlpha(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: m.Ascent},
	}
	d.DrawString(text)
	return img, nil
}
