package textmetrics

import (
	"errors"
	"math"
	"testing"
)

func TestBoxUsesDisplayWidth(t *testing.T) {
	img, err := Box{Aspect: 0.5}.Rasterize("ab", 10)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 10 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
	wide, _ := Box{Aspect: 0.5}.Rasterize("日本", 10)
	if wide.Bounds().Dx() != 20 {
		t.Fatalf("expected wide runes to take two columns, got %v", wide.Bounds())
	}
	empty, _ := Box{}.Rasterize("", 10)
	if !empty.Bounds().Empty() {
		t.Fatalf("expected empty image for empty text")
	}
}

func TestDefaultFontDrawsInk(t *testing.T) {
	f, err := DefaultFont()
	if err != nil {
		t.Fatalf("default font: %v", err)
	}
	img, err := f.Rasterize("Hello", 32)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	b := img.Bounds()
	if b.Dx() < 40 || b.Dy() < 30 {
		t.Fatalf("unexpected glyph box %v", b)
	}
	ink := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if Ink(img, x, y) {
				ink++
			}
		}
	}
	if ink == 0 || ink == b.Dx()*b.Dy() {
		t.Fatalf("expected partial coverage, got %d of %d", ink, b.Dx()*b.Dy())
	}

	again, _ := f.Rasterize("Hello", 32)
	for i := range img.Pix {
		if img.Pix[i] != again.Pix[i] {
			t.Fatalf("rasterization is not deterministic")
		}
	}
}

func TestNilFontIsUnsupported(t *testing.T) {
	var f *Font
	if _, err := f.Rasterize("x", 10); err != ErrNoFont {
		t.Fatalf("expected ErrNoFont, got %v", err)
	}
}

func TestRotateQuarterTurnSwapsSides(t *testing.T) {
	img, _ := Box{Aspect: 1}.Rasterize("abcd", 10)
	rot := Rotate(img, math.Pi/2)
	if rot.Bounds().Dx() != 10 || rot.Bounds().Dy() != 40 {
		t.Fatalf("unexpected rotated size %v", rot.Bounds())
	}
	if !Ink(rot, 5, 20) {
		t.Fatalf("expected ink at the center")
	}
	if Rotate(img, 0) != img {
		t.Fatalf("expected zero rotation to return the source")
	}
}

func TestOversizedTextIsRejected(t *testing.T) {
	if _, err := (Box{}).Rasterize("cloud", 1e9); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge from box metrics, got %v", err)
	}
	f, err := DefaultFont()
	if err != nil {
		t.Fatalf("default font: %v", err)
	}
	if _, err := f.Rasterize("cloud", 1e9); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge from font metrics, got %v", err)
	}
	if _, err := (Box{}).Rasterize("cloud", 40); err != nil {
		t.Fatalf("expected normal sizes to rasterize, got %v", err)
	}
}
