package textmetrics

import (
	"image"
	"math"

	"github.com/mattn/go-runewidth"
)

// Box approximates every glyph as a solid block. A display column is
// Aspect times the font size wide and one font size tall.
type Box struct {
	Aspect float64
}

// Rasterize implements Provider.
func (b Box) Rasterize(text string, size float64) (*image.Alpha, error) {
	aspect := b.Aspect
	if aspect <= 0 {
		aspect = 0.6
	}
	cols := runewidth.StringWidth(text)
	if cols == 0 || size <= 0 {
		return image.NewAlpha(image.Rectangle{}), nil
	}
	fw, fh := math.Ceil(float64(cols)*size*aspect), math.Ceil(size)
	if err := checkDimensions(fw, fh); err != nil {
		return nil, err
	}
	w, h := int(fw), int(fh)
	img := image.NewAlpha(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img, nil
}
