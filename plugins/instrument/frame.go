package instrument

import (
	"image"
)

const (
	// DefaultBitDepth is used when frame doesn't report one.
	DefaultBitDepth = 16
)

// Frame contains a single camera acquisition.
// Pixels are stored row by row, Width*Height values.
type Frame struct {
	Counter  int64    `json:"counter"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	BitDepth int      `json:"bit_depth"`
	Pixels   []uint16 `json:"pixels"`
}

// NewFrame creates a frame from the 8-bit grayscale image.
func NewFrame(counter int64, img *image.Gray) *Frame {
	b := img.Bounds()
	f := &Frame{
		Counter:  counter,
		Width:    b.Dx(),
		Height:   b.Dy(),
		BitDepth: 8,
		Pixels:   make([]uint16, 0, b.Dx()*b.Dy()),
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			f.Pixels = append(f.Pixels, uint16(img.GrayAt(x, y).Y))
		}
	}

	return f
}

// ToImage converts frame into 16-bit grayscale image.
// Values are scaled from the frame bit depth into the full 16-bit range.
func (f *Frame) ToImage() (*image.Gray16, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return nil, &ErrInvalidFrame{Reason: "empty dimensions"}
	}

	if len(f.Pixels) != f.Width*f.Height {
		return nil, &ErrInvalidFrame{Reason: "pixels count doesn't match dimensions"}
	}

	depth := f.BitDepth
	if 0 == depth {
		depth = DefaultBitDepth
	}

	if depth < 1 || depth > 16 {
		return nil, &ErrInvalidFrame{Reason: "unsupported bit depth"}
	}

	shift := uint(16 - depth)
	img := image.NewGray16(image.Rect(0, 0, f.Width, f.Height))
	for ii, v := range f.Pixels {
		o := ii * 2
		s := v << shift
		img.Pix[o] = uint8(s >> 8)
		img.Pix[o+1] = uint8(s)
	}

	return img, nil
}
