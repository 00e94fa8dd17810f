package camera

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/fastlab-io/server/plugins/instrument"
)

// Encoder converts camera frames into JPEG images.
type Encoder struct {
	quality  int
	maxWidth int
}

// NewEncoder constructs a new encoder.
// Zero maxWidth keeps the original frame size.
func NewEncoder(quality int, maxWidth int) *Encoder {
	return &Encoder{
		quality:  quality,
		maxWidth: maxWidth,
	}
}

// Prepare converts frame into an image and scales it down if needed.
func (e *Encoder) Prepare(frame *instrument.Frame) (image.Image, error) {
	img, err := frame.ToImage()
	if err != nil {
		return nil, err
	}

	if e.maxWidth > 0 && img.Bounds().Dx() > e.maxWidth {
		return imaging.Resize(img, e.maxWidth, 0, imaging.Lanczos), nil
	}

	return img, nil
}

// Encode writes image as JPEG.
func (e *Encoder) Encode(img image.Image) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0))
	err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(e.quality))
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// EncodeFrame prepares and encodes a single frame.
func (e *Encoder) EncodeFrame(frame *instrument.Frame) ([]byte, error) {
	img, err := e.Prepare(frame)
	if err != nil {
		return nil, err
	}

	return e.Encode(img)
}
