package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

const (
	// MaxBound is the bounding box (width and height) photos are scaled
	// into before submission to the vision service.
	MaxBound = 1024
	// jpegQuality matches what the marketplace CDN serves; good enough for
	// vision analysis at a fraction of the upload size.
	jpegQuality = 85
)

// decode parses downloaded bytes into an image. JPEG, PNG and GIF are
// accepted; anything else is a decode failure and the URL is skipped.
func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// fitWithin computes the dimensions of src scaled to fit maxW×maxH with
// aspect ratio preserved. Images already inside the box keep their size;
// upscaling never happens.
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	return newW, newH
}

// scaleToFit downscales src into the given bounding box. Returns src
// unchanged when it already fits.
func scaleToFit(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := fitWithin(b.Dx(), b.Dy(), maxW, maxH)
	if w == b.Dx() && h == b.Dy() {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

// encodeJPEG re-encodes an image as compressed JPEG.
func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// processPhoto decodes raw photo bytes, fits them in the standard bounding
// box and re-encodes as JPEG, returning the bounded pixels alongside the
// compressed bytes.
func processPhoto(data []byte) (image.Image, []byte, error) {
	img, err := decode(data)
	if err != nil {
		return nil, nil, err
	}
	bounded := scaleToFit(img, MaxBound, MaxBound)
	out, err := encodeJPEG(bounded)
	if err != nil {
		return nil, nil, err
	}
	return bounded, out, nil
}
