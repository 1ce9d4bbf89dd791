package images

import (
	"image"
	"image/color"
	"image/draw"
)

const (
	// gridCanvas is the pixel size of the square composite canvas.
	gridCanvas = 1024
	// cellMargin keeps tiled photos from touching cell edges.
	cellMargin = 10
)

// gridBackground fills unoccupied canvas area.
var gridBackground = color.RGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}

// gridLayout picks the cols×rows layout for a photo count.
func gridLayout(count int) (cols, rows int) {
	switch {
	case count <= 1:
		return 1, 1
	case count == 2:
		return 2, 1
	case count <= 4:
		return 2, 2
	default:
		return 3, 2
	}
}

// composeGrid tiles photos onto a single square canvas. Each photo is
// independently downscaled (never upscaled) to fit its cell minus the
// margin and centered there; cells beyond len(photos) stay blank. Cell
// population follows input order, row-major.
func composeGrid(photos []image.Image) (image.Image, int, int) {
	cols, rows := gridLayout(len(photos))
	canvas := image.NewRGBA(image.Rect(0, 0, gridCanvas, gridCanvas))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(gridBackground), image.Point{}, draw.Src)

	cellW := gridCanvas / cols
	cellH := gridCanvas / rows

	for i, photo := range photos {
		if i >= cols*rows {
			break
		}
		col := i % cols
		row := i / cols

		fitted := scaleToFit(photo, cellW-2*cellMargin, cellH-2*cellMargin)
		fb := fitted.Bounds()

		// Center within the cell.
		x := col*cellW + (cellW-fb.Dx())/2
		y := row*cellH + (cellH-fb.Dy())/2

		dst := image.Rect(x, y, x+fb.Dx(), y+fb.Dy())
		draw.Draw(canvas, dst, fitted, fb.Min, draw.Over)
	}

	return canvas, cols, rows
}
