package parser

import "github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/anchor"

// EMUPerPixel is the number of EMUs in one pixel at 96 DPI (914400 / 96).
const EMUPerPixel = 9525

// EMUToPixels converts a length in EMU to whole pixels.
func EMUToPixels(emu int64) int {
	return int(emu / EMUPerPixel)
}

// PixelsToEMU converts a length in pixels to EMU.
func PixelsToEMU(px int) int64 {
	return int64(px) * EMUPerPixel
}

// ExtentPixels returns the width and height of a one-cell anchor in pixels.
func ExtentPixels(ext anchor.Extent) (w, h int) {
	return EMUToPixels(ext.Width), EMUToPixels(ext.Height)
}
