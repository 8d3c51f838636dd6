// Package djcifex is a pure Go port of the CIF "polish" image interchange
// format: a plain-text raster format in which every integer, from pixel
// channel values to image dimensions, is spelled out as a Polish number
// word instead of being written in digits.
package djcifex
