// Package raster paints flat 2D primitives into an RGBA8888 pixel buffer.
//
// It is the paint step of the voxel renderer. Everything handed to a Canvas is
// already projected to screen space; the package knows nothing about cameras or
// depth. Painter's-order drawing is the caller's job.
//
// Primitives:
//
//	Clear, SetPixel (src-over blend), Line, FillRect, StrokeRect,
//	FillPolygon (scanline, even-odd), StrokePolygon, GlowPolygon, Text.
//
// The canvas does not allocate in the draw hot path once its scratch buffers
// have grown to the largest polygon seen.
package raster
