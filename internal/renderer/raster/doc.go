// Package raster draws business card scenes into images.
//
// The renderer reads a scene.Scene and paints each element into its own
// buffer at the configured pixel ratio, then composites the buffer onto
// the canvas rotated about the element's center, the way a browser applies
// a CSS rotate transform. The selected element gets a dashed outline in
// the accent color, which is why exports clear the selection first.
//
// Usage:
//
//	r := raster.New(app, raster.DefaultOptions(), logger)
//	img, err := r.Render(ctx)
//
//	// As an export.Rasterizer
//	data, err := r.Rasterize(ctx, export.PNG)
//
// Text uses the Go font family for every font family name; layout is
// greedy word wrap inside the element box.
package raster
