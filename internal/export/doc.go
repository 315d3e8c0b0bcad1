// Package export captures the rendered business card as a PNG or JPEG.
//
// The editor core does no rasterization itself. An Exporter coordinates
// three collaborators: a Deselector (the application, which owns the
// selection), a RenderSync (the rendering layer's frame acknowledgements)
// and a Rasterizer. Selection must be cleared and that state rendered
// before capture, otherwise the selection outline ends up in the image.
package export
