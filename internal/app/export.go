package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/quickcard/internal/event"
	"github.com/dshills/quickcard/internal/export"
)

// Export deselects, waits for the clean frame and rasterizes the card.
// The document and its history are not modified.
func (a *App) Export(ctx context.Context, format export.Format) (export.Result, error) {
	res, err := a.exporter.Export(ctx, format)
	if err != nil {
		return export.Result{}, err
	}
	a.publish(event.TopicExportCompleted, res)
	return res, nil
}

// ExportFile exports and writes the image into dir under its suggested
// file name. It returns the path written.
func (a *App) ExportFile(ctx context.Context, format export.Format, dir string) (string, error) {
	res, err := a.Export(ctx, format)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, res.Filename)
	if err := os.WriteFile(path, res.Data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	a.logger.Info("wrote %s", path)
	return path, nil
}
