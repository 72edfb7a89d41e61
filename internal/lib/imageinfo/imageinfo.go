package imageinfo

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

type Info struct {
	Width  int
	Height int
	Format string
}

// Inspect decodes only the image header of data.
func Inspect(data []byte) (Info, error) {
	return InspectReader(bytes.NewReader(data))
}

func InspectReader(r io.Reader) (Info, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return Info{}, fmt.Errorf("not an image: %w", err)
	}

	return Info{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
	}, nil
}

// Ext returns the stored extension for a decoded format. The client's filename is ignored.
func Ext(format string) string {
	if format == "jpeg" {
		return ".jpg"
	}

	return "." + format
}

// FormatOf derives the format reported for a stored object from its key.
func FormatOf(key string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(key)), ".")
	if ext == "jpg" {
		return "jpeg"
	}

	return ext
}
