package imaging

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format identifies a supported image file format.
type Format string

const (
	FormatUnknown Format = ""
	FormatPNG     Format = "png"
	FormatJPEG    Format = "jpeg"
	FormatBMP     Format = "bmp"
	FormatGIF     Format = "gif"
	FormatWebP    Format = "webp"
)

var (
	magicPNG  = []byte{0x89, 0x50, 0x4E, 0x47}
	magicJPEG = []byte{0xFF, 0xD8}
	magicBMP  = []byte{0x42, 0x4D}
	magicGIF  = []byte{0x47, 0x49, 0x46, 0x38}
	magicRIFF = []byte("RIFF")
	magicWEBP = []byte("WEBP")
)

// SniffFormat detects the image format from magic bytes, falling back
// to the file extension when the bytes match nothing.
func SniffFormat(data []byte, path string) Format {
	switch {
	case bytes.HasPrefix(data, magicPNG):
		return FormatPNG
	case bytes.HasPrefix(data, magicJPEG):
		return FormatJPEG
	case bytes.HasPrefix(data, magicGIF):
		return FormatGIF
	case len(data) >= 12 && bytes.HasPrefix(data, magicRIFF) && bytes.Equal(data[8:12], magicWEBP):
		return FormatWebP
	case bytes.HasPrefix(data, magicBMP):
		return FormatBMP
	}
	return formatFromExtension(path)
}

// formatFromExtension maps a file extension (or a bare hint such as
// "png") to a format.
func formatFromExtension(path string) Format {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = "." + path
	}
	switch strings.ToLower(ext) {
	case ".png":
		return FormatPNG
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".bmp":
		return FormatBMP
	case ".gif":
		return FormatGIF
	case ".webp":
		return FormatWebP
	}
	return FormatUnknown
}
