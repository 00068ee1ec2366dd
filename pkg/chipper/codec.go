package chipper

import (
	"fmt"
	"image"
	"image/gif"
	"io"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"golang.org/x/image/tiff"
)

// JPEGQuality is used when a stage rewrites a JPEG chip.
var JPEGQuality = 95

func tiffEncoder(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

func gifEncoder(w io.Writer, img image.Image) error {
	return gif.Encode(w, img, nil)
}

// encoderFor returns an encoder that writes the format implied by ext.
func encoderFor(ext string) (imgio.Encoder, error) {
	switch strings.ToLower(ext) {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(JPEGQuality), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	case ".tif", ".tiff":
		return tiffEncoder, nil
	case ".gif":
		return gifEncoder, nil
	}
	return nil, fmt.Errorf("no encoder for %q", ext)
}

// save writes img to path in the format implied by its extension.
func save(path string, img image.Image, ext string) error {
	enc, err := encoderFor(ext)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, img, enc); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
