package chipper

import (
	"image"
	"path/filepath"
	"strings"
)

// Image is a decoded chip and the file it came from.
type Image struct {
	Name string
	Ext  string
	Path string

	Img image.Image
}

// Base returns the file name without its extension.
func (i *Image) Base() string {
	return strings.TrimSuffix(i.Name, i.Ext)
}

func newImage(dir, name string, img image.Image) *Image {
	return &Image{
		Name: name,
		Ext:  filepath.Ext(name),
		Path: filepath.Join(dir, name),
		Img:  img,
	}
}

// Batch is every decodable image in one directory.
type Batch struct {
	Dir     string
	Images  []*Image
	Skipped []string
}

// Get returns the image with the given file name, or nil.
func (b *Batch) Get(name string) *Image {
	for _, i := range b.Images {
		if i.Name == name {
			return i
		}
	}
	return nil
}

// Len returns the number of decoded images.
func (b *Batch) Len() int {
	return len(b.Images)
}
