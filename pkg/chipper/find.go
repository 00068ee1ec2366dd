package chipper

import (
	"fmt"
	"image"
	"path/filepath"
	"slices"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

// Scan returns the names of files directly inside dir, sorted.
// Subdirectories are not returned.
func Scan(dir string) ([]string, error) {
	des, err := godirwalk.ReadDirents(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	names := []string{}
	for _, de := range des {
		if de.IsDir() {
			continue
		}
		if !de.IsRegular() && !de.IsSymlink() {
			continue
		}
		names = append(names, de.Name())
	}

	slices.Sort(names)
	return names, nil
}

func decode(path string) (image.Image, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Load decodes every image in dir. Files that fail to decode are left out
// and listed in Skipped.
func Load(dir string) (*Batch, error) {
	names, err := Scan(dir)
	if err != nil {
		return nil, err
	}

	b := &Batch{Dir: dir, Images: []*Image{}}
	for _, name := range names {
		img, err := decode(filepath.Join(dir, name))
		if err != nil {
			klog.V(1).Infof("skipping %s: %v", name, err)
			b.Skipped = append(b.Skipped, name)
			continue
		}
		b.Images = append(b.Images, newImage(dir, name, img))
	}

	klog.V(1).Infof("loaded %d images from %s (%d skipped)", len(b.Images), dir, len(b.Skipped))
	return b, nil
}
