// Package vips measures images with libvips.
package vips

import "github.com/h2non/bimg"

type Measurer struct{}

// Size returns the pixel width and height of an encoded image.
func (Measurer) Size(data []byte) (int, int, error) {
	size, err := bimg.NewImage(data).Size()
	if err != nil {
		return 0, 0, err
	}
	return size.Width, size.Height, nil
}
