package util

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// NormalizeImage 解码图片，超出上限时等比缩放，统一转为 JPEG 输出
func NormalizeImage(reader io.Reader, maxWidth, maxHeight int) (*bytes.Buffer, int64, error) {
	img, err := imaging.Decode(reader, imaging.AutoOrientation(true))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxWidth || bounds.Dy() > maxHeight {
		img = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err = imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, 0, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf, int64(buf.Len()), nil
}
