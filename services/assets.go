package services

import (
	"bytes"
	"errors"
	"io/fs"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// maxAssetSide bounds the longest side, in pixels, of an embedded image.
const maxAssetSide = 1600

// Asset is an optional letter image, re-encoded as an 8-bit PNG.
type Asset struct {
	PNG    []byte
	Width  int
	Height int
}

// Aspect returns width divided by height.
func (a *Asset) Aspect() float64 {
	if a == nil || a.Height == 0 {
		return 0
	}
	return float64(a.Width) / float64(a.Height)
}

// LoadAsset reads an image for embedding. A missing or unreadable file is not
// an error: it is logged and nil is returned so the letter renders without it.
func LoadAsset(path string, logger *zap.Logger) *Asset {
	if path == "" {
		return nil
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("Asset not found, skipping", zap.String("path", path))
		} else {
			logger.Warn("Asset could not be decoded, skipping", zap.String("path", path), zap.Error(err))
		}
		return nil
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		logger.Warn("Asset has no pixels, skipping", zap.String("path", path))
		return nil
	}

	// The PDF backend rejects 16-bit PNGs, so everything goes through NRGBA.
	nrgba := imaging.Clone(img)
	if b.Dx() > maxAssetSide || b.Dy() > maxAssetSide {
		nrgba = imaging.Fit(nrgba, maxAssetSide, maxAssetSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, nrgba, imaging.PNG); err != nil {
		logger.Warn("Asset could not be re-encoded, skipping", zap.String("path", path), zap.Error(err))
		return nil
	}

	size := nrgba.Bounds()
	return &Asset{PNG: buf.Bytes(), Width: size.Dx(), Height: size.Dy()}
}
