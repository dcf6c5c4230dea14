package services

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"ictinvoice/testhelpers"
)

var pngMagic = []byte("\x89PNG")

func TestLoadAsset_ReencodesAsPNG(t *testing.T) {
	dir := t.TempDir()
	path := testhelpers.WriteTestImage(t, dir, "Signature.JPG", 300, 100)

	asset := LoadAsset(path, zap.NewNop())
	if asset == nil {
		t.Fatal("LoadAsset() = nil")
	}
	if !bytes.HasPrefix(asset.PNG, pngMagic) {
		t.Error("asset is not PNG encoded")
	}
	if asset.Width != 300 || asset.Height != 100 {
		t.Errorf("size = %dx%d, want 300x100", asset.Width, asset.Height)
	}
	if asset.Aspect() != 3 {
		t.Errorf("Aspect() = %v, want 3", asset.Aspect())
	}
}

func TestLoadAsset_DownsizesLargeImages(t *testing.T) {
	path := testhelpers.WriteTestImage(t, t.TempDir(), "Footer.png", 3200, 400)

	asset := LoadAsset(path, zap.NewNop())
	if asset == nil {
		t.Fatal("LoadAsset() = nil")
	}
	if asset.Width != maxAssetSide || asset.Height != 200 {
		t.Errorf("size = %dx%d, want %dx200", asset.Width, asset.Height, maxAssetSide)
	}
}

func TestLoadAsset_SkipsUnusableFiles(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "Logo.png")
	if err := os.WriteFile(corrupt, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		level   zapcore.Level
		message string
	}{
		{"missing", filepath.Join(dir, "nope.png"), zapcore.InfoLevel, "Asset not found, skipping"},
		{"corrupt", corrupt, zapcore.WarnLevel, "Asset could not be decoded, skipping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)

			if asset := LoadAsset(tt.path, zap.New(core)); asset != nil {
				t.Fatalf("LoadAsset(%q) = %+v, want nil", tt.path, asset)
			}

			entries := logs.FilterMessage(tt.message).All()
			if len(entries) != 1 {
				t.Fatalf("expected one %q entry, got %d", tt.message, len(entries))
			}
			if entries[0].Level != tt.level {
				t.Errorf("level = %v, want %v", entries[0].Level, tt.level)
			}
		})
	}
}

func TestLoadAsset_EmptyPath(t *testing.T) {
	if asset := LoadAsset("", zap.NewNop()); asset != nil {
		t.Errorf("LoadAsset(\"\") = %+v, want nil", asset)
	}
}
