// Package testhelpers provides fixtures shared by the package tests.
package testhelpers

import (
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/pocketbase/pocketbase"

	"ictinvoice/config"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: t.TempDir(),
	})
	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}
	return app
}

// WriteTestImage writes a solid-colour image of the given size into dir. The
// format follows the file extension (.png, .jpg, .JPG).
func WriteTestImage(t *testing.T, dir, name string, width, height int) string {
	t.Helper()

	img := imaging.New(width, height, color.NRGBA{R: 30, G: 60, B: 120, A: 255})
	path := filepath.Join(dir, name)
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("failed to write test image %s: %v", path, err)
	}
	return path
}

// LetterConfig returns the default letterhead with logo, footer and
// signature images written into a temporary directory. Compression is off so
// tests can search the PDF for text.
func LetterConfig(t *testing.T) config.Letter {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default().Letter
	cfg.LogoPath = WriteTestImage(t, dir, "Logo.png", 400, 300)
	cfg.FooterPath = WriteTestImage(t, dir, "Footer.png", 1600, 200)
	cfg.SignaturePath = WriteTestImage(t, dir, "Signature.JPG", 300, 100)
	cfg.Compress = false
	return cfg
}

// TestConfig returns a full configuration writing letters and drafts under
// a temporary directory.
func TestConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Letter = LetterConfig(t)
	cfg.Output.Dir = filepath.Join(dir, "letters")
	cfg.Mail.DraftDir = filepath.Join(dir, "drafts")
	cfg.Mail.OpenDrafts = false
	return &cfg
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
