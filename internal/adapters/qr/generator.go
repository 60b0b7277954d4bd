// Package qr renders profile QR codes to PNG files on local disk.
package qr

import (
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/Litjoaco/inacap/internal/domain"
)

type pngGenerator struct {
	baseURL string
	dir     string
}

// NewPNGGenerator returns a QRGenerator that writes PNG files under dir. Each
// code encodes the public-profile URL for the user, so scanning it at a kiosk
// resolves the member without typing anything.
func NewPNGGenerator(baseURL, dir string) domain.QRGenerator {
	return &pngGenerator{baseURL: baseURL, dir: dir}
}

func (g *pngGenerator) Generate(userID string) (string, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create qr directory: %w", err)
	}
	url := fmt.Sprintf("%s/u/%s", g.baseURL, userID)
	path := filepath.Join(g.dir, fmt.Sprintf("qr_usuario_%s.png", userID))
	if err := qrcode.WriteFile(url, qrcode.Medium, 256, path); err != nil {
		return "", fmt.Errorf("failed to write qr code: %w", err)
	}
	return path, nil
}
