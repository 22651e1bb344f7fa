package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const defaultSize = 256

// Generator renders PNG QR codes of a fixed pixel size.
type Generator struct {
	size int
}

func NewGenerator(size int) *Generator {
	if size <= 0 {
		size = defaultSize
	}
	return &Generator{size: size}
}

// Encode returns content as a PNG QR code.
func (g *Generator) Encode(content string) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, g.size)
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}
	return png, nil
}
