// Package qrterm prints QR codes with block characters for a terminal.
package qrterm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/skip2/go-qrcode"
)

const (
	dark  = "██"
	light = "  "
)

// Matrix encodes content at low error correction, without a quiet zone.
// true marks a dark module.
func Matrix(content string) ([][]bool, error) {
	code, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	code.DisableBorder = true
	return code.Bitmap(), nil
}

// Render writes content as a QR code, one text line per module row.
func Render(w io.Writer, content string) error {
	matrix, err := Matrix(content)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, row := range matrix {
		for _, cell := range row {
			if cell {
				bw.WriteString(dark)
			} else {
				bw.WriteString(light)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
