package qrcode

import (
	"encoding/base64"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	qr "github.com/skip2/go-qrcode"
)

// Options controls the rendered QR image.
type Options struct {
	// Width is the output image size in pixels.
	Width int
	// Margin controls the quiet zone around the code. Zero disables it;
	// any positive value keeps the standard four-module border.
	Margin int
	// Foreground and Background are hex colors, e.g. "#000000".
	Foreground string
	Background string
}

// DefaultOptions mirrors the options the receipt pipeline uses.
func DefaultOptions() Options {
	return Options{
		Width:      300,
		Margin:     2,
		Foreground: "#000000",
		Background: "#FFFFFF",
	}
}

// Encoder renders URLs into scannable QR images. Encoding is deterministic
// for a given input and option set.
type Encoder struct {
	opts Options
}

// NewEncoder creates an encoder with the given options. Zero-value fields
// fall back to defaults.
func NewEncoder(opts Options) *Encoder {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Foreground == "" {
		opts.Foreground = def.Foreground
	}
	if opts.Background == "" {
		opts.Background = def.Background
	}
	return &Encoder{opts: opts}
}

// EncodePNG renders the given URL as a PNG image.
func (e *Encoder) EncodePNG(url string) ([]byte, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("qrcode: cannot encode empty content")
	}

	code, err := qr.New(url, qr.Medium)
	if err != nil {
		return nil, fmt.Errorf("qrcode: failed to build code: %w", err)
	}

	fg, err := parseHexColor(e.opts.Foreground)
	if err != nil {
		return nil, fmt.Errorf("qrcode: invalid foreground color: %w", err)
	}
	bg, err := parseHexColor(e.opts.Background)
	if err != nil {
		return nil, fmt.Errorf("qrcode: invalid background color: %w", err)
	}
	code.ForegroundColor = fg
	code.BackgroundColor = bg
	code.DisableBorder = e.opts.Margin <= 0

	png, err := code.PNG(e.opts.Width)
	if err != nil {
		return nil, fmt.Errorf("qrcode: failed to render PNG: %w", err)
	}
	return png, nil
}

// EncodeDataURI renders the given URL as an embeddable PNG data URI,
// matching the shape browsers accept in an <img> src attribute.
func (e *Encoder) EncodeDataURI(url string) (string, error) {
	png, err := e.EncodePNG(url)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

func parseHexColor(s string) (color.Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return nil, fmt.Errorf("expected 6 hex digits, got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, err
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xFF,
	}, nil
}
