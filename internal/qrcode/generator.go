package qrcode

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	skipqr "github.com/skip2/go-qrcode"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "forecast-qr-api/qrcode"

var (
	// ErrEmptyContent is returned for an empty input text.
	ErrEmptyContent = errors.New("qr content is empty")

	// ErrContentTooLong is returned when the text exceeds the symbol capacity
	// at the configured recovery level.
	ErrContentTooLong = errors.New("qr content exceeds capacity")
)

// Level is recovery level Q. skip2 names its ~25% tier "High".
const Level = skipqr.High

// DefaultPixelsPerModule is the raster scale used when none is configured.
const DefaultPixelsPerModule = 20

var (
	Foreground = color.Black
	Background = color.RGBA{R: 0xF5, G: 0xF5, B: 0xF5, A: 0xFF} // WhiteSmoke
)

// Generator turns text into a PNG-encoded QR code.
type Generator interface {
	Generate(ctx context.Context, text string) ([]byte, error)
}

// SkipGenerator renders QR codes with github.com/skip2/go-qrcode.
type SkipGenerator struct {
	pixelsPerModule int
}

// NewSkipGenerator returns a generator drawing each module as a
// pixelsPerModule-wide square. Non-positive values fall back to the default.
func NewSkipGenerator(pixelsPerModule int) *SkipGenerator {
	if pixelsPerModule <= 0 {
		pixelsPerModule = DefaultPixelsPerModule
	}
	return &SkipGenerator{pixelsPerModule: pixelsPerModule}
}

// PixelsPerModule returns the raster scale.
func (g *SkipGenerator) PixelsPerModule() int { return g.pixelsPerModule }

// Generate implements Generator. The image keeps the standard four-module quiet zone.
func (g *SkipGenerator) Generate(ctx context.Context, text string) ([]byte, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "qrcode.encode")
	defer span.End()
	span.SetAttributes(
		attribute.Int("qrcode.text_length", len(text)),
		attribute.Int("qrcode.pixels_per_module", g.pixelsPerModule),
	)

	png, err := g.encode(text)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("qrcode.png_bytes", len(png)))
	return png, nil
}

func (g *SkipGenerator) encode(text string) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyContent
	}
	q, err := skipqr.New(text, Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentTooLong, err)
	}
	q.ForegroundColor = Foreground
	q.BackgroundColor = Background

	// A negative size asks skip2 for -size pixels per module.
	png, err := q.PNG(-g.pixelsPerModule)
	if err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return png, nil
}
