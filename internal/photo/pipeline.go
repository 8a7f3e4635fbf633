// Package photo turns an arbitrary user photo into a bounded JPEG data URI.
package photo

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"math"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"

	// decoders beyond the standard library's
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxWidth      = 600
	DefaultQuality       = 50
	DefaultMaxInputBytes = 20 << 20

	dataURIPrefix = "data:image/jpeg;base64,"
)

var (
	// ErrImageDecode marks input that could not be read as an image.
	ErrImageDecode = errors.New("photo: image could not be decoded")
	// ErrInputTooLarge is returned when the raw input exceeds MaxInputBytes.
	ErrInputTooLarge = errors.New("photo: input too large")
)

// Pipeline resizes and re-encodes photos. The zero value uses the defaults.
type Pipeline struct {
	MaxWidth      int
	Quality       int
	MaxInputBytes int64
}

// Result is a compressed photo.
type Result struct {
	DataURI      string
	Width        int
	Height       int
	SourceWidth  int
	SourceHeight int
	SourceType   string
	// Bytes is the encoded JPEG size before base64.
	Bytes int
}

// Len is the length of the data URI in characters.
func (r Result) Len() int { return len(r.DataURI) }

func (p Pipeline) maxWidth() int {
	if p.MaxWidth > 0 {
		return p.MaxWidth
	}
	return DefaultMaxWidth
}

func (p Pipeline) quality() int {
	if p.Quality >= 1 && p.Quality <= 100 {
		return p.Quality
	}
	return DefaultQuality
}

func (p Pipeline) maxInput() int64 {
	if p.MaxInputBytes > 0 {
		return p.MaxInputBytes
	}
	return DefaultMaxInputBytes
}

// Compress decodes r, scales it down to MaxWidth keeping the aspect ratio,
// flattens transparency onto white and encodes a JPEG data URI. Images
// narrower than MaxWidth keep their size.
func (p Pipeline) Compress(ctx context.Context, r io.Reader) (Result, error) {
	raw, err := io.ReadAll(io.LimitReader(r, p.maxInput()+1))
	if err != nil {
		return Result{}, fmt.Errorf("read photo: %w", err)
	}
	if int64(len(raw)) > p.maxInput() {
		return Result{}, fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, p.maxInput())
	}

	mtype := mimetype.Detect(raw)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return Result{}, fmt.Errorf("%w: content type %s", ErrImageDecode, mtype.String())
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	bounds := src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW <= 0 || srcH <= 0 {
		return Result{}, fmt.Errorf("%w: empty image", ErrImageDecode)
	}
	dstW, dstH := TargetSize(srcW, srcH, p.maxWidth())

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if dstW == srcW && dstH == srcH {
		draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: p.quality()}); err != nil {
		return Result{}, fmt.Errorf("encode jpeg: %w", err)
	}

	return Result{
		DataURI:      dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Width:        dstW,
		Height:       dstH,
		SourceWidth:  srcW,
		SourceHeight: srcH,
		SourceType:   mtype.String(),
		Bytes:        buf.Len(),
	}, nil
}

// TargetSize returns the output dimensions for a w×h source: unchanged when
// w <= maxWidth, otherwise maxWidth wide with the height scaled and rounded
// (never below 1).
func TargetSize(w, h, maxWidth int) (int, int) {
	if w <= maxWidth {
		return w, h
	}
	scaled := int(math.Round(float64(h) * float64(maxWidth) / float64(w)))
	if scaled < 1 {
		scaled = 1
	}
	return maxWidth, scaled
}
