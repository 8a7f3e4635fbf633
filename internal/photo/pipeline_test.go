package photo

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func pngOf(t *testing.T, w, h int, c color.Color) *bytes.Reader {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func decodeResult(t *testing.T, res Result) image.Image {
	t.Helper()
	if !strings.HasPrefix(res.DataURI, "data:image/jpeg;base64,") {
		t.Fatalf("unexpected data uri prefix %q", res.DataURI[:min(len(res.DataURI), 32)])
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(res.DataURI, "data:image/jpeg;base64,"))
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}
	return img
}

func TestCompressScalesWideImagesToMaxWidth(t *testing.T) {
	res, err := Pipeline{}.Compress(context.Background(), pngOf(t, 1200, 800, color.RGBA{R: 200, A: 255}))
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if res.Width != 600 || res.Height != 400 {
		t.Fatalf("expected 600x400 got %dx%d", res.Width, res.Height)
	}
	if res.SourceWidth != 1200 || res.SourceHeight != 800 {
		t.Fatalf("unexpected source size %dx%d", res.SourceWidth, res.SourceHeight)
	}
	if res.SourceType != "image/png" {
		t.Fatalf("unexpected source type %s", res.SourceType)
	}
	img := decodeResult(t, res)
	if b := img.Bounds(); b.Dx() != 600 || b.Dy() != 400 {
		t.Fatalf("encoded jpeg is %dx%d", b.Dx(), b.Dy())
	}
}

func TestCompressKeepsNarrowImages(t *testing.T) {
	res, err := Pipeline{MaxWidth: 600}.Compress(context.Background(), pngOf(t, 300, 200, color.Black))
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if res.Width != 300 || res.Height != 200 {
		t.Fatalf("expected 300x200 got %dx%d", res.Width, res.Height)
	}
}

func TestCompressFlattensTransparencyOntoWhite(t *testing.T) {
	res, err := Pipeline{}.Compress(context.Background(), pngOf(t, 20, 20, color.NRGBA{}))
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	r, g, b, _ := decodeResult(t, res).At(10, 10).RGBA()
	if r>>8 < 240 || g>>8 < 240 || b>>8 < 240 {
		t.Fatalf("expected near-white pixel, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestCompressRejectsNonImages(t *testing.T) {
	_, err := Pipeline{}.Compress(context.Background(), strings.NewReader("definitely not a photo"))
	if !errors.Is(err, ErrImageDecode) {
		t.Fatalf("expected ErrImageDecode, got %v", err)
	}
}

func TestCompressRejectsTruncatedImage(t *testing.T) {
	full := pngOf(t, 50, 50, color.White)
	raw := make([]byte, full.Len())
	_, _ = full.Read(raw)
	_, err := Pipeline{}.Compress(context.Background(), bytes.NewReader(raw[:len(raw)/2]))
	if !errors.Is(err, ErrImageDecode) {
		t.Fatalf("expected ErrImageDecode, got %v", err)
	}
}

func TestCompressRejectsOversizeInput(t *testing.T) {
	_, err := Pipeline{MaxInputBytes: 16}.Compress(context.Background(), pngOf(t, 50, 50, color.White))
	if !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("expected ErrInputTooLarge, got %v", err)
	}
}

func TestCompressHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Pipeline{}.Compress(ctx, pngOf(t, 10, 10, color.White))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTargetSize(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{1200, 800, 600, 600, 400},
		{600, 900, 600, 600, 900},
		{601, 301, 600, 600, 300},
		{4000, 3, 600, 600, 1},
		{1000, 333, 600, 600, 200},
		{10, 10, 600, 10, 10},
	}
	for _, tt := range tests {
		w, h := TargetSize(tt.w, tt.h, tt.max)
		if w != tt.wantW || h != tt.wantH {
			t.Fatalf("TargetSize(%d,%d,%d) = %dx%d, want %dx%d", tt.w, tt.h, tt.max, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestCompressAsync(t *testing.T) {
	task := Pipeline{MaxWidth: 100}.CompressAsync(context.Background(), pngOf(t, 400, 200, color.White))
	<-task.Done()
	res, err := task.Wait()
	if err != nil {
		t.Fatalf("compress async: %v", err)
	}
	if res.Width != 100 || res.Height != 50 {
		t.Fatalf("expected 100x50 got %dx%d", res.Width, res.Height)
	}
	if res.Len() == 0 || res.Bytes == 0 {
		t.Fatalf("expected data")
	}
}
