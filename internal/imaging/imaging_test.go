package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func createTestJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{120, 30, 50, 255})
		}
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{240, 230, 200, 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func TestProcessLabelJPEG(t *testing.T) {
	data := createTestJPEG(100, 100)
	result, err := ProcessLabel(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProcessLabel JPEG: %v", err)
	}
	if result.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", result.MIME)
	}
	if len(result.Data) == 0 {
		t.Error("expected non-empty data")
	}
}

func TestProcessLabelPNG(t *testing.T) {
	data := createTestPNG(100, 100)
	result, err := ProcessLabel(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProcessLabel PNG: %v", err)
	}
	if result.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg (always outputs JPEG), got %s", result.MIME)
	}
}

func TestProcessLabelDownscale(t *testing.T) {
	// Phone camera sized input.
	data := createTestJPEG(2048, 1536)
	result, err := ProcessLabel(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProcessLabel large image: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		t.Errorf("expected max %dx%d, got %dx%d", MaxDimension, MaxDimension, bounds.Dx(), bounds.Dy())
	}
	// Aspect ratio preserved.
	if bounds.Dx() != MaxDimension {
		t.Errorf("expected width %d for landscape input, got %d", MaxDimension, bounds.Dx())
	}
}

func TestProcessLabelSmallImageNotUpscaled(t *testing.T) {
	data := createTestJPEG(50, 50)
	result, err := ProcessLabel(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProcessLabel small image: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 50 {
		t.Errorf("small image should not be resized: got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessLabelInvalidFormat(t *testing.T) {
	_, err := ProcessLabel(bytes.NewReader([]byte("not an image")))
	if err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestProcessLabelGIFRejected(t *testing.T) {
	// GIF magic bytes.
	_, err := ProcessLabel(bytes.NewReader([]byte("GIF89a...")))
	if err == nil {
		t.Error("expected error for GIF")
	}
}
