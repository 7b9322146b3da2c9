package integrations

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func coverServer(t *testing.T, body []byte, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/cover.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write(body)
		case "/text":
			w.Write([]byte("not an image"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCoverRenderer_CalculateDimensions(t *testing.T) {
	r := NewCoverRenderer(CoverSettings{Width: 24, Height: 16}, nil)

	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"portrait", 100, 200, 16, 32},
		{"landscape", 200, 100, 24, 12},
		{"exact fit", 24, 32, 24, 32},
		{"upscale small", 12, 16, 24, 32},
		{"degenerate", 0, 0, 24, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := r.calculateDimensions(tt.width, tt.height)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("calculateDimensions(%d, %d) = %dx%d, want %dx%d", tt.width, tt.height, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestNewCoverRenderer_DefaultsInvalidSettings(t *testing.T) {
	r := NewCoverRenderer(CoverSettings{}, nil)
	if r.Settings() != DefaultCoverSettings() {
		t.Errorf("Settings() = %+v, want defaults", r.Settings())
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 5))
	out := renderHalfBlocks(img)

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for i, line := range lines {
		if n := strings.Count(line, "▀"); n != 3 {
			t.Errorf("line %d has %d blocks, want 3", i, n)
		}
	}
}

func TestCoverRenderer_RenderCaches(t *testing.T) {
	var hits atomic.Int32
	srv := coverServer(t, pngBytes(t, 4, 4, color.RGBA{R: 255, A: 255}), &hits)
	r := NewCoverRenderer(CoverSettings{Width: 4, Height: 2}, nil).WithHTTPClient(srv.Client())

	out, err := r.Render(context.Background(), srv.URL+"/cover.png")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if n := strings.Count(lines[0], "▀"); n != 4 {
		t.Errorf("first line has %d blocks, want 4", n)
	}

	again, err := r.Render(context.Background(), srv.URL+"/cover.png")
	if err != nil {
		t.Fatalf("second Render() error = %v", err)
	}
	if again != out {
		t.Error("cached render differs from first render")
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}
	if _, ok := r.Cached(srv.URL + "/cover.png"); !ok {
		t.Error("cover should be cached")
	}
}

func TestCoverRenderer_Errors(t *testing.T) {
	var hits atomic.Int32
	srv := coverServer(t, nil, &hits)
	r := NewCoverRenderer(CoverSettings{Width: 4, Height: 2}, nil).WithHTTPClient(srv.Client())

	for _, path := range []string{"/missing.png", "/text"} {
		if _, err := r.Render(context.Background(), srv.URL+path); err == nil {
			t.Errorf("Render(%s) expected error", path)
		}
		if got := r.RenderOrPlaceholder(context.Background(), srv.URL+path); got != r.Placeholder() {
			t.Errorf("RenderOrPlaceholder(%s) should fall back to the placeholder", path)
		}
	}
}

func TestCoverRenderer_EmptyURL(t *testing.T) {
	r := NewCoverRenderer(DefaultCoverSettings(), nil)

	out, err := r.Render(context.Background(), "  ")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "No Image") {
		t.Error("empty url should render the placeholder")
	}
}

func TestCoverRenderer_Prefetch(t *testing.T) {
	var hits atomic.Int32
	srv := coverServer(t, pngBytes(t, 2, 2, color.White), &hits)
	r := NewCoverRenderer(CoverSettings{Width: 2, Height: 1}, nil).WithHTTPClient(srv.Client())

	urls := []string{srv.URL + "/cover.png", "", srv.URL + "/missing.png"}
	var ok, failed int
	for res := range r.Prefetch(context.Background(), urls) {
		if res.Err != nil {
			failed++
		} else {
			ok++
		}
	}
	if ok != 1 || failed != 1 {
		t.Errorf("Prefetch ok=%d failed=%d, want 1 and 1", ok, failed)
	}
	if _, cached := r.Cached(srv.URL + "/cover.png"); !cached {
		t.Error("prefetched cover should be cached")
	}
}
