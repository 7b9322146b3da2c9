package integrations

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"
)

const maxCoverBytes = 10 << 20

// CoverSettings bounds the rendered cover in terminal cells. Each cell shows
// two vertically stacked pixels.
type CoverSettings struct {
	Width  int
	Height int
}

func DefaultCoverSettings() CoverSettings {
	return CoverSettings{Width: 24, Height: 16}
}

// CoverRenderer downloads cover art and renders it as coloured half blocks.
// Results are cached per URL for the life of the renderer.
type CoverRenderer struct {
	settings CoverSettings
	client   *http.Client
	logger   *zap.Logger

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]string
}

func NewCoverRenderer(settings CoverSettings, logger *zap.Logger) *CoverRenderer {
	if settings.Width <= 0 || settings.Height <= 0 {
		settings = DefaultCoverSettings()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CoverRenderer{
		settings: settings,
		client:   &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
		cache:    make(map[string]string),
	}
}

func (r *CoverRenderer) WithHTTPClient(client *http.Client) *CoverRenderer {
	r.client = client
	return r
}

func (r *CoverRenderer) Settings() CoverSettings {
	return r.settings
}

// Placeholder is the box shown for records without a usable image.
func (r *CoverRenderer) Placeholder() string {
	return lipgloss.NewStyle().
		Width(r.settings.Width).
		Height(r.settings.Height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(lipgloss.Color("#808080")).
		Background(lipgloss.Color("#2a2a2a")).
		Render("No Image")
}

// Cached returns a previously rendered cover without fetching.
func (r *CoverRenderer) Cached(url string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.cache[url]
	return s, ok
}

// Render returns the cover for url. Concurrent calls for the same URL share
// one download.
func (r *CoverRenderer) Render(ctx context.Context, url string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return r.Placeholder(), nil
	}
	if s, ok := r.Cached(url); ok {
		return s, nil
	}

	v, err, _ := r.group.Do(url, func() (any, error) {
		img, err := r.fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		rendered := r.renderImage(img)

		r.mu.Lock()
		r.cache[url] = rendered
		r.mu.Unlock()
		return rendered, nil
	})
	if err != nil {
		r.logger.Debug("cover unavailable", zap.String("url", url), zap.Error(err))
		return "", err
	}
	return v.(string), nil
}

// RenderOrPlaceholder never fails; broken images fall back to the placeholder.
func (r *CoverRenderer) RenderOrPlaceholder(ctx context.Context, url string) string {
	s, err := r.Render(ctx, url)
	if err != nil {
		return r.Placeholder()
	}
	return s
}

type PrefetchResult struct {
	URL string
	Err error
}

// Prefetch warms the cache for urls with at most three downloads in flight.
// The returned channel is closed once every URL has been attempted.
func (r *CoverRenderer) Prefetch(ctx context.Context, urls []string) <-chan PrefetchResult {
	results := make(chan PrefetchResult, len(urls))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 3)
	for _, url := range urls {
		if strings.TrimSpace(url) == "" {
			continue
		}
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				results <- PrefetchResult{URL: url, Err: ctx.Err()}
				return
			}
			defer func() { <-semaphore }()

			_, err := r.Render(ctx, url)
			results <- PrefetchResult{URL: url, Err: err}
		}(url)
	}

	go func() {
		wg.Wait()
		close(results)
	}()
	return results
}

func (r *CoverRenderer) fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid cover url: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download cover: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download cover: status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxCoverBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// calculateDimensions fits width x height into the pixel box while keeping
// the aspect ratio.
func (r *CoverRenderer) calculateDimensions(width, height int) (int, int) {
	maxW, maxH := r.settings.Width, r.settings.Height*2
	if width <= 0 || height <= 0 {
		return maxW, maxH
	}

	scale := min(float64(maxW)/float64(width), float64(maxH)/float64(height))
	return max(1, int(math.Round(float64(width)*scale))), max(1, int(math.Round(float64(height)*scale)))
}

func (r *CoverRenderer) resize(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

func (r *CoverRenderer) renderImage(img image.Image) string {
	bounds := img.Bounds()
	w, h := r.calculateDimensions(bounds.Dx(), bounds.Dy())
	return renderHalfBlocks(r.resize(img, w, h))
}

// renderHalfBlocks draws two pixel rows per line: the upper half block takes
// the top pixel as foreground and the bottom pixel as background.
func renderHalfBlocks(img image.Image) string {
	bounds := img.Bounds()
	lines := make([]string, 0, (bounds.Dy()+1)/2)

	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		var line strings.Builder
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(img.At(x, y)))
			if y+1 < bounds.Max.Y {
				style = style.Background(hexColor(img.At(x, y+1)))
			}
			line.WriteString(style.Render("▀"))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

func hexColor(c color.Color) lipgloss.Color {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B))
}
