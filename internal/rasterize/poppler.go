package rasterize

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nitiprint/nitiprint-api/pkg/config"
)

// Page is one rasterized document page in page order. Image is nil when the
// rendered bitmap could not be decoded; callers decide the fallback.
type Page struct {
	Number    int
	Image     image.Image
	DecodeErr error
}

// Rasterizer converts document bytes into one image per page, in page order.
type Rasterizer interface {
	Render(ctx context.Context, document []byte) ([]Page, error)
}

// PopplerRasterizer shells out to poppler's pdftoppm. Each invocation owns a
// private scratch directory that is removed before returning, success or not.
type PopplerRasterizer struct {
	binary  string
	dpi     int
	timeout time.Duration
	logger  *zap.Logger
}

// NewPopplerRasterizer constructs the rasterizer with defaults.
func NewPopplerRasterizer(cfg config.RasterizerConfig, logger *zap.Logger) *PopplerRasterizer {
	if cfg.Binary == "" {
		cfg.Binary = "pdftoppm"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 100
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PopplerRasterizer{binary: cfg.Binary, dpi: cfg.DPI, timeout: cfg.Timeout, logger: logger}
}

// Render writes the document into a scratch workspace, converts it to one
// PNG per page, and decodes the results in page order. Converter failure is
// fatal; per-page decode failure is not.
func (r *PopplerRasterizer) Render(ctx context.Context, document []byte) ([]Page, error) {
	scratch, err := os.MkdirTemp("", "pdf-analyzer-")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch) //nolint:errcheck

	input := filepath.Join(scratch, "input.pdf")
	if err := os.WriteFile(input, document, 0o600); err != nil {
		return nil, fmt.Errorf("write scratch document: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary,
		"-png",
		"-r", strconv.Itoa(r.dpi),
		input,
		filepath.Join(scratch, "page"),
	)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}

	entries, err := os.ReadDir(scratch)
	if err != nil {
		return nil, fmt.Errorf("read scratch dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".png") {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no pages")
	}
	sortPageFiles(names)

	pages := make([]Page, 0, len(names))
	for i, name := range names {
		page := Page{Number: i + 1}
		file, err := os.Open(filepath.Join(scratch, name))
		if err != nil {
			page.DecodeErr = err
			pages = append(pages, page)
			continue
		}
		img, err := png.Decode(file)
		file.Close() //nolint:errcheck
		if err != nil {
			r.logger.Warn("failed to decode rendered page", zap.Int("page", i+1), zap.Error(err))
			page.DecodeErr = err
		} else {
			page.Image = img
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// sortPageFiles orders pdftoppm output (page-1.png, page-10.png, ...) by the
// numeric page suffix rather than lexically.
func sortPageFiles(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return pageNumberOf(names[i]) < pageNumberOf(names[j])
	})
}

func pageNumberOf(name string) int {
	digits := strings.Builder{}
	for _, r := range name {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		} else if digits.Len() > 0 {
			break
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}
