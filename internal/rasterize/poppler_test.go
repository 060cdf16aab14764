package rasterize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nitiprint/nitiprint-api/pkg/config"
)

func TestSortPageFilesNumeric(t *testing.T) {
	names := []string{
		"page-10.png", "page-2.png", "page-1.png", "page-21.png", "page-3.png",
	}
	sortPageFiles(names)
	require.Equal(t, []string{
		"page-1.png", "page-2.png", "page-3.png", "page-10.png", "page-21.png",
	}, names)
}

func TestPageNumberOf(t *testing.T) {
	require.Equal(t, 7, pageNumberOf("page-7.png"))
	require.Equal(t, 12, pageNumberOf("page-12.png"))
	require.Equal(t, 0, pageNumberOf("page.png"))
}

func TestNewPopplerRasterizerDefaults(t *testing.T) {
	r := NewPopplerRasterizer(config.RasterizerConfig{}, nil)
	require.Equal(t, "pdftoppm", r.binary)
	require.Equal(t, 100, r.dpi)
	require.NotZero(t, r.timeout)
}
