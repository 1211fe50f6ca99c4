package ebook

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	g := NewNewsletterGenerator()
	outputDir := t.TempDir()

	path, size, err := g.Generate(context.Background(),
		"August Update",
		"<h1>August Update</h1><p>The quarter in review.</p>",
		outputDir,
		"draft-123")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outputDir, "draft-123.epub"), path)
	assert.Greater(t, size, int64(0))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, size, info.Size())
}

func TestGenerateRequiresIdentity(t *testing.T) {
	g := NewNewsletterGenerator()

	_, _, err := g.Generate(context.Background(), "t", "<p>x</p>", "", "draft-123")
	assert.Error(t, err)

	_, _, err = g.Generate(context.Background(), "t", "<p>x</p>", t.TempDir(), "")
	assert.Error(t, err)
}

func TestGenerateDefaultsEmptyTitle(t *testing.T) {
	g := NewNewsletterGenerator()

	path, _, err := g.Generate(context.Background(), "", "<p>body</p>", t.TempDir(), "draft-untitled")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestEmbedImagesLeavesDataURIsAlone(t *testing.T) {
	// No epub needed: data URIs and relative paths never hit AddImage.
	html := `<p><img alt="chart" src="data:image/png;base64,AAAA"></p><img src="relative/path.png">`

	result := embedImages(nil, html)
	assert.Equal(t, html, result)
}
