package doc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cicd-ai-toolkit/readme-llm/pkg/errors"
)

func TestWriterReplacesDocument(t *testing.T) {
	root := t.TempDir()
	w := NewWriter("")

	p, err := w.Write(context.Background(), root, "first")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "README.llm"), p)

	_, err = w.Write(context.Background(), root, "second")
	require.NoError(t, err)
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriterCancelled(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewWriter("out.md").Write(ctx, root, "content")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrIO))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDisplayPath(t *testing.T) {
	tests := []struct {
		name, path, root, host, want string
	}{
		{"no host root", "/app/README.llm", "/app", "", "/app/README.llm"},
		{"mapped", "/app/README.llm", "/app", "/home/me/repo", "/home/me/repo/README.llm"},
		{"root itself", "/app", "/app", "/home/me/repo", "/home/me/repo"},
		{"outside root", "/elsewhere/x", "/app", "/home/me/repo", "/elsewhere/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayPath(tt.path, tt.root, tt.host))
		})
	}
}

func TestPartials(t *testing.T) {
	root := t.TempDir()
	stale := filepath.Join(root, DefaultPartialsDir, "chunk_9.tmp")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	p, err := NewPartials(root, "")
	require.NoError(t, err)
	assert.NoFileExists(t, stale)

	first, err := p.Save("one")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, DefaultPartialsDir, "chunk_0.tmp"), first)
	_, err = p.Save("two")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())

	got, err := p.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, got)

	require.NoError(t, p.Remove())
	assert.NoDirExists(t, p.Dir())
}
