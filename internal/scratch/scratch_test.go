// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scratch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	base := t.TempDir()

	d, err := Acquire(base, "abc", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "pdf2image-abc"), d.Path())
	assert.DirExists(t, d.Path())

	require.NoError(t, os.WriteFile(d.Join("input.pdf"), []byte("%PDF"), 0o600))
	require.NoError(t, os.MkdirAll(d.Join("nested"), 0o755))

	d.Release()
	assert.NoDirExists(t, d.Path())

	// Releasing twice is harmless.
	d.Release()
}

func TestAcquire_Collision(t *testing.T) {
	base := t.TempDir()

	d, err := Acquire(base, "same", nil)
	require.NoError(t, err)
	defer d.Release()

	_, err = Acquire(base, "same", nil)
	require.Error(t, err)
}

func TestAcquire_GeneratedTokens(t *testing.T) {
	base := t.TempDir()

	a, err := Acquire(base, "", nil)
	require.NoError(t, err)
	defer a.Release()
	b, err := Acquire(base, "", nil)
	require.NoError(t, err)
	defer b.Release()

	assert.NotEqual(t, a.Path(), b.Path())
}

func TestAcquire_CreatesBase(t *testing.T) {
	base := filepath.Join(t.TempDir(), "missing", "parent")

	d, err := Acquire(base, "tok", nil)
	require.NoError(t, err)
	defer d.Release()
	assert.DirExists(t, d.Path())
}
