package asset_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/kelly-lin/bevyml/asset"
	"github.com/kelly-lin/bevyml/itree"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestLoaderSupports(t *testing.T) {
	loader := asset.NewLoader(nil)
	assert.Equal(t, []string{"bevyml", "html"}, loader.Extensions())

	type TestCase struct {
		Desc string
		Path string
		Want bool
	}
	testCases := []TestCase{
		{Desc: "bevyml", Path: "ui/menu.bevyml", Want: true},
		{Desc: "html upper case", Path: "INDEX.HTML", Want: true},
		{Desc: "css", Path: "style.css", Want: false},
		{Desc: "no extension", Path: "bevyml", Want: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.Desc, func(t *testing.T) {
			assert.Equal(t, testCase.Want, loader.Supports(testCase.Path))
		})
	}
}

func TestLoaderLoad(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()
	loader := asset.NewLoader(nil)

	t.Run("ok", func(t *testing.T) {
		assert := assert.New(t)
		got, err := loader.Load(ctx, strings.NewReader(`<div><button style="width: 10px"></button></div>`))
		require.NoError(t, err)
		require.Len(t, got.Roots, 1)
		assert.Equal("div", got.Roots[0].Bundle.Name)
		require.Len(t, got.Roots[0].Children, 1)
		assert.Equal(itree.NodeType{Kind: itree.Button}, got.Roots[0].Children[0].Bundle.Type)
		assert.Equal(float32(10), got.Roots[0].Children[0].Bundle.Layout.Width.Value)
	})

	t.Run("errors", func(t *testing.T) {
		assert := assert.New(t)
		_, err := loader.Load(ctx, failingReader{})
		assert.ErrorIs(err, asset.ErrIO)
		assert.EqualError(err, "could not load asset: disk on fire")

		_, err = loader.Load(ctx, strings.NewReader("<div>\xff</div>"))
		assert.ErrorIs(err, asset.ErrUTF8)
		assert.EqualError(err, "invalid utf-8 in asset: at byte 5")

		_, err = loader.Load(ctx, strings.NewReader("plain text"))
		assert.ErrorIs(err, asset.ErrParse)
		assert.ErrorIs(err, itree.ErrMissingRootElement)
	})

	t.Run("file", func(t *testing.T) {
		assert := assert.New(t)
		path := filepath.Join(t.TempDir(), "menu.bevyml")
		require.NoError(t, os.WriteFile(path, []byte("<nav></nav>"), 0644))

		got, err := loader.LoadFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(path, got.Path)
		assert.Equal("nav", got.Roots[0].Bundle.Name)

		_, err = loader.LoadFile(ctx, filepath.Join(t.TempDir(), "missing.bevyml"))
		assert.ErrorIs(err, asset.ErrIO)
		assert.ErrorIs(err, os.ErrNotExist)
	})
}

func TestStore(t *testing.T) {
	defer goleak.VerifyNone(t)
	assert := assert.New(t)
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "panel.html")
	require.NoError(t, os.WriteFile(path, []byte("<section></section>"), 0644))

	store := asset.NewStore(nil)
	first, err := store.Get(ctx, path)
	require.NoError(t, err)
	second, err := store.Get(ctx, filepath.Join(dir, ".", "panel.html"))
	require.NoError(t, err)
	assert.Same(first, second)
	assert.Equal(asset.Stats{Hits: 1, Misses: 1, Items: 1}, store.Stats())

	require.NoError(t, os.WriteFile(path, []byte("<aside></aside>"), 0644))
	reloaded, err := store.Reload(ctx, path)
	require.NoError(t, err)
	assert.NotSame(first, reloaded)
	assert.Equal("aside", reloaded.Roots[0].Bundle.Name)

	store.Remove(path)
	assert.Equal(0, store.Stats().Items)

	_, err = store.Get(ctx, filepath.Join(dir, "panel.css"))
	assert.ErrorIs(err, asset.ErrUnsupportedExtension)

	_, err = store.Get(ctx, filepath.Join(dir, "missing.bevyml"))
	assert.ErrorIs(err, asset.ErrIO)
	assert.Equal(0, store.Stats().Items)
}
