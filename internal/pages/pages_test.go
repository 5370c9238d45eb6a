package pages

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vincent-petithory/dataurl"

	"pagefit/internal/processor"
	"pagefit/pkg/imgutil"
)

func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, width, height))))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func relPaths(sources []Source) []string {
	out := make([]string, 0, len(sources))
	for _, src := range sources {
		out = append(out, filepath.ToSlash(src.RelPath))
	}
	return out
}

func TestCollectNaturalOrder(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "page10.png"), 4, 4)
	writePNG(t, filepath.Join(dir, "page2.png"), 4, 4)
	writePNG(t, filepath.Join(dir, "page1.png"), 4, 4)
	writePNG(t, filepath.Join(dir, "extra", "page1.png"), 4, 4)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("chapter one notes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiny.png"), []byte{0x89}, 0o644))

	sources, err := Collect(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"extra/page1.png", "page1.png", "page2.png", "page10.png"}, relPaths(sources))
	for _, src := range sources {
		assert.Equal(t, imgutil.KindPNG, src.Kind)
	}
}

func TestCollectSkipsOutputDir(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "001.png"), 4, 4)
	writePNG(t, filepath.Join(dir, "resized", "page-0001.png"), 4, 4)

	sources, err := Collect(dir, filepath.Join(dir, "resized"))
	require.NoError(t, err)
	assert.Equal(t, []string{"001.png"}, relPaths(sources))
}

func TestCollectSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.png")
	writePNG(t, path, 3, 2)

	sources, err := Collect(path, "")
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "cover.png", sources[0].RelPath)

	txt := filepath.Join(t.TempDir(), "readme.txt")
	require.NoError(t, os.WriteFile(txt, []byte("not an image at all"), 0o644))
	_, err = Collect(txt, "")
	assert.Error(t, err)
}

func TestCollectMissing(t *testing.T) {
	_, err := Collect(filepath.Join(t.TempDir(), "nope"), "")
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	writePNG(t, path, 5, 5)

	payloads, err := Encode([]Source{{Path: path, RelPath: "a.png", Kind: imgutil.KindPNG}})
	require.NoError(t, err)
	require.Len(t, payloads, 1)

	du, err := dataurl.DecodeString(payloads[0])
	require.NoError(t, err)
	assert.Equal(t, "image/png", du.Type+"/"+du.Subtype)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, raw, du.Data)
}

func TestNaturalLess(t *testing.T) {
	assert.True(t, naturalLess("page2", "page10"))
	assert.False(t, naturalLess("page10", "page2"))
	assert.True(t, naturalLess("a", "b"))
	assert.True(t, naturalLess("vol1/p9", "vol1/p10"))
	assert.True(t, naturalLess("p1", "p1a"))
	assert.False(t, naturalLess("same", "same"))
}

func TestWriteAll(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	pages := []processor.ResizedPage{
		{Index: 0, Data: dataurl.New([]byte("first"), "image/jpeg").String()},
		{Index: 1, Data: dataurl.New([]byte("second"), "image/jpeg").String()},
	}

	paths, err := WriteAll(out, pages)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(out, "page-0001.jpg"), filepath.Join(out, "page-0002.jpg")}, paths)

	data, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	// Rewriting replaces existing files and clears pages no longer produced.
	_, err = WriteAll(out, pages[:1])
	require.NoError(t, err)
	data, err = os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
	assert.NoFileExists(t, paths[1])
}

func TestWriteAllKeepsInputNumbering(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "notes.txt"), []byte("keep"), 0o644))

	// The page at input position 1 was dropped.
	pages := []processor.ResizedPage{
		{Index: 0, Data: dataurl.New([]byte("one"), "image/jpeg").String()},
		{Index: 2, Data: dataurl.New([]byte("three"), "image/jpeg").String()},
	}

	paths, err := WriteAll(out, pages)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(out, "page-0001.jpg"), filepath.Join(out, "page-0003.jpg")}, paths)
	assert.NoFileExists(t, filepath.Join(out, "page-0002.jpg"))
	assert.FileExists(t, filepath.Join(out, "notes.txt"))

	data, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Equal(t, "three", string(data))
}

func TestWriteAllBadPayload(t *testing.T) {
	_, err := WriteAll(t.TempDir(), []processor.ResizedPage{{Data: "garbage"}})
	assert.ErrorContains(t, err, "page 1")
}
