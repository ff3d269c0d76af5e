package cmd

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/samuelcardenasg23/book-play/internal/fileutil"
	"github.com/samuelcardenasg23/book-play/internal/testutil"
)

func stubDownloadCover(t *testing.T, err error) *[]fileutil.CoverDownloadOptions {
	t.Helper()

	var calls []fileutil.CoverDownloadOptions
	orig := downloadCover
	t.Cleanup(func() { downloadCover = orig })
	downloadCover = func(_ context.Context, opts fileutil.CoverDownloadOptions) (*fileutil.CoverDownloadResult, error) {
		calls = append(calls, opts)
		if err != nil {
			return nil, err
		}
		return &fileutil.CoverDownloadResult{Downloaded: true, Path: opts.Path}, nil
	}
	return &calls
}

func TestLookupCmdJSON(t *testing.T) {
	app, out := setupApp(t, newFakeMetadataClient(duneVolume()))

	require.NoError(t, runCommand(t, app, "lookup", "vol-1", "--format", "json"))

	golden := testutil.NewGoldenHelper(t, "testdata")
	golden.AssertGoldenJSON("lookup_dune.json", out.Bytes())
}

func TestLookupCmdUnknownVolumeClearsFields(t *testing.T) {
	app, out := setupApp(t, newFakeMetadataClient(duneVolume()))

	require.NoError(t, runCommand(t, app, "lookup", "nope", "--format", "json"))

	golden := testutil.NewGoldenHelper(t, "testdata")
	golden.AssertGoldenJSON("lookup_missing.json", out.Bytes())
}

func TestLookupCmdYAMLDefault(t *testing.T) {
	app, out := setupApp(t, newFakeMetadataClient(duneVolume()))

	require.NoError(t, runCommand(t, app, "lookup", "vol-1"))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "Dune", got["title"])
	assert.Equal(t, 412, got["page_count"])
	assert.Equal(t, []any{"Frank Herbert"}, got["authors"])
}

func TestLookupCmdCoverIntoDirectory(t *testing.T) {
	app, _ := setupApp(t, newFakeMetadataClient(duneVolume()))
	calls := stubDownloadCover(t, nil)
	env := testutil.NewTestEnv(t)
	env.MkdirAll("covers")

	require.NoError(t, runCommand(t, app, "lookup", "vol-1", "--cover", env.Path("covers"), "--cover-size", "300"))

	require.Len(t, *calls, 1)
	got := (*calls)[0]
	assert.Equal(t, "https://books.example/dune.jpg", got.URL)
	assert.Equal(t, filepath.Join(env.Path("covers"), fileutil.BuildCoverFilename("Dune")), got.Path)
	assert.Equal(t, 300, got.MaxWidth)
	assert.False(t, got.Overwrite)
}

func TestLookupCmdCoverToFile(t *testing.T) {
	app, _ := setupApp(t, newFakeMetadataClient(duneVolume()))
	calls := stubDownloadCover(t, nil)
	env := testutil.NewTestEnv(t)

	require.NoError(t, runCommand(t, app, "lookup", "vol-1", "--cover", env.Path("dune.jpg"), "--overwrite"))

	require.Len(t, *calls, 1)
	assert.Equal(t, env.Path("dune.jpg"), (*calls)[0].Path)
	assert.Equal(t, fileutil.DefaultCoverWidth, (*calls)[0].MaxWidth)
	assert.True(t, (*calls)[0].Overwrite)
}

func TestLookupCmdCoverSkippedWithoutImage(t *testing.T) {
	app, _ := setupApp(t, newFakeMetadataClient(messiahVolume()))
	calls := stubDownloadCover(t, nil)

	require.NoError(t, runCommand(t, app, "lookup", "vol-2", "--cover", t.TempDir()))
	assert.Empty(t, *calls)
}

func TestLookupCmdCoverError(t *testing.T) {
	app, _ := setupApp(t, newFakeMetadataClient(duneVolume()))
	stubDownloadCover(t, errors.New("boom"))

	err := runCommand(t, app, "lookup", "vol-1", "--cover", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving cover")
}
