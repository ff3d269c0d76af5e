package cmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	"github.com/samuelcardenasg23/book-play/internal/config"
	bperrors "github.com/samuelcardenasg23/book-play/internal/errors"
	"github.com/samuelcardenasg23/book-play/internal/googlebooks"
	"github.com/samuelcardenasg23/book-play/internal/testutil"
)

var fixedNow = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

type fakeMetadataClient struct {
	order     []string
	volumes   map[string]*googlebooks.Volume
	searchErr error
	queries   []string
}

func newFakeMetadataClient(volumes ...*googlebooks.Volume) *fakeMetadataClient {
	f := &fakeMetadataClient{volumes: map[string]*googlebooks.Volume{}}
	for _, v := range volumes {
		f.order = append(f.order, v.ID)
		f.volumes[v.ID] = v
	}
	return f
}

func (f *fakeMetadataClient) Search(_ context.Context, query string) (*googlebooks.SearchResponse, error) {
	f.queries = append(f.queries, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	resp := &googlebooks.SearchResponse{Kind: "books#volumes", TotalItems: len(f.order)}
	for _, id := range f.order {
		resp.Items = append(resp.Items, *f.volumes[id])
	}
	return resp, nil
}

func (f *fakeMetadataClient) FetchByID(_ context.Context, id string) (*googlebooks.Volume, error) {
	v, ok := f.volumes[id]
	if !ok {
		return nil, bperrors.NewHTTPStatusError("fetch", 404)
	}
	return v, nil
}

func duneVolume() *googlebooks.Volume {
	rating := 4.5
	return &googlebooks.Volume{
		ID: "vol-1",
		VolumeInfo: &googlebooks.VolumeInfo{
			Title:         "Dune",
			Authors:       []string{"Frank Herbert"},
			Publisher:     "Chilton Books",
			PublishedDate: "1965-08-01",
			Description:   "A desert planet.",
			PageCount:     412,
			Categories:    []string{"Fiction"},
			AverageRating: &rating,
			ImageLinks:    &googlebooks.ImageLinks{Thumbnail: "https://books.example/dune.jpg"},
		},
	}
}

func messiahVolume() *googlebooks.Volume {
	return &googlebooks.Volume{
		ID: "vol-2",
		VolumeInfo: &googlebooks.VolumeInfo{
			Title:   "Dune Messiah",
			Authors: []string{"Frank Herbert"},
		},
	}
}

// setupApp installs test config, stubs the metadata client and clock, and
// returns an App writing into the returned buffer.
func setupApp(t *testing.T, client *fakeMetadataClient, opts ...testutil.SetTestConfigOption) (*App, *bytes.Buffer) {
	t.Helper()

	env := testutil.NewTestEnv(t)
	opts = append([]testutil.SetTestConfigOption{testutil.WithDBFile(env.DBPath())}, opts...)
	testutil.SetTestConfig(t, opts...)

	origClient, origNow := newMetadataClient, now
	t.Cleanup(func() {
		newMetadataClient, now = origClient, origNow
	})
	newMetadataClient = func(config.Provider) (metadataClient, error) {
		return client, nil
	}
	now = func() time.Time { return fixedNow }

	var out bytes.Buffer
	app, err := newApp(context.Background(), &CLI{}, &out)
	require.NoError(t, err)
	t.Cleanup(app.Close)

	return app, &out
}

// runCommand parses args with the real CLI grammar and runs the selected
// command against app.
func runCommand(t *testing.T, app *App, args ...string) error {
	t.Helper()

	parser, err := kong.New(&CLI{},
		kong.Name("bookplay"),
		kong.Exit(func(code int) {
			t.Fatalf("unexpected Kong exit %d", code)
		}),
	)
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	require.NoError(t, err)

	return kctx.Run(app)
}
