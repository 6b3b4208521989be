package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"ustcatalog/lib/telemetry"

	scraper "ustcatalog/lib/scrapers/catalog"

	"github.com/stretchr/testify/require"

	_ "embed"
)

//go:embed testdata/comp.html
var compPage string

func TestStore(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	subjects, err := store.Subjects("2330")
	require.NoError(t, err)
	require.Empty(t, subjects)

	require.NoError(t, store.WritePage("2330", "COMP", compPage))
	require.NoError(t, store.WritePage("2330", "ACCT", "<html></html>"))

	subjects, err = store.Subjects("2330")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"COMP", "ACCT"}, subjects)

	page, err := store.ReadPage("2330", "COMP")
	require.NoError(t, err)
	require.Equal(t, compPage, page)
}

func TestUpdate(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:services.catalog")
	defer cleanup()

	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.WritePage("2330", "COMP", compPage))

	service := NewService(scraper.Client{}, store, 0)
	require.NoError(t, service.Update(context.Background(), "2330"))

	fullData, err := os.ReadFile(filepath.Join(dir, "2330.json"))
	require.NoError(t, err)
	var full map[string][]scraper.Course
	require.NoError(t, json.Unmarshal(fullData, &full))
	require.Len(t, full["COMP"], 1)
	require.Equal(t, "1021", full["COMP"][0].Course)
	require.Equal(t, "Introduction to Computer Science", full["COMP"][0].Name)
	require.Len(t, full["COMP"][0].Sections, 1)

	slimData, err := os.ReadFile(filepath.Join(dir, "2330-slim.json"))
	require.NoError(t, err)
	var slim map[string][]scraper.SlimCourse
	require.NoError(t, json.Unmarshal(slimData, &slim))
	require.Len(t, slim["COMP"], 1)
	require.Equal(t, [4]int{120, 118, 2, 15}, slim["COMP"][0].Sections[0].Quota)
}

func TestUpdateWithoutSnapshots(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:services.catalog")
	defer cleanup()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	service := NewService(scraper.Client{}, store, 0)
	require.Error(t, service.Update(context.Background(), "2330"))
}

func TestRun(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:services.catalog")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wcq/cgi-bin/":
			w.Header().Set("Location", "/wcq/cgi-bin/2330/")
			w.WriteHeader(http.StatusFound)
		case "/wcq/cgi-bin/2330/":
			w.Write([]byte(`<html><body>
				<div class="depts">
				<a href="/wcq/cgi-bin/2330/subject/COMP">COMP</a>
				</div>
				</body></html>`))
		case "/wcq/cgi-bin/2330/subject/COMP":
			w.Write([]byte(compPage))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client, err := scraper.NewClient(scraper.ClientOptions{
		BaseUrl: server.URL + "/wcq/cgi-bin",
	})
	require.NoError(t, err)

	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	service := NewService(client, store, 2)
	require.NoError(t, service.Run(context.Background()))

	page, err := store.ReadPage("2330", "COMP")
	require.NoError(t, err)
	require.Equal(t, compPage, page)

	_, err = os.Stat(filepath.Join(dir, "2330.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "2330-slim.json"))
	require.NoError(t, err)
}
