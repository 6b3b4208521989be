package commands

import (
	"context"
	"fmt"
	"os"
	"ustcatalog/lib/configuration"
	"ustcatalog/lib/restyutil"
	"ustcatalog/lib/serviceutil"

	scraper "ustcatalog/lib/scrapers/catalog"
	service "ustcatalog/services/catalog"

	"github.com/dgraph-io/badger/v4"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "catalog-cli",
	Short: "catalog-cli scrapes the course quota website into JSON documents.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type Config struct {
	BaseUrl string `json:"base_url"`
	DataDir string `json:"data_dir"`
	// empty disables subject page caching
	CachePath   string `json:"cache_path"`
	Concurrency int    `json:"concurrency"`
	// dumps raw requests/responses under .dev/resty when set
	DebugHttp bool `json:"debug_http"`
}

// createService builds the catalog service from config.json5. The
// returned closer releases the page cache, call it before exit.
func createService() (service.Service, func()) {
	cfg, err := configuration.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}

	var cache *badger.DB
	closeCache := func() {}
	if cfg.CachePath != "" {
		cache, err = badger.Open(badger.DefaultOptions(cfg.CachePath))
		if err != nil {
			serviceutil.Fatal("failed to open page cache", err)
		}
		closeCache = func() { cache.Close() }
	}

	var instrument restyutil.InstrumentOutput
	if cfg.DebugHttp {
		instrument = restyutil.NewFilesystemOutput(".dev/resty/catalog")
	}

	client, err := scraper.NewClient(scraper.ClientOptions{
		BaseUrl:          cfg.BaseUrl,
		Cache:            cache,
		InstrumentOutput: instrument,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize catalog client", err)
	}

	store, err := service.NewStore(cfg.DataDir)
	if err != nil {
		serviceutil.Fatal("failed to initialize store", err)
	}

	return service.NewService(client, store, cfg.Concurrency), closeCache
}
