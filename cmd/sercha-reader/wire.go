package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/sercha-reader/internal/adapters/driven/clipboard"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/cli"
	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-reader/internal/core/services"
	"github.com/custodia-labs/sercha-reader/internal/logger"
)

var wireLog = logger.Scope("wire")

// dataDirName holds the SQLite database below the config directory.
const dataDirName = "data"

// stores lazily opens the SQLite store shared by search and import.
type stores struct {
	dataDir string
	sqlite  *sqlite.Store
}

func (s *stores) openSQLite() (*sqlite.Store, error) {
	if s.sqlite != nil {
		return s.sqlite, nil
	}
	store, err := sqlite.NewStore(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite store: %w", err)
	}
	s.sqlite = store
	return store, nil
}

func (s *stores) close() error {
	if s.sqlite == nil {
		return nil
	}
	err := s.sqlite.Close()
	s.sqlite = nil
	return err
}

// wire builds the core services and their driven adapters from config and flags.
func wire(opts cli.Options) (*cli.Services, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config directory: %w", err)
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	backend := settings.Store.Backend
	if opts.Store != "" {
		backend = opts.Store
	}
	corpusPath := settings.Store.Corpus
	if opts.Corpus != "" {
		corpusPath = opts.Corpus
	}

	st := &stores{dataDir: filepath.Join(configDir, dataDirName)}

	var (
		backendStore  driven.SearchBackend
		categoryStore driven.CategoryStore
	)
	switch backend {
	case domain.StoreSQLite:
		store, err := st.openSQLite()
		if err != nil {
			return nil, err
		}
		backendStore, categoryStore = store, store
	case domain.StoreMemory:
		var corpus *memory.Corpus
		if corpusPath != "" {
			corpus, err = memory.LoadCorpus(corpusPath)
			if err != nil {
				return nil, err
			}
		}
		store := memory.NewDocumentStore(corpus).WithLatency(settings.Reader.SearchLatency)
		backendStore, categoryStore = store, store
	default:
		return nil, fmt.Errorf("%w: unknown store backend %q", domain.ErrInvalidInput, backend)
	}
	wireLog.Debug("store %s (corpus %q)", backend, corpusPath)

	scheduler := services.NewScheduler()

	return &cli.Services{
		Search:        services.NewSearchService(backendStore, categoryStore),
		Settings:      settingsService,
		Reader:        services.NewReader(settings.Reader, scheduler),
		Tasks:         scheduler,
		Notifications: services.NewNotifier(scheduler, settings.Reader.ToastDuration),
		Export:        services.NewCopier(clipboard.New()),
		Highlighter:   services.NewHighlighter(),
		Import: func(ctx context.Context, path string) (cli.ImportSummary, error) {
			return importCorpus(ctx, st, path)
		},
		Watch: func(ctx context.Context, onReload func(*domain.AppSettings, error)) error {
			return watchSettings(ctx, configStore, settingsService, onReload)
		},
		Close: st.close,
	}, nil
}

// importCorpus loads a YAML corpus into the SQLite store.
func importCorpus(ctx context.Context, st *stores, path string) (cli.ImportSummary, error) {
	corpus, err := memory.LoadCorpus(path)
	if err != nil {
		return cli.ImportSummary{}, err
	}
	store, err := st.openSQLite()
	if err != nil {
		return cli.ImportSummary{}, err
	}

	done := wireLog.Timed("import %s", path)
	defer done()
	sum, err := store.Import(ctx, path, corpus.Categories, corpus.Documents)
	if err != nil {
		return cli.ImportSummary{}, err
	}
	return cli.ImportSummary{Source: sum.Source, Documents: sum.Documents, Categories: sum.Categories}, nil
}

// watchSettings re-reads settings whenever config.toml changes.
func watchSettings(
	ctx context.Context,
	store *file.ConfigStore,
	settingsService *services.SettingsService,
	onReload func(*domain.AppSettings, error),
) error {
	w, err := file.NewWatcher(store, file.DefaultReloadDelay, func(loadErr error) {
		if loadErr != nil {
			onReload(nil, loadErr)
			return
		}
		onReload(settingsService.Get())
	})
	if err != nil {
		return err
	}
	err = w.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
