package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyReadingLine        = "reader.reading_line"
	keyReadingTolerance   = "reader.reading_tolerance"
	keyEvidenceSaturation = "reader.evidence_saturation"
	keyRowHeight          = "reader.row_height"
	keyFrameRate          = "reader.frame_rate"
	keyToastDurationMS    = "reader.toast_duration_ms"
	keySearchLatencyMS    = "reader.search_latency_ms"
	keyStoreBackend       = "store.backend"
	keyStoreCorpus        = "store.corpus"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, filling gaps with defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.AppSettings{
		Reader: domain.ReaderSettings{
			ReadingLine:        s.getFloat(keyReadingLine, defaults.Reader.ReadingLine),
			ReadingTolerance:   s.getFloat(keyReadingTolerance, defaults.Reader.ReadingTolerance),
			EvidenceSaturation: s.getFloat(keyEvidenceSaturation, defaults.Reader.EvidenceSaturation),
			RowHeight:          s.getInt(keyRowHeight, defaults.Reader.RowHeight),
			FrameRate:          s.getFloat(keyFrameRate, defaults.Reader.FrameRate),
			ToastDuration:      s.getMillis(keyToastDurationMS, defaults.Reader.ToastDuration),
			SearchLatency:      s.getMillis(keySearchLatencyMS, defaults.Reader.SearchLatency),
		},
		Store: domain.StoreSettings{
			Backend: s.getBackend(defaults.Store.Backend),
			Corpus:  s.configStore.GetString(keyStoreCorpus),
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if s.configStore == nil {
		return fmt.Errorf("saving settings: no config store")
	}

	values := []struct {
		key   string
		value any
	}{
		{keyReadingLine, settings.Reader.ReadingLine},
		{keyReadingTolerance, settings.Reader.ReadingTolerance},
		{keyEvidenceSaturation, settings.Reader.EvidenceSaturation},
		{keyRowHeight, settings.Reader.RowHeight},
		{keyFrameRate, settings.Reader.FrameRate},
		{keyToastDurationMS, settings.Reader.ToastDuration.Milliseconds()},
		{keySearchLatencyMS, settings.Reader.SearchLatency.Milliseconds()},
		{keyStoreBackend, settings.Store.Backend.String()},
		{keyStoreCorpus, settings.Store.Corpus},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("saving %s: %w", v.key, err)
		}
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getFloat(key string, def float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getInt(key string, def int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getMillis(key string, def time.Duration) time.Duration {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Millisecond
}

func (s *SettingsService) getBackend(def domain.StoreBackend) domain.StoreBackend {
	v := s.configStore.GetString(keyStoreBackend)
	if v == "" {
		return def
	}
	return domain.StoreBackend(v)
}
