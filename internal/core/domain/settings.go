package domain

import (
	"fmt"
	"time"
)

// StoreBackend identifies where documents are read from.
type StoreBackend string

// Available store backends.
const (
	// StoreMemory serves documents from a YAML corpus or the built-in samples.
	StoreMemory StoreBackend = "memory"

	// StoreSQLite serves documents from the local SQLite database.
	StoreSQLite StoreBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	return b == StoreMemory || b == StoreSQLite
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// ReaderSettings holds the reader tuning constants.
type ReaderSettings struct {
	// ReadingLine is the distance below the viewport top that counts as "being read".
	ReadingLine float64

	// ReadingTolerance lets anchors slightly below the reading line still qualify.
	ReadingTolerance float64

	// EvidenceSaturation is the hit density (per ten words) mapped to full strength.
	EvidenceSaturation float64

	// RowHeight converts terminal rows into layout units.
	RowHeight int

	// FrameRate caps scroll recomputation per second.
	FrameRate float64

	// ToastDuration is how long a notification stays visible.
	ToastDuration time.Duration

	// SearchLatency is the simulated backend delay of the in-memory store.
	SearchLatency time.Duration
}

// StoreSettings selects the document store.
type StoreSettings struct {
	Backend StoreBackend

	// Corpus is an optional YAML corpus file for the memory backend.
	Corpus string
}

// AppSettings is the full application configuration.
type AppSettings struct {
	Reader ReaderSettings
	Store  StoreSettings
}

// DefaultReaderSettings returns the reader defaults.
func DefaultReaderSettings() ReaderSettings {
	return ReaderSettings{
		ReadingLine:        120,
		ReadingTolerance:   40,
		EvidenceSaturation: 1.8,
		RowHeight:          20,
		FrameRate:          60,
		ToastDuration:      1400 * time.Millisecond,
		SearchLatency:      650 * time.Millisecond,
	}
}

// DefaultAppSettings returns application defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Reader: DefaultReaderSettings(),
		Store: StoreSettings{
			Backend: StoreMemory,
		},
	}
}

// Validate checks the reader settings for usable values.
func (s ReaderSettings) Validate() error {
	switch {
	case s.ReadingLine < 0:
		return fmt.Errorf("%w: reading line must not be negative", ErrInvalidInput)
	case s.ReadingTolerance < 0:
		return fmt.Errorf("%w: reading tolerance must not be negative", ErrInvalidInput)
	case s.EvidenceSaturation <= 0:
		return fmt.Errorf("%w: evidence saturation must be positive", ErrInvalidInput)
	case s.RowHeight <= 0:
		return fmt.Errorf("%w: row height must be positive", ErrInvalidInput)
	case s.FrameRate <= 0:
		return fmt.Errorf("%w: frame rate must be positive", ErrInvalidInput)
	case s.ToastDuration <= 0:
		return fmt.Errorf("%w: toast duration must be positive", ErrInvalidInput)
	case s.SearchLatency < 0:
		return fmt.Errorf("%w: search latency must not be negative", ErrInvalidInput)
	}
	return nil
}

// Validate checks the application settings.
func (s AppSettings) Validate() error {
	if err := s.Reader.Validate(); err != nil {
		return err
	}
	if !s.Store.Backend.IsValid() {
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalidInput, s.Store.Backend)
	}
	return nil
}
