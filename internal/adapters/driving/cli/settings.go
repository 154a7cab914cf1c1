package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage reader settings",
	Long: `View and change the reader tunables stored in config.toml.

Changes are picked up by a running TUI without a restart.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting and save it to config.toml.

Keys:
  reading_line          distance below the viewport top that counts as read
  reading_tolerance     slack below the reading line for section headings
  evidence_saturation   hits per ten words that map to full evidence
  row_height            layout units per terminal row
  frame_rate            scroll recomputations per second
  toast_duration_ms     how long notifications stay visible
  search_latency_ms     simulated delay of the memory store
  store.backend         memory or sqlite
  store.corpus          YAML corpus file for the memory store`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

// settingSetters parse a value into the named field.
var settingSetters = map[string]func(s *domain.AppSettings, v string) error{
	"reading_line": func(s *domain.AppSettings, v string) error {
		return parseFloatInto(&s.Reader.ReadingLine, v)
	},
	"reading_tolerance": func(s *domain.AppSettings, v string) error {
		return parseFloatInto(&s.Reader.ReadingTolerance, v)
	},
	"evidence_saturation": func(s *domain.AppSettings, v string) error {
		return parseFloatInto(&s.Reader.EvidenceSaturation, v)
	},
	"row_height": func(s *domain.AppSettings, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		s.Reader.RowHeight = n
		return nil
	},
	"frame_rate": func(s *domain.AppSettings, v string) error {
		return parseFloatInto(&s.Reader.FrameRate, v)
	},
	"toast_duration_ms": func(s *domain.AppSettings, v string) error {
		return parseMillisInto(&s.Reader.ToastDuration, v)
	},
	"search_latency_ms": func(s *domain.AppSettings, v string) error {
		return parseMillisInto(&s.Reader.SearchLatency, v)
	},
	"store.backend": func(s *domain.AppSettings, v string) error {
		s.Store.Backend = domain.StoreBackend(v)
		return nil
	},
	"store.corpus": func(s *domain.AppSettings, v string) error {
		s.Store.Corpus = v
		return nil
	},
}

func parseFloatInto(dst *float64, v string) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	*dst = f
	return nil
}

func parseMillisInto(dst *time.Duration, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*dst = time.Duration(n) * time.Millisecond
	return nil
}

// settingKeys lists the keys accepted by settings set.
func settingKeys() []string {
	keys := make([]string, 0, len(settingSetters))
	for k := range settingSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if svc == nil || svc.Settings == nil {
		return errors.New("settings service not configured")
	}

	settings, err := svc.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	r := settings.Reader
	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Reader]")
	cmd.Printf("  Reading line: %g\n", r.ReadingLine)
	cmd.Printf("  Reading tolerance: %g\n", r.ReadingTolerance)
	cmd.Printf("  Evidence saturation: %g\n", r.EvidenceSaturation)
	cmd.Printf("  Row height: %d\n", r.RowHeight)
	cmd.Printf("  Frame rate: %g/s\n", r.FrameRate)
	cmd.Printf("  Toast duration: %s\n", r.ToastDuration)
	cmd.Printf("  Search latency: %s\n", r.SearchLatency)
	cmd.Println()

	cmd.Println("[Store]")
	cmd.Printf("  Backend: %s\n", settings.Store.Backend)
	corpus := settings.Store.Corpus
	if corpus == "" {
		corpus = "(built-in samples)"
	}
	cmd.Printf("  Corpus: %s\n", corpus)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if svc == nil || svc.Settings == nil {
		return errors.New("settings service not configured")
	}

	key := strings.TrimPrefix(args[0], "reader.")
	set, ok := settingSetters[key]
	if !ok {
		return fmt.Errorf("unknown setting %q (valid: %s)", args[0], strings.Join(settingKeys(), ", "))
	}

	settings, err := svc.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := set(settings, args[1]); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := svc.Settings.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("%s set to %s\n", key, args[1])
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if svc == nil || svc.Settings == nil {
		return errors.New("settings service not configured")
	}

	defaults := svc.Settings.GetDefaults()
	if err := svc.Settings.Save(&defaults); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Settings restored to defaults")
	return nil
}
