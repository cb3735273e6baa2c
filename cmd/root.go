package cmd

import (
	"context"
	"os"
	"time"

	"github.com/theirongolddev/billtracker/internal/config"
	"github.com/theirongolddev/billtracker/internal/logging"
	"github.com/theirongolddev/billtracker/internal/rates"
	"github.com/theirongolddev/billtracker/internal/store"
	"github.com/theirongolddev/billtracker/internal/tracker"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagDataFile string
	flagLogFile  string
	flagVerbose  bool
	flagRefresh  bool
)

var rootCmd = &cobra.Command{
	Use:          "billtracker",
	Short:        "Track bills in any currency against one budget",
	Long:         "Record bills in their own currency, keep a budget, and see totals converted at current exchange rates.",
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataFile, "data-file", "", "Ledger file (overrides config and "+config.EnvDataFile+")")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", `Log destination ("-" for stderr; default: cache dir)`)
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagRefresh, "refresh", false, "Fetch fresh rates before running the command")
}

// session is everything a command needs: config, logger and an open tracker.
type session struct {
	cfg     config.Config
	log     zerolog.Logger
	tr      *tracker.Tracker
	history *store.History // nil when disabled or unavailable

	closeLog func() error
}

// openSession loads config, opens the log, the rate history and the ledger.
// A broken config falls back to defaults with a warning; a broken ledger is
// an error.
func openSession() (*session, error) {
	cfg, cfgErr := config.Load()

	log, closeLog, err := logging.Setup(logging.Options{
		Dir:     config.CacheDir(),
		Path:    flagLogFile,
		Verbose: flagVerbose,
	})
	if err != nil {
		return nil, err
	}
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Msg("config unreadable, using defaults")
		cfg = config.DefaultConfig()
	}

	s := &session{cfg: cfg, log: log, closeLog: closeLog}

	opts := tracker.Options{
		DataPath:       s.dataFile(),
		RatesCachePath: config.RatesCachePath(),
		Fetcher: rates.NewClient(rates.Options{
			APIKey:      config.GetAPIKey(cfg),
			PrimaryURL:  cfg.Rates.PrimaryURL,
			FallbackURL: cfg.Rates.FallbackURL,
			Logger:      log,
		}),
		Logger: log,
	}
	if cfg.Rates.History {
		h, err := store.Open(config.HistoryPath())
		if err != nil {
			log.Warn().Err(err).Msg("rate history unavailable")
		} else {
			s.history = h
			opts.History = h
		}
	}

	tr, err := tracker.Open(opts)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.tr = tr
	log.Debug().Str("data_file", opts.DataPath).Msg("session opened")
	return s, nil
}

func (s *session) dataFile() string {
	if flagDataFile != "" {
		return flagDataFile
	}
	return config.DataFile(s.cfg)
}

// Close releases the history database and the log file.
func (s *session) Close() {
	if s.history != nil {
		if err := s.history.Close(); err != nil {
			s.log.Warn().Err(err).Msg("closing rate history")
		}
	}
	_ = s.closeLog()
}

// ensureRates fetches rates when --refresh is set or nothing is cached.
// Failures are reported on stderr and the command carries on with whatever
// rates it has.
func (s *session) ensureRates() {
	if !flagRefresh && !s.tr.Rates.Empty() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if out := s.tr.Refresh(ctx); out.Err != nil {
		warnf("%s\n", out.Err)
	}
}
