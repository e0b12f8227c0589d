// Package cli wires the plagd command tree. Commands talk to the core
// services; all persistence and indexing is assembled in the pre-run hook.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/jordannanyan/plagiarism-backend/internal/adapters/driven/config/file"
	"github.com/jordannanyan/plagiarism-backend/internal/adapters/driven/index"
	"github.com/jordannanyan/plagiarism-backend/internal/adapters/driven/storage/sqlite"
	"github.com/jordannanyan/plagiarism-backend/internal/adapters/driven/textfile"
	"github.com/jordannanyan/plagiarism-backend/internal/core/ports/driven"
	"github.com/jordannanyan/plagiarism-backend/internal/core/services"
	"github.com/jordannanyan/plagiarism-backend/internal/logger"
)

var version = "dev"

// Package-level services shared by all commands, assembled in initServices.
var (
	configStore   driven.ConfigStore
	store         *sqlite.Store
	corpusIndex   *index.LSH
	checkService  *services.CheckService
	corpusService *services.CorpusService
	paramService  *services.ParamService
)

var (
	flagVerbose   bool
	flagConfigDir string
)

var rootCmd = &cobra.Command{
	Use:   "plagd",
	Short: "Plagiarism detection service",
	Long: `plagd checks user documents against a reference corpus using
winnowing fingerprints, MinHash signatures and LSH candidate pruning.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		return initServices()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if corpusIndex != nil {
			corpusIndex.Close()
		}
		if store != nil {
			store.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "config directory (default ~/.plagd)")
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initServices() error {
	var err error
	configStore, err = configfile.NewConfigStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err = sqlite.NewStore(configStore.GetString("data_dir"))
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	logger.Debug("store opened at %s", store.Path())

	source := textfile.New()
	corpusIndex = index.New(source)
	if dir := configStore.GetString("corpus_dir"); dir != "" {
		if err := corpusIndex.Watch(dir); err != nil {
			logger.Warn("corpus watch on %s unavailable: %v", dir, err)
		}
	}

	opts := []services.CheckOption{}
	if secs := configStore.GetInt("check_deadline_seconds"); secs > 0 {
		opts = append(opts, services.WithDeadline(time.Duration(secs)*time.Second))
	}

	checkService = services.NewCheckService(
		store.ParamStore(),
		store.DocumentStore(),
		store.CorpusStore(),
		store.CheckStore(),
		source,
		corpusIndex,
		opts...,
	)
	corpusService = services.NewCorpusService(store.CorpusStore())
	paramService = services.NewParamService(store.ParamStore())
	return nil
}
