package commands

import (
	"fmt"
	"os"

	"github.com/TatsianaKryshtofik/Test-project/internal/config"
	"github.com/TatsianaKryshtofik/Test-project/internal/media"
	"github.com/TatsianaKryshtofik/Test-project/internal/store"
	"github.com/spf13/cobra"
)

var (
	envFile  string
	measurer media.Measurer
)

var rootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "Manage the blog database",
	Long: `blogctl builds the blog schema, shows its display labels and manages images.

Configuration is read from the environment, optionally loaded from an env file
(DSN, LOG_LEVEL, SLOW_QUERY_MS, ACCOUNT_ID, ACCESS_KEY_ID, ACCESS_KEY_SECRET,
BUCKET_NAME, PUBLIC_URL, LABELS_FILE).`,
	SilenceUsage: true,
}

// Execute runs the root command. m measures uploaded images.
func Execute(m media.Measurer) {
	measurer = m
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Env file to load before reading the environment")
}

func loadConfig() (*config.Config, error) {
	return config.Load(envFile)
}

func openStore() (*store.Store, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := store.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}
