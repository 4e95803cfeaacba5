package main

import (
	"os"

	"crec-parser-go/internal/config"
	"crec-parser-go/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "crparse",
		Short:         "Segment Congressional Record text into typed items",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (CREC_* env vars override it)")
	root.AddCommand(newParseCmd(), newKindsCmd())

	if err := root.Execute(); err != nil {
		logger.New().WithError(err).Error("crparse failed")
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if f := cmd.Flags().Lookup("patterns"); f != nil && f.Changed {
		cfg.PatternsFile = f.Value.String()
	}
	if f := cmd.Flags().Lookup("speakers"); f != nil && f.Changed {
		cfg.SpeakersFile = f.Value.String()
	}
	return cfg, nil
}
