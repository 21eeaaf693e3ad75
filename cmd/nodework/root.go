package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nodework/internal/config"
)

var version = "0.1.0"

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nodework",
		Short: "nodework - a visual node-graph editor",
		Long: brand.Sprint("nodework") + " - build dataflow graphs in the browser\n" +
			subtle.Sprint("Serve the editor, evaluate saved graphs, and inspect the node library"),
		Version:      version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate("nodework {{ .Version }}\n")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: search standard locations)")

	root.AddCommand(
		serveCmd(),
		evalCmd(),
		libraryCmd(),
		configCmd(),
	)
	return root
}

// loadConfig reads the config file, then applies environment overrides
func loadConfig() (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if configPath != "" {
		cfg, path, err = config.LoadFromPath(configPath)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return nil, path, err
	}

	for _, name := range cfg.ApplyEnv() {
		warn.Fprintf(os.Stderr, "ignoring invalid value in %s\n", name)
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid environment override: %w", err)
	}
	return cfg, path, nil
}
