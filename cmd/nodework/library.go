package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nodework/internal/library"
)

func libraryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "library",
		Short: "List the node definitions available in the spawn menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			lib, err := cfg.BuildLibrary()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %s\n\n", brand.Sprint("nodework"), subtle.Sprint("node library"))

			rows := make([][]string, 0, lib.Len())
			for _, def := range lib.Definitions() {
				inputs := strings.Join(def.Inputs(), ", ")
				if inputs == "" {
					inputs = "-"
				}
				kind := def.Domain().String()
				if library.IsOutput(def) {
					kind += " (output)"
				}
				rows = append(rows, []string{def.Key(), def.Label(), kind, inputs})
			}
			table(w, []string{"Key", "Label", "Domain", "Inputs"}, rows)

			fmt.Fprintf(w, "\n  %d definitions\n", lib.Len())
			return nil
		},
	}
}
