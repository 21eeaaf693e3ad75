package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nodework/internal/codec"
	"nodework/internal/config"
	"nodework/internal/editor"
	"nodework/internal/library"
	"nodework/internal/logging"
	"nodework/internal/repository"
	"nodework/internal/repository/sqlite"
)

func evalCmd() *cobra.Command {
	var (
		key     string
		file    string
		dbPath  string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a saved graph and print its output",
		Long: "Evaluate the graph saved under a storage key, or a YAML graph file,\n" +
			"and print the value reaching the output node.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			if key == "" {
				key = cfg.Storage.Key
			}
			if dbPath != "" {
				cfg.Database.Path = dbPath
			}

			logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
			if err != nil {
				return err
			}
			defer logger.Sync()

			lib, err := cfg.BuildLibrary()
			if err != nil {
				return err
			}

			var doc *codec.Document
			source := file
			if file != "" {
				doc, err = readYAML(file, lib)
			} else {
				source = key
				doc, err = readSaved(cmd.Context(), cfg, key)
			}
			if err != nil {
				bad.Fprintf(cmd.ErrOrStderr(), "  %v\n", err)
				return err
			}

			m := editor.New(lib, cfg.Window(), cfg.Limits(), logger).WithGraph(doc.Graph)
			return printEval(cmd.OutOrStdout(), source, m, logger, verbose)
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "storage key to evaluate (default: storage.key from config)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "evaluate a YAML graph file instead of saved state")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every node's value in evaluation order")
	return cmd
}

func readSaved(ctx context.Context, cfg *config.Config, key string) (*codec.Document, error) {
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer repo.Close()

	data, err := repo.Load(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("nothing saved under %q in %s", key, cfg.Database.Path)
	}
	if err != nil {
		return nil, err
	}
	return codec.NewJSONCodec().Unmarshal(data)
}

func readYAML(path string, lib *library.Library) (*codec.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return codec.NewYAMLCodec(lib).Parse(f)
}

func printEval(w io.Writer, source string, m editor.Model, logger *zap.Logger, verbose bool) error {
	fmt.Fprintf(w, "%s %s\n", brand.Sprint("nodework"), subtle.Sprint(source))
	fmt.Fprintf(w, "  %d nodes, %d connections\n", len(m.Graph.Nodes), len(m.Graph.Connections))
	if len(m.Rejected) > 0 {
		warn.Fprintf(w, "  %d connection(s) dropped to break a cycle\n", len(m.Rejected))
	}

	if verbose {
		res, err := m.DAG.Evaluate(m.Library, logger)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(res.Order))
		for i, id := range res.Order {
			v := m.DAG.Vertices[id]
			rows = append(rows, []string{strconv.Itoa(i + 1), id, v.Key, res.Values[id].String()})
		}
		fmt.Fprintln(w)
		table(w, []string{"#", "Node", "Key", "Value"}, rows)
		fmt.Fprintln(w)
	}

	if m.Output.IsNone() {
		warn.Fprintln(w, "  no output node")
		return nil
	}
	fmt.Fprintf(w, "  output: %s\n", good.Sprint(m.Output.String()))
	return nil
}
