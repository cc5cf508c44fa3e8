package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/artcollector/internal/domain/option"
	logpkg "github.com/kailas-cloud/artcollector/internal/logger"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Print the century and classification lists",
	Long: `Options prints the selector lists the search form offers. Lists come from
the option cache when it is warm and from the catalog otherwise.`,
	RunE: runOptions,
}

func init() {
	optionsCmd.Flags().String("kind", "", "only this list: century or classification")
	optionsCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(optionsCmd)
}

func runOptions(cmd *cobra.Command, _ []string) error {
	kind, _ := cmd.Flags().GetString("kind")
	asJSON, _ := cmd.Flags().GetBool("json")
	if kind != "" && !option.Kind(kind).IsValid() {
		return fmt.Errorf("--kind must be %q or %q", option.Centuries, option.Classifications)
	}

	cfg, env, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	d, err := buildDeps(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer d.Close()

	lists := map[option.Kind]option.List{}
	if kind == "" || option.Kind(kind) == option.Centuries {
		if lists[option.Centuries], err = d.options.FetchAllCenturies(ctx); err != nil {
			return err
		}
	}
	if kind == "" || option.Kind(kind) == option.Classifications {
		if lists[option.Classifications], err = d.options.FetchAllClassifications(ctx); err != nil {
			return err
		}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(lists)
	}
	for _, k := range []option.Kind{option.Centuries, option.Classifications} {
		if l, ok := lists[k]; ok {
			printList(os.Stdout, k, l)
		}
	}
	return nil
}

func printList(w io.Writer, kind option.Kind, l option.List) {
	fmt.Fprintf(w, "%s (%d)\n", kind, len(l))
	for _, o := range l {
		fmt.Fprintf(w, "  %6d  %s\n", o.ID, o.Name)
	}
}
