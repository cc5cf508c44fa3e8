package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/artcollector/internal/domain"
	"github.com/kailas-cloud/artcollector/internal/domain/facet"
	"github.com/kailas-cloud/artcollector/internal/domain/object"
	"github.com/kailas-cloud/artcollector/internal/domain/option"
	"github.com/kailas-cloud/artcollector/internal/domain/resultset"
	logpkg "github.com/kailas-cloud/artcollector/internal/logger"
	"github.com/kailas-cloud/artcollector/internal/state"
	searchuc "github.com/kailas-cloud/artcollector/internal/usecase/search"
	"github.com/kailas-cloud/artcollector/internal/usecase/workflow"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Query the catalog once and print the results",
	Long: `Search runs a faceted query (--query, --century, --classification) or a
searchable fact lookup (--term with --value) and prints the first page.
Unknown century or classification names are rejected with the closest matches.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "free-text keywords")
	searchCmd.Flags().String("century", facet.Any, "century name, or any")
	searchCmd.Flags().String("classification", facet.Any, "classification name, or any")
	searchCmd.Flags().String("term", "", "searchable fact term: culture, technique, medium, person")
	searchCmd.Flags().String("value", "", "value for --term")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	query, _ := cmd.Flags().GetString("query")
	century, _ := cmd.Flags().GetString("century")
	classification, _ := cmd.Flags().GetString("classification")
	term, _ := cmd.Flags().GetString("term")
	value, _ := cmd.Flags().GetString("value")
	asJSON, _ := cmd.Flags().GetBool("json")

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

	svc := searchuc.New(d.options, d.catalog, logger)
	sess := state.NewSession("cli", time.Now())

	var out workflow.Outcome
	if term != "" {
		out = svc.Lookup(ctx, sess, object.Term(term), value)
	} else {
		f := facet.New(query, century, classification)
		svc.LoadOptions(ctx, sess)
		snap := sess.Snapshot()
		if err := checkSelector("century", f.Century(), snap.Centuries); err != nil {
			return err
		}
		if err := checkSelector("classification", f.Classification(), snap.Classifications); err != nil {
			return err
		}
		sess.SetFacets(f)
		out = svc.Submit(ctx, sess)
	}

	if out.Err() != nil {
		return out.Err()
	}
	rs, _ := out.Results()
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rs)
	}
	return printResults(os.Stdout, rs)
}

// checkSelector rejects a selector value missing from a loaded list. An empty list
// means the options could not be loaded, so the value is passed through.
func checkSelector(name, value string, list option.List) error {
	if facet.IsAny(value) || len(list) == 0 || list.Contains(value) {
		return nil
	}
	msg := fmt.Sprintf("unknown %s %q", name, value)
	if s := option.Suggest(list, value, 3); len(s) > 0 {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidFacet, msg)
}

func printResults(w io.Writer, rs resultset.ResultSet) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tID\tTITLE\tDATED\tCULTURE\n")
	for i, o := range rs.Records {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n", i, o.ID, o.Title, o.Dated, o.Culture)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d of %d records, page %d of %d\n",
		len(rs.Records), rs.Info.TotalRecords, rs.Info.Page, rs.Info.Pages)
	return err
}
