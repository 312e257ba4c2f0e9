package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/labelforge/tagmatch/internal/config"
	"github.com/labelforge/tagmatch/pkg/catalog"
	"github.com/labelforge/tagmatch/pkg/errors"
	"github.com/labelforge/tagmatch/pkg/logging"
	"github.com/labelforge/tagmatch/pkg/manifest"
	"github.com/labelforge/tagmatch/pkg/match"
	"github.com/labelforge/tagmatch/pkg/strains"
)

// newMatchCommand creates the match subcommand.
func newMatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match a manifest against a catalog",
		Long: `Match fetches an inventory manifest (URL or file), matches every line
item against the catalog, and prints one result per item. Items with no
confident match are reported as FALLBACK with a synthesized record; no
item is ever dropped.`,
		RunE: runMatch,
	}

	cmd.Flags().String("manifest", "", "manifest URL or file path (required)")
	cmd.Flags().String("catalog", "", "catalog file, YAML or CSV (required)")
	cmd.Flags().Float64("threshold", match.DefaultThreshold, "minimum score accepted as MATCHED")
	cmd.Flags().Int("candidate-cap", match.DefaultCandidateCap, "max candidates scored per item")
	cmd.Flags().Float64("early-stop", match.DefaultEarlyStopScore, "stop scoring an item once a candidate reaches this score")
	cmd.Flags().Duration("timeout", match.DefaultTimeout, "wall-clock budget for the whole run")
	_ = cmd.MarkFlagRequired("manifest")
	_ = cmd.MarkFlagRequired("catalog")

	_ = viper.BindPFlag("match.threshold", cmd.Flags().Lookup("threshold"))
	_ = viper.BindPFlag("match.candidate_cap", cmd.Flags().Lookup("candidate-cap"))
	_ = viper.BindPFlag("match.early_stop", cmd.Flags().Lookup("early-stop"))
	_ = viper.BindPFlag("match.timeout", cmd.Flags().Lookup("timeout"))

	return cmd
}

// runMatch executes the match subcommand.
func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := logging.Default()
	ctx = logging.WithLogger(ctx, log)

	manifestSource, _ := cmd.Flags().GetString("manifest")
	catalogPath, _ := cmd.Flags().GetString("catalog")

	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	index := catalog.NewIndexCache().Get(cat)

	fetcher := manifest.NewFetcher(30 * time.Second)
	doc, err := fetcher.Fetch(ctx, manifestSource)
	if err != nil {
		return err
	}

	orchestrator, err := match.NewOrchestrator(
		index,
		strains.NewStaticResolver(nil),
		match.WithThreshold(config.GetFloat64("match.threshold", match.DefaultThreshold)),
		match.WithCandidateCap(config.GetInt("match.candidate_cap", match.DefaultCandidateCap)),
		match.WithEarlyStopScore(config.GetFloat64("match.early_stop", match.DefaultEarlyStopScore)),
		match.WithTimeout(config.GetDuration("match.timeout", match.DefaultTimeout)),
	)
	if err != nil {
		return err
	}

	run := orchestrator.Match(ctx, doc.Items)
	if err := printRun(run); err != nil {
		return err
	}

	if run.TimedOut() {
		return fmt.Errorf("run %s: %w after %d of %d items", run.ID, errors.ErrTimeout, run.Processed, run.Total)
	}
	return nil
}

// printRun renders the run results as a table on stdout.
func printRun(run *match.Run) error {
	table := tablewriter.NewTable(os.Stdout)
	table.Header("ITEM", "DECISION", "SCORE", "NAME", "VENDOR", "LINEAGE")

	for i := range run.Results {
		res := &run.Results[i]
		if err := table.Append(
			res.Item.ProductName,
			string(res.Decision),
			fmt.Sprintf("%.2f", res.Score),
			res.DisplayName(),
			res.DisplayVendor(),
			res.DisplayLineage(),
		); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("\n%d items, %d matched, %d fallback (%s, catalog %s)\n",
		run.Processed, run.Matched(), run.Processed-run.Matched(), run.State, run.CatalogVersion)
	return nil
}
