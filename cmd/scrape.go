package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lemina/intel-cli/internal/model"
	"github.com/lemina/intel-cli/internal/orchestrator"
)

var (
	scrapeResume   bool
	scrapeDryRun   bool
	scrapeScrapers []string
	scrapeLimit    int
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run a collection pass over all enabled sources",
	Long:  "Fetches raw records from each enabled source in parallel, cross-references them into deduplicated entities, and persists the result.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		o := orchestrator.New(cfg, st, newRegistry(), newFetcher())
		summary, err := o.Run(ctx, orchestrator.Options{
			Sources: scrapeScrapers,
			Resume:  scrapeResume,
			DryRun:  scrapeDryRun,
			Limit:   scrapeLimit,
		})
		if err != nil {
			return err
		}

		printSummary(os.Stdout, summary)
		return nil
	},
}

func printSummary(w io.Writer, s *model.RunSummary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush() //nolint:errcheck

	fmt.Fprintln(tw, "SOURCE\tRECORDS")
	sources := make([]string, 0, len(s.RecordsBySource))
	for name := range s.RecordsBySource {
		sources = append(sources, name)
	}
	sort.Strings(sources)
	for _, name := range sources {
		fmt.Fprintf(tw, "%s\t%d\n", name, s.RecordsBySource[name])
	}
	for _, f := range s.FailedSources {
		fmt.Fprintf(tw, "%s\tFAILED: %s\n", f.Source, f.Error)
	}
	if len(s.SourcesResumed) > 0 {
		fmt.Fprintf(tw, "\nresumed from checkpoint:\t%v\n", s.SourcesResumed)
	}

	fmt.Fprintf(tw, "\ncompanies:\t%d (%d new, %d updated)\n", s.Companies, s.CompaniesInserted, s.CompaniesUpdated)
	fmt.Fprintf(tw, "verified:\t%d\n", s.Verified)
	fmt.Fprintf(tw, "cross-referenced:\t%d\n", s.CrossReferenced)
	fmt.Fprintf(tw, "self-reported:\t%d\n", s.SelfReported)
	fmt.Fprintf(tw, "funding rounds:\t%d\n", s.FundingRounds)
	fmt.Fprintf(tw, "updates:\t%d\n", s.Updates)
	fmt.Fprintf(tw, "average quality:\t%.1f\n", s.AverageQuality)
	if s.RecordsDropped > 0 {
		fmt.Fprintf(tw, "dropped records:\t%d\n", s.RecordsDropped)
	}
	if s.UnlinkedRecords > 0 {
		fmt.Fprintf(tw, "unlinked sub-records:\t%d\n", s.UnlinkedRecords)
	}
}

func init() {
	scrapeCmd.Flags().BoolVar(&scrapeResume, "resume", false, "resume from the latest checkpoint, skipping completed sources")
	scrapeCmd.Flags().BoolVar(&scrapeDryRun, "dry-run", false, "triangulate but do not persist companies")
	scrapeCmd.Flags().StringSliceVar(&scrapeScrapers, "scrapers", nil, "restrict the run to the named sources")
	scrapeCmd.Flags().IntVar(&scrapeLimit, "limit", 0, "cap records per source (0 = no cap)")
	rootCmd.AddCommand(scrapeCmd)
}
