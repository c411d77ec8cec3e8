package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/lemina/intel-cli/internal/model"
	"github.com/lemina/intel-cli/internal/store"
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "Query triangulated companies",
}

var companiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List companies, best quality first",
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

		sector, _ := cmd.Flags().GetString("sector")
		status, _ := cmd.Flags().GetString("status")
		minQuality, _ := cmd.Flags().GetInt("min-quality")
		search, _ := cmd.Flags().GetString("search")
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		companies, err := st.ListCompanies(ctx, store.CompanyFilter{
			Sector:     sector,
			Status:     model.VerificationStatus(status),
			MinQuality: minQuality,
			Search:     search,
			Limit:      limit,
		})
		if err != nil {
			return eris.Wrap(err, "companies list")
		}

		if len(companies) == 0 {
			fmt.Fprintln(os.Stderr, "No companies found.")
			return nil
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(companies)
		}

		formatCompaniesList(os.Stdout, companies)
		return nil
	},
}

func formatCompaniesList(w io.Writer, companies []model.Company) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush() //nolint:errcheck

	fmt.Fprintln(tw, "NAME\tSECTOR\tQUALITY\tSTATUS\tSOURCES\tWEBSITE")
	for _, c := range companies {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			c.Name, c.Sector, c.QualityScore, c.VerificationStatus,
			strings.Join(c.Sources, ","), c.Website)
	}
}

func init() {
	companiesListCmd.Flags().String("sector", "", "filter by sector")
	companiesListCmd.Flags().String("status", "", "filter by verification status")
	companiesListCmd.Flags().Int("min-quality", 0, "minimum quality score")
	companiesListCmd.Flags().String("search", "", "substring match on name")
	companiesListCmd.Flags().Int("limit", 50, "max companies to list")
	companiesListCmd.Flags().Bool("json", false, "emit JSON instead of a table")

	companiesCmd.AddCommand(companiesListCmd)
	rootCmd.AddCommand(companiesCmd)
}
