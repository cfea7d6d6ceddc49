package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"gohappy/adapters/countries"
	"gohappy/adapters/excel"
	"gohappy/app"
	"gohappy/domain/happiness"
	"gohappy/internal"
	"gohappy/internal/cleaning"
	"gohappy/internal/config"
	"gohappy/internal/container"
	"gohappy/internal/migration"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	internal.DefaultLogger.SetLevel(internal.ParseLogLevel(os.Getenv("LOG_LEVEL")))

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataFile string

	rootCmd := &cobra.Command{
		Use:           "gohappy-cli",
		Short:         "World Happiness dataset tools: cleaning, import, queries and export",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataFile, "file", defaultDataFile(), "Cleaned dataset (CSV or XLSX)")

	rootCmd.AddCommand(
		newCleanCmd(),
		newMigrateCmd(),
		newImportCmd(&dataFile),
		newSnapshotsCmd(),
		newDetailCmd(&dataFile),
		newCorrelateCmd(&dataFile),
		newExportCmd(&dataFile),
	)
	return rootCmd
}

func defaultDataFile() string {
	if f := os.Getenv("DATA_FILE"); f != "" {
		return f
	}
	return "./data_cleaned.csv"
}

func newCleanCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "clean [raw-report]",
		Short: "Clean the raw report and write the cleaned CSV",
		Long: `Drop territories without an ISO code, correct country names to their ISO form,
add ISO 3166-1 alpha-3 codes and per-year ranks, and write the cleaned CSV.

Example: gohappy-cli clean world-happiness-report.csv --out data_cleaned.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd.Context(), cmd.OutOrStdout(), args[0], out)
		},
	}

	cmd.Flags().StringVar(&out, "out", "data_cleaned.csv", "Output CSV path")
	return cmd
}

func runClean(ctx context.Context, w io.Writer, in, out string) error {
	records, err := excel.NewFileSource(in).Records(ctx)
	if err != nil {
		return err
	}

	cleaned, report := cleaning.NewCleaner(countries.NewResolver()).Clean(records)
	ds, err := happiness.NewDataset(cleaned)
	if err != nil {
		return fmt.Errorf("cleaned dataset is invalid: %w", err)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer f.Close()
	if err := excel.WriteCleanedCSV(f, ds); err != nil {
		return err
	}

	fmt.Fprintf(w, "Cleaned %d records into %d (%s)\n", report.Input, report.Output, out)
	printNames(w, "Removed", report.Removed)
	printNames(w, "Renamed", report.Renamed)
	printNames(w, "Unresolved", report.Unresolved)
	return nil
}

func printNames(w io.Writer, label string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(w, "%s (%d): %s\n", label, len(names), strings.Join(names, ", "))
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the PostgreSQL schema (DATABASE_URL)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(context.Background())

			fmt.Fprintf(cmd.OutOrStdout(), "Schema at version %s\n", migration.NewRunner().Version())
			return nil
		},
	}
}

func newImportCmd(dataFile *string) *cobra.Command {
	var name string
	var force bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store the dataset file as a new PostgreSQL snapshot",
		Long: `Store the dataset file as a snapshot. The dashboard serves the latest snapshot
when DATA_SOURCE=postgres. Importing unchanged file contents again is skipped unless --force is set.

Example: gohappy-cli import --file data_cleaned.csv --name "WHR 2023"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			source := excel.NewFileSource(*dataFile)

			ds, err := source.Load(ctx)
			if err != nil {
				return err
			}
			checksum, err := source.Checksum()
			if err != nil {
				return err
			}

			c, err := openContainer(ctx)
			if err != nil {
				return err
			}
			defer c.Shutdown(context.Background())

			if name == "" {
				name = strings.TrimSuffix(filepath.Base(*dataFile), filepath.Ext(*dataFile))
			}
			result, err := c.Importer.Import(ctx, name, *dataFile, checksum, ds, force)
			if err != nil {
				return err
			}

			snap := result.Snapshot
			if !result.Created {
				fmt.Fprintf(cmd.OutOrStdout(), "Unchanged: snapshot %s already holds this file\n", snap.ID)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported snapshot %s: %d records, %d countries, %s\n",
				snap.ID, snap.RecordCount, snap.CountryCount, snap.Span())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Snapshot name (default: file name)")
	cmd.Flags().BoolVar(&force, "force", false, "Import even when the latest snapshot has the same checksum")
	return cmd
}

func newSnapshotsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List imported snapshots, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(context.Background())

			snaps, err := c.Importer.Snapshots(cmd.Context(), limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tYEARS\tRECORDS\tCHECKSUM\tCREATED")
			for _, s := range snaps {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
					s.ID, s.Name, s.Span(), s.RecordCount, s.Checksum.Short(), s.CreatedAt.Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of snapshots")
	return cmd
}

func newDetailCmd(dataFile *string) *cobra.Command {
	var country, year string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "detail",
		Short: "Show the feature cards of a country in a year",
		Long:  `Example: gohappy-cli detail --country Switzerland --year 2020`,
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, err := dashboardFor(*dataFile).CountryDetail(cmd.Context(), country, year)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), panel)
			}
			return printDetail(cmd.OutOrStdout(), panel)
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "Country name")
	cmd.Flags().StringVar(&year, "year", "", "Year")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func printDetail(w io.Writer, panel *app.DetailPanel) error {
	if panel.Overlay.Shown {
		fmt.Fprintln(w, panel.Overlay.Message)
		return nil
	}

	fmt.Fprintln(w, panel.Title)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FEATURE\tVALUE\tRANK")
	for _, card := range panel.Cards {
		rank := "-"
		if card.Ranked() {
			rank = fmt.Sprintf("%d of %d", card.Rank, card.Total)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", card.Title, card.Value, rank)
	}
	return tw.Flush()
}

func newCorrelateCmd(dataFile *string) *cobra.Command {
	var country, first, second string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "correlate",
		Short: "Explain the correlation of two features for a country",
		Long:  `Example: gohappy-cli correlate --country Switzerland --first "Life Ladder" --second Generosity`,
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, err := dashboardFor(*dataFile).Explanation(cmd.Context(), country, first, second)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), panel)
			}

			w := cmd.OutOrStdout()
			if panel.Overlay.Shown {
				fmt.Fprintln(w, panel.Overlay.Message)
				return nil
			}
			fmt.Fprintln(w, panel.Simplified)
			fmt.Fprintf(w, "%s (%s, n = %d", panel.ScientificLabel, panel.Significance, panel.N)
			if p := panel.FormattedPValue(); p != "" {
				fmt.Fprintf(w, ", p = %s", p)
			}
			fmt.Fprintln(w, ")")
			fmt.Fprintln(w, panel.ScientificText)
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "Country name")
	cmd.Flags().StringVar(&first, "first", happiness.InitialFirstFeature, "First feature (label or key)")
	cmd.Flags().StringVar(&second, "second", happiness.InitialSecondFeature, "Second feature (label or key)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func newExportCmd(dataFile *string) *cobra.Command {
	var country, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export records, and a country's correlation matrix, to an Excel workbook",
		Long:  `Example: gohappy-cli export --country Switzerland --out switzerland.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := excel.NewFileSource(*dataFile).Load(cmd.Context())
			if err != nil {
				return err
			}
			if country != "" && !ds.HasCountry(country) {
				return fmt.Errorf("no records for country %q", country)
			}
			if err := excel.ExportWorkbook(out, ds, country); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "Add the correlation sheet of this country")
	cmd.Flags().StringVar(&out, "out", "world-happiness.xlsx", "Output workbook path")
	return cmd
}

// openContainer connects to DATABASE_URL and migrates the schema
func openContainer(ctx context.Context) (*container.Container, error) {
	cfg := &config.Config{Database: config.DatabaseConfig{
		URL:     os.Getenv("DATABASE_URL"),
		MaxOpen: 2,
		MaxIdle: 1,
	}}

	c, err := container.New(cfg)
	if err != nil {
		return nil, err
	}
	db, err := container.OpenDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := c.InitWithDatabase(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func dashboardFor(dataFile string) *app.DashboardService {
	return app.NewDashboardService(excel.NewFileSource(dataFile))
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
