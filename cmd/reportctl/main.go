// Command reportctl generates school stress reports from a survey sheet
// without running the web server.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/fadilmartias/stress-manometer/internal/config"
	"github.com/fadilmartias/stress-manometer/internal/model"
	"github.com/fadilmartias/stress-manometer/internal/service"
	"github.com/fadilmartias/stress-manometer/internal/usecase"
	"github.com/fadilmartias/stress-manometer/internal/util"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Println("Could not load .env file")
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "reportctl",
		Short:        "Build student exam stress reports from survey sheets",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newSchoolsCmd(), newInspectCmd(), newGenerateCmd())
	return rootCmd
}

func loadFile(path string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return util.LoadDataset(path, f)
}

func newSchoolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schools FILE",
		Short: "List the schools found in a survey sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadFile(args[0])
			if err != nil {
				return err
			}
			for _, s := range ds.Schools {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}

func newInspectCmd() *cobra.Command {
	var school, export string
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show the scored rows and category breakdown of one school",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadFile(args[0])
			if err != nil {
				return err
			}
			agg, rows, err := usecase.InspectDataset(ds, school)
			if err != nil {
				return err
			}
			printInspection(cmd.OutOrStdout(), agg, rows)

			if export == "" {
				return nil
			}
			art, err := usecase.ExportDataset(ds, school)
			if err != nil {
				return err
			}
			if err := os.WriteFile(export, art.Data, 0644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", export)
			return nil
		},
	}
	cmd.Flags().StringVarP(&school, "school", "s", "", "School name (required)")
	cmd.Flags().StringVar(&export, "export", "", "Also write the scored rows to this .xlsx file")
	cmd.MarkFlagRequired("school")
	return cmd
}

func printInspection(w io.Writer, agg *model.SchoolAggregate, rows []model.ScoredResponse) {
	fmt.Fprintf(w, "%s: %d students\n\n", agg.School, agg.Count)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tCOUNT\tPERCENT")
	for i, c := range model.Categories {
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\n", c, agg.Counts[i], agg.Percentages[i])
	}
	tw.Flush()

	fmt.Fprintf(w, "\nAnxiety %.1f%%  Parental pressure %.1f%%  Support %.1f%%\n\n",
		agg.AnxietyPct, agg.ParentPressurePct, agg.SupportPct)

	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROW\tQ1\tQ2\tQ3\tQ4\tQ5\tSCORE\tCATEGORY\tDEFAULTED")
	for i, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%s\t%d\n", i+1,
			r.Answers[0], r.Answers[1], r.Answers[2], r.Answers[3], r.Answers[4],
			r.TotalScore, r.Category, r.Defaulted)
	}
	tw.Flush()
}

func newGenerateCmd() *cobra.Command {
	var school, format, logoPath, output string
	cmd := &cobra.Command{
		Use:   "generate FILE",
		Short: "Generate the HTML or PDF report of one school",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := usecase.ParseFormat(format)
			if err != nil {
				return err
			}
			ds, err := loadFile(args[0])
			if err != nil {
				return err
			}

			req := usecase.ReportRequest{School: school, Format: f}
			if logoPath != "" {
				data, err := os.ReadFile(logoPath)
				if err != nil {
					return fmt.Errorf("failed to read logo: %w", err)
				}
				req.Logo = &usecase.Logo{Filename: filepath.Base(logoPath), Data: data}
			}

			uc, err := newUsecase(cmd.Context())
			if err != nil {
				return err
			}
			art, err := uc.GenerateReport(cmd.Context(), ds, req)
			if err != nil {
				return err
			}

			if output == "" {
				output = art.Filename
			}
			if err := os.WriteFile(output, art.Data, 0644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&school, "school", "s", "", "School name (required)")
	cmd.Flags().StringVar(&format, "format", "html", "Output format: html or pdf")
	cmd.Flags().StringVar(&logoPath, "logo", "", "PNG or JPEG logo (default: monogram)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default: <school>_Report.<format>)")
	cmd.MarkFlagRequired("school")
	return cmd
}

// newUsecase wires the report pipeline from the environment. The CLI keeps
// no datasets, so it has no repository.
func newUsecase(ctx context.Context) (*usecase.ReportUsecase, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	profile, err := config.LoadReportProfile(config.LoadAppConfig().ProfilePath)
	if err != nil {
		return nil, err
	}
	provider, err := service.NewNarrativeProvider(ctx,
		config.LoadNarrativeConfig(),
		config.LoadGeminiConfig(),
		config.LoadOpenRouterConfig(),
	)
	if err != nil {
		return nil, err
	}
	narrative := service.NewNarrativeService(provider, profile.Benchmarks, config.LoadNarrativeConfig().Timeout)
	renderer := service.NewChromePDFService(config.LoadRendererConfig())
	return usecase.NewReportUsecase(nil, narrative, renderer, profile), nil
}
