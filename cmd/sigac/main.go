package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ucm-dct/sigac-api/internal/dto"
	"github.com/ucm-dct/sigac-api/internal/models"
	"github.com/ucm-dct/sigac-api/internal/service"
	"github.com/ucm-dct/sigac-api/internal/store"
	"github.com/ucm-dct/sigac-api/pkg/docstore"
)

var rootCmd = &cobra.Command{
	Use:   "sigac",
	Short: "SIGAC CLI",
	Long: `SIGAC tracks the scientific activities of university faculties.
The CLI operates offline on the JSON document stored in a workspace
directory, the same document the API serves.`,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("SIGAC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("workspace", "w", "./data", "workspace directory holding the document")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().String("edition", "validation", "workflow edition (validation or execution)")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("edition", rootCmd.PersistentFlags().Lookup("edition"))
}

func registerCommands() {
	rootCmd.AddCommand(facultiesCmd())
	rootCmd.AddCommand(activityCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(resetCmd())
	rootCmd.AddCommand(reportCmd())
}

func withStore(ctx context.Context, fn func(context.Context, *store.Store) error) error {
	edition := models.WorkflowEdition(viper.GetString("edition"))
	if edition != models.EditionValidation && edition != models.EditionExecution {
		return fmt.Errorf("unknown edition %q", edition)
	}
	backend, err := docstore.NewFile(viper.GetString("workspace"))
	if err != nil {
		return err
	}
	return fn(ctx, store.New(backend, store.Config{Edition: edition}))
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func facultiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "faculties",
		Short: "List faculties",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				faculties, err := s.Faculties(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(faculties)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Name"})
				for _, f := range faculties {
					tw.AppendRow(table.Row{f.ID, f.Name})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func activityCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "activity", Short: "Manage activity records"}
	cmd.AddCommand(activityListCmd())
	cmd.AddCommand(activityAddCmd())
	cmd.AddCommand(activityStatusCmd())
	cmd.AddCommand(activityExecDateCmd())
	cmd.AddCommand(activityEvidenceCmd())
	cmd.AddCommand(activityDeleteCmd())
	return cmd
}

func activityListCmd() *cobra.Command {
	var year int
	var facultyID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				activities, err := s.Activities(ctx, models.ActivityFilter{Year: year, FacultyID: facultyID})
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(activities)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Year", "Faculty", "Category", "Period", "Title", "State", "Executed"})
				for _, a := range activities {
					tw.AppendRow(table.Row{
						a.ID, a.Year, a.FacultyID, a.Category.Label(), a.Period.Label(),
						a.Title, a.Status.State.Label(), a.Status.ExecutedOn,
					})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "filter by year")
	cmd.Flags().StringVar(&facultyID, "faculty", "", "filter by faculty id")
	return cmd
}

func activityAddCmd() *cobra.Command {
	var draft models.ActivityDraft
	var category, period string
	var evidence []string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !models.ValidCategory(models.Category(category)) {
				return fmt.Errorf("unknown category %q", category)
			}
			if !models.ValidPeriod(models.Period(period)) {
				return fmt.Errorf("unknown period %q", period)
			}
			draft.Category = models.Category(category)
			draft.Period = models.Period(period)
			draft.EvidenceLinks = evidence
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				created, err := s.Add(ctx, draft)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(created)
				}
				fmt.Printf("created %s (%s)\n", created.ID, created.Status.State)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&draft.Year, "year", 0, "activity year")
	cmd.Flags().StringVar(&draft.FacultyID, "faculty", "", "faculty id")
	cmd.Flags().StringVar(&category, "category", string(models.CategoryResearch), "activity category")
	cmd.Flags().StringVar(&period, "period", string(models.PeriodT1), "reporting period")
	cmd.Flags().StringVar(&draft.Title, "title", "", "activity title")
	cmd.Flags().StringVar(&draft.Description, "description", "", "free-form description")
	cmd.Flags().StringVar(&draft.StartDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&draft.EndDate, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&evidence, "evidence", nil, "evidence link (repeatable)")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("faculty")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func activityStatusCmd() *cobra.Command {
	var state, comment string
	cmd := &cobra.Command{
		Use:   "status <id>",
		Short: "Change an activity's lifecycle state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				updated, err := s.UpdateStatus(ctx, args[0], models.State(state), comment)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(updated)
				}
				fmt.Printf("%s -> %s\n", updated.ID, updated.Status.State)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "target state")
	cmd.Flags().StringVar(&comment, "comment", "", "reviewer comment (validation edition)")
	_ = cmd.MarkFlagRequired("state")
	return cmd
}

func activityExecDateCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "exec-date <id>",
		Short: "Record when an activity was executed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				updated, err := s.UpdateExecutionDate(ctx, args[0], date)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(updated)
				}
				fmt.Printf("%s executed on %q\n", updated.ID, updated.Status.ExecutedOn)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "execution date (YYYY-MM-DD, empty unsets)")
	return cmd
}

func activityEvidenceCmd() *cobra.Command {
	var links []string
	cmd := &cobra.Command{
		Use:   "evidence <id>",
		Short: "Replace an activity's evidence links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				updated, err := s.SetEvidence(ctx, args[0], links)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(updated)
				}
				fmt.Printf("%s has %d evidence link(s)\n", updated.ID, len(updated.EvidenceLinks))
				return nil
			})
		},
	}
	cmd.Flags().StringArrayVar(&links, "link", nil, "evidence link (repeatable)")
	return cmd
}

func activityDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an activity record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				if err := s.Delete(ctx, args[0]); err != nil {
					return err
				}
				fmt.Println("deleted", args[0])
				return nil
			})
		},
	}
}

func dashboardCmd() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Per-faculty activity counts for a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				summary, err := service.NewDashboardService(s, nil).Summary(ctx, year)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(summary)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				header := table.Row{"Faculty", "Total"}
				states := s.Edition().States()
				for _, state := range states {
					header = append(header, state.Label())
				}
				tw.AppendHeader(header)
				for _, f := range summary.Faculties {
					row := table.Row{f.FacultyName, f.Total}
					for _, state := range states {
						row = append(row, f.ByState[state])
					}
					tw.AppendRow(row)
				}
				tw.AppendFooter(table.Row{"Total", summary.Total})
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "year")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the whole document as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				body, err := service.NewDocumentService(s, nil).Export(ctx)
				if err != nil {
					return err
				}
				if out == "" {
					_, err = os.Stdout.Write(body)
					return err
				}
				if err := os.WriteFile(out, body, 0o644); err != nil {
					return err
				}
				fmt.Println("exported to", out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	return cmd
}

func importCmd() *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Restore a previously exported document",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := os.ReadFile(in)
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				if err := service.NewDocumentService(s, nil).Import(ctx, body); err != nil {
					return err
				}
				fmt.Println("imported", in)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in, "file", "", "exported JSON file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func resetCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard all data and restore the seed document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("reset discards all recorded activities; pass --force to confirm")
			}
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				doc, err := s.Reset(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("reset: %d faculties, %d activities\n", len(doc.Faculties), len(doc.Activities))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "confirm the reset")
	return cmd
}

func reportCmd() *cobra.Command {
	var filter dto.ReportFilter
	var period, state, format, out string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate an activity report to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter.Period = models.Period(period)
			filter.State = models.State(state)
			filter.Format = models.ReportFormat(strings.ToUpper(format))
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				institution := viper.GetString("institution")
				if institution == "" {
					institution = "Universidade Católica de Moçambique - Direcção Científica"
				}
				reports := service.NewReportService(s, nil, nil, nil, institution)
				rendered, err := reports.Render(ctx, filter)
				if err != nil {
					return err
				}
				if out == "" {
					out = rendered.Filename
				}
				if err := os.WriteFile(out, rendered.Body, 0o644); err != nil {
					return err
				}
				fmt.Println("report written to", out)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&filter.Year, "year", 0, "report year")
	cmd.Flags().StringVar(&filter.FacultyID, "faculty", "", "faculty filter")
	cmd.Flags().StringVar(&period, "period", "", "period filter (T1..T4, ANNUAL)")
	cmd.Flags().StringVar(&state, "state", "", "state filter")
	cmd.Flags().StringVar(&format, "format", "HTML", "HTML, CSV or PDF")
	cmd.Flags().StringVar(&out, "out", "", "output file (default derived from year)")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}
