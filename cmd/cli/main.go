package main

import (
	"fmt"
	"io"
	"os"

	"cogdash/domain/survey"
	"cogdash/internal/analysis"
	"cogdash/internal/config"
	"cogdash/internal/container"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cogdash",
		Short:         "Gender and cognitive difficulty dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newSummaryCmd(),
		newCheckCmd(),
	)
	return rootCmd
}

func loadContainer() (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return container.New(cfg), nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer()
			if err != nil {
				return err
			}
			gin.SetMode(c.Config.Server.GinMode)
			return c.Serve()
		},
	}
}

func newSummaryCmd() *cobra.Command {
	var filterValue string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard numbers as tables",
		Long: `Load the data file once and print the metrics panel, the concentration
percentages and the memory recall counts. With --filter the matching records are
listed as well.

Example: cogdash summary --filter women`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := survey.ParseFilter(filterValue)
			if err != nil {
				return err
			}
			c, err := loadContainer()
			if err != nil {
				return err
			}
			table, err := c.Loader.Load(cmd.Context())
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), analysis.Summarize(table, filter))
		},
	}

	cmd.Flags().StringVar(&filterValue, "filter", "", "Restrict the listing to women or men")
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the data file and report whether it can be rendered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer()
			if err != nil {
				return err
			}
			n, err := c.Check(cmd.Context())
			if err != nil {
				return err
			}
			green := color.New(color.FgGreen)
			green.Fprintf(cmd.OutOrStdout(), "ok: %s has %d records\n", c.Config.Data.File, n)
			return nil
		},
	}
}

func printSummary(w io.Writer, s analysis.Summary) error {
	heading := color.New(color.Bold, color.FgCyan)

	heading.Fprintln(w, "Metrics")
	metrics := tablewriter.NewWriter(w)
	metrics.Header("Total", "Women", "Men")
	if err := metrics.Append([]string{fmt.Sprint(s.Metrics.Total), s.Metrics.WomenDisplay(), s.Metrics.MenDisplay()}); err != nil {
		return err
	}
	if err := metrics.Render(); err != nil {
		return err
	}

	heading.Fprintln(w, "\nConcentration difficulty percentage")
	conc := tablewriter.NewWriter(w)
	header := []any{"Gender"}
	for _, c := range s.Concentration.Categories {
		header = append(header, string(c))
	}
	conc.Header(header...)
	for _, row := range s.Concentration.Rows {
		cells := []string{string(row.Gender)}
		for _, p := range row.Percent {
			cells = append(cells, analysis.FormatPercent(p))
		}
		if err := conc.Append(cells); err != nil {
			return err
		}
	}
	if err := conc.Render(); err != nil {
		return err
	}

	heading.Fprintln(w, "\nMemory recall difficulty")
	recall := tablewriter.NewWriter(w)
	recall.Header("Gender", "Category", "Count", "Share")
	for _, series := range s.Recall {
		for _, cc := range series.Counts {
			row := []string{string(series.Gender), string(cc.Category), fmt.Sprint(cc.Count), analysis.FormatPercent(series.Share(cc.Category))}
			if err := recall.Append(row); err != nil {
				return err
			}
		}
	}
	if err := recall.Render(); err != nil {
		return err
	}

	if !s.Table.Visible {
		return nil
	}
	heading.Fprintf(w, "\n%s\n", s.Table.Heading)
	listing := tablewriter.NewWriter(w)
	listing.Header("#", "Gender", "Memory", "Concentration")
	for i, r := range s.Table.Records {
		if err := listing.Append([]string{fmt.Sprint(i + 1), string(r.Gender), string(r.Memory), string(r.Concentration)}); err != nil {
			return err
		}
	}
	return listing.Render()
}
