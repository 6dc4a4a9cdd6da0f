// Package stats holds the analytics and report commands.
package stats

import (
	"errors"
	"fmt"
	"io"
	"time"

	"fintrack/cmd/common"
	"fintrack/cmd/root"
	"fintrack/internal/analytics"
	"fintrack/internal/fileutils"
	"fintrack/internal/ledgererror"
	"fintrack/internal/models"
	"fintrack/internal/report"

	"github.com/spf13/cobra"
)

// NewCommand builds the stats command and its subcommands.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Spending statistics and the reflection report",
	}
	cmd.AddCommand(
		newCategoriesCommand(),
		newSpendingCommand(),
		newCumulativeCommand(),
		newTrendCommand(),
		newRecipientsCommand(),
		newYearlyCommand(),
		newReportCommand(),
	)
	return cmd
}

// noData prints the empty-state placeholder for an EmptyDataError and
// passes every other error through.
func noData(w io.Writer, err error) error {
	var empty *ledgererror.EmptyDataError
	if errors.As(err, &empty) {
		fmt.Fprintln(w, "No data.")
		return nil
	}
	return err
}

func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Total amount per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			totals, err := c.NewAnalytics().CategoryTotals()
			if err != nil {
				return noData(cmd.OutOrStdout(), err)
			}
			tw := common.NewTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "CATEGORY\tAMOUNT")
			for _, t := range totals {
				fmt.Fprintf(tw, "%s\t%s\n", t.Category, models.FormatAmount(t.Amount))
			}
			return tw.Flush()
		},
	}
}

func printBuckets(w io.Writer, header string, buckets []analytics.Bucket) error {
	tw := common.NewTable(w)
	fmt.Fprintf(tw, "%s\tAMOUNT\n", header)
	for _, b := range buckets {
		fmt.Fprintf(tw, "%s\t%s\n", b.Key, models.FormatAmount(b.Amount))
	}
	return tw.Flush()
}

func newSpendingCommand() *cobra.Command {
	var granularity string

	cmd := &cobra.Command{
		Use:   "spending",
		Short: "Expense and invoice totals per month or day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := analytics.ParseGranularity(granularity)
			if err != nil {
				return err
			}
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			buckets, err := c.NewAnalytics().TimeBucketedSpending(g)
			if err != nil {
				return noData(cmd.OutOrStdout(), err)
			}
			header := "MONTH"
			if g == analytics.Day {
				header = "DAY"
			}
			return printBuckets(cmd.OutOrStdout(), header, buckets)
		},
	}
	cmd.Flags().StringVarP(&granularity, "granularity", "g", string(analytics.Month), "month or day")
	return cmd
}

func newCumulativeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cumulative",
		Short: "Running spending total per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			buckets, err := c.NewAnalytics().CumulativeSpending()
			if err != nil {
				return noData(cmd.OutOrStdout(), err)
			}
			return printBuckets(cmd.OutOrStdout(), "DAY", buckets)
		},
	}
}

func newTrendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Linear trend of spending over time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			trend, err := c.NewAnalytics().SpendingTrend()
			if err != nil {
				return noData(cmd.OutOrStdout(), err)
			}
			// slope is per second of unix time; per day reads better
			fmt.Fprintf(cmd.OutOrStdout(), "Slope: %.4f per day\nIntercept: %.4f\n",
				trend.Slope*(24*time.Hour).Seconds(), trend.Intercept)
			return nil
		},
	}
}

func newRecipientsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recipients",
		Short: "Share of all amounts per recipient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			shares := c.NewAnalytics().RecipientPercentages()
			if len(shares) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No data.")
				return nil
			}
			tw := common.NewTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "RECIPIENT\tSHARE")
			for _, s := range shares {
				fmt.Fprintf(tw, "%s\t%.2f%%\n", s.Recipient, s.Percent)
			}
			return tw.Flush()
		},
	}
}

func newYearlyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "yearly <year>",
		Short: "Sum of all amounts dated in the given year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			total := c.NewAnalytics().YearlySpending(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Total for %s: %s\n", args[0], models.FormatAmount(total))
			return nil
		},
	}
}

func newReportCommand() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Reflection report of total spent and received",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			gen := c.GetReportGenerator()
			data, err := gen.Render(gen.Reflection(c.GetLedger().Summary()), format)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := fileutils.WriteFileAtomic(output, data, 0o600); err != nil {
				return fmt.Errorf("error writing report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", report.FormatText, "text, json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}
