// Package planner holds the planned-payment and appointment commands.
package planner

import (
	"fmt"

	"fintrack/cmd/common"
	"fintrack/cmd/root"
	"fintrack/internal/dateutils"
	"fintrack/internal/models"

	"github.com/spf13/cobra"
)

// NewCommand builds the planner command and its subcommands.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planner",
		Short: "Plan payments and appointments",
	}
	cmd.AddCommand(newAddPaymentCommand(), newAddAppointmentCommand(), newUpcomingCommand(), newListCommand())
	return cmd
}

func newAddPaymentCommand() *cobra.Command {
	var amount, date, recipient, method string

	cmd := &cobra.Command{
		Use:   "add-payment",
		Short: "Plan a payment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			p, err := c.GetPlanner().AddPlannedPayment(amount, date, recipient, method)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Planned %s to %s on %s\n",
				models.FormatAmount(p.Amount), p.Recipient, dateutils.ToISODate(p.Date))
			return nil
		},
	}
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount")
	cmd.Flags().StringVar(&date, "date", "", "Date, YYYY-MM-DD")
	cmd.Flags().StringVarP(&recipient, "recipient", "r", "", "Recipient")
	cmd.Flags().StringVarP(&method, "method", "m", "", "Payment method")
	return cmd
}

func newAddAppointmentCommand() *cobra.Command {
	var title, date, clock string

	cmd := &cobra.Command{
		Use:   "add-appointment",
		Short: "Add an appointment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			a, err := c.GetPlanner().AddAppointment(title, date, clock)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s on %s at %s\n", a.Title, dateutils.ToISODate(a.Date), a.Time)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().StringVar(&date, "date", "", "Date, YYYY-MM-DD")
	cmd.Flags().StringVar(&clock, "time", "", "Time, HH:MM")
	return cmd
}

func newUpcomingCommand() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "Show payments and appointments due within the next days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("days") {
				days = c.GetConfig().Planner.WindowDays
			}
			payments, err := c.GetPlanner().UpcomingPayments(days)
			if err != nil {
				return err
			}
			appointments, err := c.GetPlanner().UpcomingAppointments(days)
			if err != nil {
				return err
			}
			printPayments(cmd, payments)
			printAppointments(cmd, appointments)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "Look-ahead in days (default from config)")
	return cmd
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every planned payment and appointment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			printPayments(cmd, c.GetPlanner().PlannedPayments())
			printAppointments(cmd, c.GetPlanner().Appointments())
			return nil
		},
	}
}

func printPayments(cmd *cobra.Command, payments []models.PlannedPayment) {
	out := cmd.OutOrStdout()
	if len(payments) == 0 {
		fmt.Fprintln(out, "No planned payments.")
		return
	}
	tw := common.NewTable(out)
	fmt.Fprintln(tw, "DATE\tAMOUNT\tRECIPIENT\tMETHOD")
	for _, p := range payments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", dateutils.ToISODate(p.Date), models.FormatAmount(p.Amount), p.Recipient, p.PaymentMethod)
	}
	_ = tw.Flush()
}

func printAppointments(cmd *cobra.Command, appointments []models.Appointment) {
	out := cmd.OutOrStdout()
	if len(appointments) == 0 {
		fmt.Fprintln(out, "No appointments.")
		return
	}
	tw := common.NewTable(out)
	fmt.Fprintln(tw, "DATE\tTIME\tTITLE")
	for _, a := range appointments {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", dateutils.ToISODate(a.Date), a.Time, a.Title)
	}
	_ = tw.Flush()
}
