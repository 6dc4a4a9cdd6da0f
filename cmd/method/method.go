// Package method holds the payment-method registry commands.
package method

import (
	"fmt"

	"fintrack/cmd/common"
	"fintrack/cmd/root"

	"github.com/spf13/cobra"
)

// NewCommand builds the method command and its subcommands.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "method",
		Short: "Manage payment methods",
	}
	cmd.AddCommand(newListCommand(), newAddCommand(), newRemoveCommand(), newReassignCommand())
	return cmd
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List payment methods and how many transactions use each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			methods := c.GetPaymentMethods()
			tw := common.NewTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "METHOD\tTRANSACTIONS")
			for _, label := range methods.List() {
				fmt.Fprintf(tw, "%s\t%d\n", label, methods.Usage(label))
			}
			return tw.Flush()
		},
	}
}

func newAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <label>",
		Short: "Register a payment method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			ok, err := c.GetPaymentMethods().Add(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("payment method %q is empty or already exists", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added payment method %s\n", args[0])
			return nil
		},
	}
}

func newRemoveCommand() *cobra.Command {
	var reassignTo string

	cmd := &cobra.Command{
		Use:   "remove <label>",
		Short: "Remove a payment method, optionally reassigning its transactions first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			methods := c.GetPaymentMethods()
			label := args[0]

			if reassignTo != "" {
				ok, err := methods.Reassign(label, reassignTo)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("cannot reassign %q to %q: unknown payment method", label, reassignTo)
				}
			}

			ok, err := methods.Remove(label)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("payment method %q not found", label)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed payment method %s\n", label)
			return nil
		},
	}
	cmd.Flags().StringVar(&reassignTo, "reassign-to", "", "Move transactions using this method to another method first")
	return cmd
}

func newReassignCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reassign <old> <new>",
		Short: "Move every transaction from one payment method to another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			ok, err := c.GetPaymentMethods().Reassign(args[0], args[1])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("cannot reassign %q to %q: unknown payment method", args[0], args[1])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reassigned %s to %s\n", args[0], args[1])
			return nil
		},
	}
}
