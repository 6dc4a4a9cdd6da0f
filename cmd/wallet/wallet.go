// Package wallet holds the card wallet commands.
package wallet

import (
	"fmt"

	"fintrack/cmd/common"
	"fintrack/cmd/root"

	"github.com/spf13/cobra"
)

// NewCommand builds the wallet command and its subcommands.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage stored payment cards",
	}
	cmd.AddCommand(newAddCommand(), newListCommand(), newLatestCommand())
	return cmd
}

func newAddCommand() *cobra.Command {
	var number, cardType, image string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Store a card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			card, err := c.GetWallet().AddCard(number, cardType, image)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s card ending in %s\n", card.Type, card.Masked())
			return nil
		},
	}
	cmd.Flags().StringVarP(&number, "number", "n", "", "Card number")
	cmd.Flags().StringVarP(&cardType, "type", "t", "", "Card type, e.g. Visa")
	cmd.Flags().StringVar(&image, "image", "", "Path to a card image")
	return cmd
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			cards := c.GetWallet().Cards()
			out := cmd.OutOrStdout()
			if len(cards) == 0 {
				fmt.Fprintln(out, "No cards.")
				return nil
			}
			tw := common.NewTable(out)
			fmt.Fprintln(tw, "TYPE\tNUMBER\tIMAGE")
			for _, card := range cards {
				fmt.Fprintf(tw, "%s\t**** %s\t%s\n", card.Type, card.Masked(), card.ImagePath)
			}
			return tw.Flush()
		},
	}
}

func newLatestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "Show the most recently added card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			card, ok := c.GetWallet().Latest()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No cards.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s **** %s\n", card.Type, card.Masked())
			return nil
		},
	}
}
