package main

import (
	"fmt"
	"os"

	"fintrack/cmd/account"
	"fintrack/cmd/method"
	"fintrack/cmd/planner"
	"fintrack/cmd/root"
	"fintrack/cmd/stats"
	"fintrack/cmd/transaction"
	"fintrack/cmd/wallet"

	"github.com/spf13/cobra"
)

func newApp() *cobra.Command {
	cmd := root.NewCommand()
	cmd.AddCommand(transaction.NewCommand())
	cmd.AddCommand(method.NewCommand())
	cmd.AddCommand(planner.NewCommand())
	cmd.AddCommand(wallet.NewCommand())
	cmd.AddCommand(account.NewCommand())
	cmd.AddCommand(stats.NewCommand())
	return cmd
}

func main() {
	if err := newApp().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
