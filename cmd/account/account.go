// Package account holds the account profile commands.
package account

import (
	"fmt"
	"strings"

	"fintrack/cmd/root"

	"github.com/spf13/cobra"
)

// NewCommand builds the account command and its subcommands.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show or update the account profile",
	}
	cmd.AddCommand(newShowCommand(), newUpdateCommand())
	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the account profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			p := c.GetAccount().Get()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name: %s\n", p.Name)
			fmt.Fprintf(out, "Emails: %s\n", strings.Join(p.Emails, ", "))
			fmt.Fprintf(out, "Phone numbers: %s\n", strings.Join(p.PhoneNumbers, ", "))
			if p.ImagePath != "" {
				fmt.Fprintf(out, "Image: %s\n", p.ImagePath)
			}
			return nil
		},
	}
}

func newUpdateCommand() *cobra.Command {
	var name, image string
	var emails, phones []string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace the account profile fields that are given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			current := c.GetAccount().Get()
			if !cmd.Flags().Changed("name") {
				name = current.Name
			}
			if !cmd.Flags().Changed("email") {
				emails = current.Emails
			}
			if !cmd.Flags().Changed("phone") {
				phones = current.PhoneNumbers
			}
			if !cmd.Flags().Changed("image") {
				image = current.ImagePath
			}
			p, err := c.GetAccount().Update(name, emails, phones, image)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated account %s\n", p.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Holder name")
	cmd.Flags().StringSliceVar(&emails, "email", nil, "Email address (repeatable)")
	cmd.Flags().StringSliceVar(&phones, "phone", nil, "Phone number (repeatable)")
	cmd.Flags().StringVar(&image, "image", "", "Path to a profile image")
	return cmd
}
