package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the gigcircle CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gigcircle",
		Short: "gigcircle - a community site for musicians",
		Long: `gigcircle serves registration, login and role-based profiles for
musicians, band members and event organizers, plus artist, band and
event listings. Configuration is read from the environment.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
