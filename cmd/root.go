package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bizdir/bizdirapi/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "bizdirapi",
	Short: "Business directory API server",
	Long:  "bizdirapi serves a role-gated business directory: listings, products, reviews, complaints, quotes and job postings.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
