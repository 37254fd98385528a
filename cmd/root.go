// Package cmd defines the jarvis command line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jarvis",
	Short: "JARVIS - retrieval-augmented chat backend",
	Long: `JARVIS is a retrieval-augmented chat backend. It ingests documents into
a vector knowledge base and answers chat turns grounded on the most
similar chunks, degrading gracefully when providers are unavailable.

Running jarvis without a subcommand starts the HTTP server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
