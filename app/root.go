// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cms-admin",
	Short: "cms-admin is a web-based administrative interface for CMS content",
	Long: `cms-admin is a web-based administrative interface for CMS content
that provides a list/search/filter surface for static placeholders,
sites and users.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
