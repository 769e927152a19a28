package cli

import (
	"github.com/spf13/cobra"

	"github.com/adanyl0v/launchpad/internal/app"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "launchpad",
	Short: "Employee onboarding service",
	Long:  "launchpad serves the onboarding dashboard and API where new hires\ncomplete their tasks and managers assign them.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		app.InitDefaultLogger()
		app.MustReadEnv(envFile)
		app.MustInitApplicationLogger()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Read configuration from this file instead of the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(profileCmd)
}
