package cli

import (
	"github.com/spf13/cobra"

	"github.com/adanyl0v/launchpad/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database tables",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	app.MustConnectPostgres()
	defer app.DisconnectPostgres()

	return app.MigratePostgres(cmd.Context())
}
