package cli

import (
	"github.com/spf13/cobra"

	"github.com/adanyl0v/launchpad/internal/app"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply the schema before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	app.MustConnectPostgres()
	defer app.DisconnectPostgres()

	if serveMigrate {
		err := app.MigratePostgres(cmd.Context())
		if err != nil {
			return err
		}
	}

	svc := app.NewServices()
	app.PruneExpiredSessions(cmd.Context(), svc.Sessions)
	app.MustListenAndServeHTTP(svc)
	return nil
}
