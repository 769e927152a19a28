package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/launchpad/internal/app"
	"github.com/adanyl0v/launchpad/internal/seed"
)

var (
	seedFile   string
	seedAuthor string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load task templates and groups from a YAML file",
	Long:  "seed creates the task templates and task groups listed in a YAML file.\nWithout --file the built-in onboarding catalog is loaded.",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Seed file (defaults to the built-in catalog)")
	seedCmd.Flags().StringVar(&seedAuthor, "author", "", "Profile ID recorded as the creator")
	_ = seedCmd.MarkFlagRequired("author")
}

func runSeed(cmd *cobra.Command, args []string) error {
	data := seed.Example
	if seedFile != "" {
		var err error
		data, err = os.ReadFile(seedFile)
		if err != nil {
			return fmt.Errorf("failed to read seed file: %w", err)
		}
	}

	f, err := seed.ParseBytes(data)
	if err != nil {
		return err
	}

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()

	result, err := seed.NewLoader(app.Logger(), app.Postgres()).Load(cmd.Context(), f, seedAuthor)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d templates and %d groups.\n", result.Templates, result.Groups)
	return nil
}
