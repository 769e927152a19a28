package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/launchpad/internal/app"
	"github.com/adanyl0v/launchpad/internal/services"
)

var (
	profileRole       string
	profileManager    string
	profileDepartment string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage profiles",
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update <profile-id>",
	Short: "Set the role, manager or department of a profile",
	Long: "update changes only the flags that are given. Pass --manager \"\" to\n" +
		"remove the manager. This is how the first HR account is created.",
	Args: cobra.ExactArgs(1),
	RunE: runProfileUpdate,
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileRole, "role", "", "Role: employee, individual contributor, manager, hr")
	profileUpdateCmd.Flags().StringVar(&profileManager, "manager", "", "Profile ID of the manager")
	profileUpdateCmd.Flags().StringVar(&profileDepartment, "department", "", "Department")
	profileCmd.AddCommand(profileUpdateCmd)
}

func profileUpdateParams(cmd *cobra.Command, id string) (services.UpdateProfileParams, error) {
	params := services.UpdateProfileParams{ID: id}
	flags := cmd.Flags()
	if flags.Changed("role") {
		params.Role = &profileRole
	}
	if flags.Changed("manager") {
		params.ManagerID = &profileManager
	}
	if flags.Changed("department") {
		params.Department = &profileDepartment
	}
	if params.Role == nil && params.ManagerID == nil && params.Department == nil {
		return params, fmt.Errorf("nothing to update: pass --role, --manager or --department")
	}
	return params, nil
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	params, err := profileUpdateParams(cmd, args[0])
	if err != nil {
		return err
	}

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()

	profile, err := app.NewServices().Profiles.UpdateProfile(cmd.Context(), params)
	if err != nil {
		return err
	}

	manager := "none"
	if profile.ManagerID != nil {
		manager = *profile.ManagerID
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: role=%s manager=%s\n", profile.Email, profile.Role, manager)
	return nil
}
