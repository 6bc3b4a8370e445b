package commands

import (
	"fmt"

	"inkwell/internal/service"

	"github.com/spf13/cobra"
)

var createInput service.CreateUserInput

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := userServiceFactory()
		if err != nil {
			return err
		}
		u, err := svc.CreateUser(cmd.Context(), createInput)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created user %d <%s> staff=%t\n", u.ID, u.Email, u.IsStaff)
		return nil
	},
}

var revokeStaff bool

var setStaffCmd = &cobra.Command{
	Use:   "set-staff <user_id>",
	Short: "Grant or revoke staff status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}
		svc, err := userServiceFactory()
		if err != nil {
			return err
		}
		u, err := svc.SetStaff(cmd.Context(), id, !revokeStaff)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user %d <%s> staff=%t\n", u.ID, u.Email, u.IsStaff)
		return nil
	},
}

var deleteUserCmd = &cobra.Command{
	Use:   "delete-user <user_id>",
	Short: "Delete an account with its posts and comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}
		svc, err := userServiceFactory()
		if err != nil {
			return err
		}
		if err := svc.DeleteUser(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted user %d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createUserCmd, setStaffCmd, deleteUserCmd)

	createUserCmd.Flags().StringVar(&createInput.Email, "email", "", "Login email")
	createUserCmd.Flags().StringVar(&createInput.Username, "username", "", "Display name")
	createUserCmd.Flags().StringVar(&createInput.Password, "password", "", "Initial password")
	createUserCmd.Flags().StringVar(&createInput.Bio, "bio", "", "Profile bio")
	createUserCmd.Flags().BoolVar(&createInput.IsStaff, "staff", false, "Grant staff status")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")

	setStaffCmd.Flags().BoolVar(&revokeStaff, "revoke", false, "Revoke instead of grant")
}
