package permission

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/orris-inc/movecomments/internal/infrastructure/database"
	infraPermission "github.com/orris-inc/movecomments/internal/infrastructure/permission"
	"github.com/orris-inc/movecomments/internal/interfaces/cli/bootstrap"
	"github.com/orris-inc/movecomments/internal/shared/constants"
)

var (
	env        string
	configPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permission",
		Short: "Manage project visibility grants",
		Long:  `Grant or revoke the project visibility that scopes ticket searches.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "grant-view <user-id> <project-id>",
			Short: "Let a user see a project",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withProjectIDs(args, func(v *infraPermission.ProjectVisibility, userID, projectID uint) error {
					return v.GrantView(userID, projectID)
				})
			},
		},
		&cobra.Command{
			Use:   "revoke-view <user-id> <project-id>",
			Short: "Remove a user's grant on a project",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withProjectIDs(args, func(v *infraPermission.ProjectVisibility, userID, projectID uint) error {
					return v.RevokeView(userID, projectID)
				})
			},
		},
		&cobra.Command{
			Use:   "grant-admin <user-id>",
			Short: "Let a user see every project",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				userID, err := parseID("user", args[0])
				if err != nil {
					return err
				}
				return withVisibility(func(v *infraPermission.ProjectVisibility) error {
					return v.GrantAdmin(userID)
				})
			},
		},
	)

	return cmd
}

func withProjectIDs(args []string, fn func(v *infraPermission.ProjectVisibility, userID, projectID uint) error) error {
	userID, err := parseID("user", args[0])
	if err != nil {
		return err
	}
	projectID, err := parseID("project", args[1])
	if err != nil {
		return err
	}
	return withVisibility(func(v *infraPermission.ProjectVisibility) error {
		return fn(v, userID, projectID)
	})
}

func withVisibility(fn func(v *infraPermission.ProjectVisibility) error) error {
	cfg, log, err := bootstrap.Init(env, configPath)
	if err != nil {
		return err
	}
	defer database.Close()

	enforcer, err := infraPermission.NewEnforcer(database.Get(), cfg.Permission.ModelPath, log)
	if err != nil {
		return err
	}

	if err := fn(infraPermission.NewProjectVisibility(enforcer)); err != nil {
		log.Errorw("failed to update permissions", "error", err)
		return err
	}

	log.Infow("permissions updated")
	return nil
}

func parseID(entity, raw string) (uint, error) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid %s ID: %q", entity, raw)
	}
	return uint(v), nil
}
