package token

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/orris-inc/movecomments/internal/infrastructure/auth"
	"github.com/orris-inc/movecomments/internal/infrastructure/config"
	"github.com/orris-inc/movecomments/internal/shared/constants"
)

var (
	env        string
	configPath string
	role       string
)

// NewCommand returns a command minting access tokens for operators and
// local testing.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue an access token",
		Long:  `Sign an access token for the given user with the configured JWT secret.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || userID == 0 {
				return fmt.Errorf("invalid user ID: %q", args[0])
			}

			cfg, err := config.Load(env, configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			signed, err := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes).Generate(uint(userID), role)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVar(&role, "role", "user", "Role claim carried by the token")

	return cmd
}
