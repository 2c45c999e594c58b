package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/movecomments/internal/interfaces/cli/migrate"
	"github.com/orris-inc/movecomments/internal/interfaces/cli/permission"
	"github.com/orris-inc/movecomments/internal/interfaces/cli/server"
	"github.com/orris-inc/movecomments/internal/interfaces/cli/ticket"
	"github.com/orris-inc/movecomments/internal/interfaces/cli/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "movecomments",
		Short:        "movecomments - relocate ticket comments",
		Long:         `movecomments moves comments, with their attachments, between tickets. It ships the HTTP server, migration tools and operator commands.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		ticket.NewSearchCommand(),
		ticket.NewMoveCommand(),
		permission.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
