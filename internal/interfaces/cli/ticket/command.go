package ticket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/orris-inc/movecomments/internal/application/ticket/dto"
	"github.com/orris-inc/movecomments/internal/application/ticket/usecases"
	"github.com/orris-inc/movecomments/internal/infrastructure/database"
	"github.com/orris-inc/movecomments/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/orris-inc/movecomments/internal/interfaces/http"
	"github.com/orris-inc/movecomments/internal/shared/constants"
	"github.com/orris-inc/movecomments/internal/shared/logger"
)

var (
	env            string
	configPath     string
	userID         uint
	onlyCandidates bool
)

// NewSearchCommand returns the search sub-command.
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Find target tickets",
		Long:  `Look up tickets by id, #id or subject fragment as the given user would see them, and print them as JSON.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUseCases(func(ucs *httpRouter.UseCases) error {
				return runSearch(cmd.Context(), cmd.OutOrStdout(), ucs.SearchTickets, usecases.SearchTicketsQuery{
					Term:           args[0],
					UserID:         userID,
					OnlyCandidates: onlyCandidates,
				})
			})
		},
	}

	addCommonFlags(cmd)
	cmd.Flags().BoolVar(&onlyCandidates, "only-candidates", false, "Restrict results to the user's candidate tickets")

	return cmd
}

// NewMoveCommand returns the move sub-command.
func NewMoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <comment-id> <target>",
		Short: "Move a comment to another ticket",
		Long:  `Move a comment, with its attachments, to the target ticket and print the outcome as JSON.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			commentID, err := parseCommentID(args[0])
			if err != nil {
				return err
			}

			return withUseCases(func(ucs *httpRouter.UseCases) error {
				return runMove(cmd.Context(), cmd.OutOrStdout(), ucs.RelocateComment, usecases.RelocateCommentCommand{
					CommentID:   commentID,
					NewTicketID: args[1],
					ActorID:     userID,
				})
			})
		},
	}

	addCommonFlags(cmd)
	// moves are checked against what this user may see
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().UintVarP(&userID, "user", "u", 0, "Acting user ID")
}

func withUseCases(fn func(ucs *httpRouter.UseCases) error) error {
	cfg, _, err := bootstrap.Init(env, configPath)
	if err != nil {
		return err
	}
	defer database.Close()

	container, err := httpRouter.NewContainer(database.Get(), cfg, logger.NewLogger())
	if err != nil {
		return err
	}
	defer container.Shutdown()

	return fn(container.UseCases())
}

func parseCommentID(raw string) (uint, error) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid comment ID: %q", raw)
	}
	return uint(v), nil
}

func runSearch(ctx context.Context, out io.Writer, uc usecases.SearchTicketsExecutor, query usecases.SearchTicketsQuery) error {
	result, err := uc.Execute(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to search tickets: %w", err)
	}
	return writeJSON(out, result)
}

func runMove(ctx context.Context, out io.Writer, uc usecases.RelocateCommentExecutor, cmd usecases.RelocateCommentCommand) error {
	if dto.IsBlankTarget(cmd.NewTicketID) {
		return writeJSON(out, dto.NewUnchangedResult())
	}

	result, err := uc.Execute(ctx, cmd)
	if err != nil {
		return fmt.Errorf("failed to move comment: %w", err)
	}
	return writeJSON(out, result)
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
