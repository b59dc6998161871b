package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sakif/qa-backend/internal/server"
	"github.com/sakif/qa-backend/internal/service"
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an entity and everything that depends on it",
	Long: `Run a cascade deletion outside the HTTP server. The whole cascade runs in
one transaction; on failure nothing is removed.

Examples:
  qa delete user alice
  qa delete question 10 --json`,
}

var deleteUserCmd = &cobra.Command{
	Use:   "user NAME",
	Short: "Delete a user with their questions, answers and comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd.Context(), func(ctx context.Context, app *server.App) (service.DeleteResult, error) {
			return app.Users.Delete(ctx, args[0])
		})
	},
}

var deleteQuestionCmd = &cobra.Command{
	Use:   "question ID",
	Short: "Delete a question with its answers and comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := service.ParseID("id", "question", args[0])
		if err != nil {
			return err
		}
		return runDelete(cmd.Context(), func(ctx context.Context, app *server.App) (service.DeleteResult, error) {
			return app.Questions.Delete(ctx, id)
		})
	},
}

var deleteAnswerCmd = &cobra.Command{
	Use:   "answer ID",
	Short: "Delete an answer with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := service.ParseID("id", "answer", args[0])
		if err != nil {
			return err
		}
		return runDelete(cmd.Context(), func(ctx context.Context, app *server.App) (service.DeleteResult, error) {
			return app.Answers.Delete(ctx, id)
		})
	},
}

var deleteCommentCmd = &cobra.Command{
	Use:   "comment ID",
	Short: "Delete a single comment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := service.ParseID("id", "comment", args[0])
		if err != nil {
			return err
		}
		return runDelete(cmd.Context(), func(ctx context.Context, app *server.App) (service.DeleteResult, error) {
			return app.Comments.Delete(ctx, id)
		})
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.AddCommand(deleteUserCmd, deleteQuestionCmd, deleteAnswerCmd, deleteCommentCmd)
}

func runDelete(ctx context.Context, del func(context.Context, *server.App) (service.DeleteResult, error)) error {
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	res, err := del(ctx, app)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Printf("%s %d: removed %d rows (run %s)\n", res.Plan, res.RootID, res.Removed, res.RunID)
	for _, step := range res.Steps {
		fmt.Printf("  %-45s %d\n", step.Step, step.Rows)
	}
	return nil
}
