package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"trivia-client/internal/app"
	"trivia-client/internal/config"
	"trivia-client/internal/domain"
	"trivia-client/internal/presenter/terminal"
)

type playFlags struct {
	amount     int
	category   int
	difficulty string
}

// NewPlayCmd runs an interactive quiz on the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var flags playFlags
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOptional(*configPath)
			if err != nil {
				return err
			}
			defaults := domain.SetupRequest{
				Amount:     cfg.Quiz.Amount,
				Category:   cfg.Quiz.Category,
				Difficulty: domain.Difficulty(cfg.Quiz.Difficulty),
			}
			if cmd.Flags().Changed("amount") {
				defaults.Amount = flags.amount
			}
			if cmd.Flags().Changed("category") {
				defaults.Category = flags.category
			}
			if cmd.Flags().Changed("difficulty") {
				defaults.Difficulty = domain.Difficulty(flags.difficulty)
			}
			return runPlay(cmd.Context(), cfg, defaults, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().IntVar(&flags.amount, "amount", 10, "default number of questions")
	cmd.Flags().IntVar(&flags.category, "category", 0, "default category id (0 = any)")
	cmd.Flags().StringVar(&flags.difficulty, "difficulty", "", "default difficulty: easy, medium or hard")
	return cmd
}

func runPlay(ctx context.Context, cfg config.Config, defaults domain.SetupRequest, in io.Reader, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := newRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	logger := log.New(errOut, "", log.LstdFlags)
	view := terminal.New(out, defaults)
	ctrl := app.NewController(rt.categories, rt.client, rt.scores, view, rt.controllerOptions(logger))
	defer ctrl.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go readCommands(in, view, ctrl, defaults, cancel)

	return ctrl.Run(ctx)
}

// readCommands feeds typed lines to the controller until quit or end of input.
func readCommands(in io.Reader, view *terminal.Presenter, ctrl *app.Controller, defaults domain.SetupRequest, cancel context.CancelFunc) {
	defer cancel()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		ev, quit, err := terminal.ParseCommand(view.Mode(), scanner.Text(), defaults, view.NumChoices())
		if quit {
			return
		}
		if err != nil {
			if !errors.Is(err, terminal.ErrEmpty) {
				view.Alert(err)
			}
			continue
		}
		ctrl.Post(ev)
	}
}
