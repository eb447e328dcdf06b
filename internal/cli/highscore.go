package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"trivia-client/internal/config"
)

// NewHighScoreCmd prints, or with --reset clears, the stored high score.
func NewHighScoreCmd(configPath *string) *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "highscore",
		Short: "Show the stored high score",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOptional(*configPath)
			if err != nil {
				return err
			}
			rt, err := newRuntime(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			if reset {
				if err := rt.scores.Reset(cmd.Context()); err != nil {
					return err
				}
			}
			high, err := rt.scores.Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "High Score: %d\n", high)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "reset the high score to 0")
	return cmd
}
