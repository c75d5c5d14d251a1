package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/school-records/internal/seed"
)

// seedCmd saves the bootstrap records once
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Save the bootstrap school and its students",
	Long: `Save the bootstrap school (Codecool BP) with its two students and their
addresses, regardless of the configured profile. Running it twice fails on
the students' unique emails and leaves the database unchanged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	_, log, st, err := setup(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := seed.Run(ctx, st.Schools(), log); err != nil {
		log.Error().Err(err).Msg("seeding failed")
		return err
	}
	return nil
}
