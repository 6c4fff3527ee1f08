package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var parseCmd = &cobra.Command{
	Use:   "parse <resume>",
	Short: "Extract a candidate profile from a résumé",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parse(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().Bool("with-text", false, "include the extracted résumé text in the output")
}

func parse(cmd *cobra.Command, path string) {
	ctx := context.Background()
	logger, config := bootstrap()

	svc, err := newServices(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing services", zap.Error(err))
	}

	profile, err := svc.loadProfile(ctx, path)
	if err != nil {
		logger.Fatal("loading resume", zap.String("path", path), zap.Error(err))
	}

	logger.Info("resume parsed",
		zap.String("candidate_id", profile.ID),
		zap.Int("skills", len(profile.Skills)),
		zap.Float64("experience_years", profile.ExperienceYears),
	)

	if withText, _ := cmd.Flags().GetBool("with-text"); !withText {
		profile = withoutText(profile)
	}

	if err := writeJSON(cmd.OutOrStdout(), profile); err != nil {
		logger.Fatal("writing output", zap.Error(err))
	}
}
