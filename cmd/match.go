package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/logger"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/textsource"
)

var matchCmd = &cobra.Command{
	Use:   "match --job <file> <resume>",
	Short: "Score one résumé against a job description",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		match(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().String("job", "", "file with the job description")
	matchCmd.Flags().Bool("with-text", false, "include the extracted résumé text in the output")
	matchCmd.MarkFlagRequired("job")
}

func match(cmd *cobra.Command, path string) {
	ctx := context.Background()
	log, config := bootstrap()

	jobFile, _ := cmd.Flags().GetString("job")
	job, err := textsource.Load(jobFile)
	if err != nil {
		log.Fatal("loading job description", zap.String("path", jobFile), zap.Error(err))
	}

	svc, err := newServices(ctx, config, log)
	if err != nil {
		log.Fatal("preparing services", zap.Error(err))
	}

	profile, err := svc.loadProfile(ctx, path)
	if err != nil {
		log.Fatal("loading resume", zap.String("path", path), zap.Error(err))
	}

	result := svc.scorer.Match(ctx, profile, job)
	payload := svc.explainer.ForResult(result)

	log.Info("candidate matched",
		append(logger.MatchFields(profile.ID, string(result.Breakdown.Domain)),
			zap.Float64("score", result.Score),
			zap.Strings("missing_skills", result.MissingSkills),
		)...,
	)

	if withText, _ := cmd.Flags().GetBool("with-text"); !withText {
		result.Candidate = withoutText(result.Candidate)
	}

	out, err := result.ToMap()
	if err != nil {
		log.Fatal("rendering result", zap.Error(err))
	}
	out["explanation"] = payload

	if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
		log.Fatal("writing output", zap.Error(err))
	}
}
