package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/planner"
)

type readinessOutput struct {
	Title           string              `json:"title"`
	RequiredSkills  []string            `json:"required_skills"`
	CandidateSkills []string            `json:"candidate_skills"`
	Report          planner.Report      `json:"readiness"`
	Courses         map[string][]string `json:"recommended_courses"`
}

var readinessCmd = &cobra.Command{
	Use:   "readiness --title <job title> (--skills a,b | <resume>)",
	Short: "Show how ready a candidate is for a job title and which courses close the gap",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		readiness(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(readinessCmd)

	readinessCmd.Flags().StringP("title", "t", "", "job title, e.g. \"data scientist\"")
	readinessCmd.Flags().StringSlice("skills", nil, "comma separated candidate skills used instead of a résumé")
	readinessCmd.Flags().Int("courses", 0, "courses per missing skill (default from courses.top)")
	readinessCmd.MarkFlagRequired("title")
}

func readiness(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	logger, config := bootstrap()
	catalog := planner.NewCatalog()

	title, _ := cmd.Flags().GetString("title")
	skillsFlag, _ := cmd.Flags().GetStringSlice("skills")

	var candidateSkills []string
	switch {
	case len(args) == 1:
		svc, err := newServices(ctx, config, logger)
		if err != nil {
			logger.Fatal("preparing services", zap.Error(err))
		}
		profile, err := svc.loadProfile(ctx, args[0])
		if err != nil {
			logger.Fatal("loading resume", zap.String("path", args[0]), zap.Error(err))
		}
		candidateSkills = profile.Skills
	case len(skillsFlag) > 0:
		for _, s := range skillsFlag {
			if s = strings.TrimSpace(s); s != "" {
				candidateSkills = append(candidateSkills, s)
			}
		}
	default:
		logger.Fatal("either a resume or --skills is required")
	}

	required := catalog.RequiredSkills(title)
	if len(required) == 0 {
		logger.Warn("no required skills known for the title",
			zap.String("title", title),
			zap.Strings("known_titles", catalog.Titles()),
		)
	}

	report := planner.EvaluateReadiness(candidateSkills, required)

	top := config.Courses.Top
	if n, _ := cmd.Flags().GetInt("courses"); n > 0 {
		top = n
	}

	out := readinessOutput{
		Title:           title,
		RequiredSkills:  required,
		CandidateSkills: candidateSkills,
		Report:          report,
		Courses:         catalog.RecommendCourses(report.MissingSkills, top),
	}
	if out.CandidateSkills == nil {
		out.CandidateSkills = []string{}
	}

	logger.Info("readiness evaluated",
		zap.String("title", title),
		zap.Float64("readiness_pct", report.ReadinessPct),
		zap.Int("missing_skills", len(report.MissingSkills)),
	)

	if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
		logger.Fatal("writing output", zap.Error(err))
	}
}
