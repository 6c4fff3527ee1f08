package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/candidate"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/screening"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/scoring"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/textsource"
)

const (
	PromptExit         = "Exit"
	PromptBack         = "back"
	PromptShowRanking  = "Show ranking"
	PromptShowStatuses = "Show filters"
	PromptBrowse       = "Browse candidates"
)

var errExit = errors.New("exit requested")

type rankedCandidate struct {
	Rank           int      `json:"rank"`
	CandidateID    string   `json:"candidate_id"`
	Name           string   `json:"name"`
	Score          float64  `json:"score"`
	Recommendation string   `json:"recommendation"`
	MissingSkills  []string `json:"missing_skills"`
}

var rankCmd = &cobra.Command{
	Use:   "rank --job <file> <resume>...",
	Short: "Rank several résumés against one job description",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rank(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().String("job", "", "file with the job description")
	rankCmd.Flags().Float64("minimum-score", 0, "drop candidates scoring below this value")
	rankCmd.Flags().Int("top", 0, "keep only the N best candidates")
	rankCmd.Flags().Int("concurrency", 0, "number of résumés scored in parallel")
	rankCmd.Flags().BoolP("interactive", "i", false, "browse the ranking interactively")
	rankCmd.MarkFlagRequired("job")

	viper.BindPFlag("screening.minimum-score", rankCmd.Flags().Lookup("minimum-score"))
	viper.BindPFlag("screening.top", rankCmd.Flags().Lookup("top"))
	viper.BindPFlag("screening.concurrency", rankCmd.Flags().Lookup("concurrency"))
}

func rank(cmd *cobra.Command, paths []string) {
	ctx := context.Background()
	logger, config := bootstrap()

	jobFile, _ := cmd.Flags().GetString("job")
	job, err := textsource.Load(jobFile)
	if err != nil {
		logger.Fatal("loading job description", zap.String("path", jobFile), zap.Error(err))
	}

	svc, err := newServices(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing services", zap.Error(err))
	}

	profiles := make([]*candidate.Profile, 0, len(paths))
	for _, path := range paths {
		profile, err := svc.loadProfile(ctx, path)
		if err != nil {
			logger.Warn("skipping resume", zap.String("path", path), zap.Error(err))
			continue
		}
		profiles = append(profiles, profile)
	}

	if len(profiles) == 0 {
		logger.Info("exiting", zap.String("reason", "no readable resumes"))
		return
	}

	ranking, err := screening.Score(ctx, svc.scorer, profiles, job, config.Screening.Concurrency)
	if err != nil {
		logger.Fatal("scoring candidates", zap.Error(err))
	}

	steps := []screening.Filter{
		screening.NewMinimumScore(config.Screening.MinimumScore),
		screening.NewTop(config.Screening.Top),
	}

	ranking, err = screening.Run(ctx, logger, steps, ranking)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	for _, status := range screening.Describe(steps) {
		logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	if ranking.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left after filters"))
		return
	}

	rows := svc.rows(ranking)

	if interactive, _ := cmd.Flags().GetBool("interactive"); !interactive {
		if err := writeJSON(cmd.OutOrStdout(), rows); err != nil {
			logger.Fatal("writing output", zap.Error(err))
		}
		return
	}

	if err := browse(cmd, svc, logger, ranking, rows, steps); err != nil && !errors.Is(err, errExit) {
		logger.Fatal("exiting", zap.Error(err))
	}
}

func (s *services) rows(r *screening.Ranking) []rankedCandidate {
	rows := make([]rankedCandidate, 0, r.Len())
	for i, item := range r.Items {
		row := rankedCandidate{
			Rank:           i + 1,
			Score:          item.Score,
			Recommendation: s.explainer.ForResult(item).Recommendation,
			MissingSkills:  item.MissingSkills,
		}
		if item.Candidate != nil {
			row.CandidateID = item.Candidate.ID
			row.Name = item.Candidate.Name
		}
		rows = append(rows, row)
	}
	return rows
}

func browse(cmd *cobra.Command, svc *services, logger *zap.Logger, ranking *screening.Ranking, rows []rankedCandidate, steps []screening.Filter) error {
	prompt := promptui.Select{
		Label: "What next?",
		Items: []string{PromptBrowse, PromptShowRanking, PromptShowStatuses, PromptExit},
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			return err
		}

		switch action {
		case PromptBrowse:
			if err := browseCandidates(cmd, svc, ranking, rows); err != nil {
				return err
			}
		case PromptShowRanking:
			if err := writeJSON(cmd.OutOrStdout(), rows); err != nil {
				return err
			}
		case PromptShowStatuses:
			if err := writeJSON(cmd.OutOrStdout(), screening.Describe(steps)); err != nil {
				return err
			}
		case PromptExit:
			logger.Info("exiting", zap.String("reason", "got exit from prompt"))
			return errExit
		default:
			return fmt.Errorf("invalid action: %s", action)
		}
	}
}

func browseCandidates(cmd *cobra.Command, svc *services, ranking *screening.Ranking, rows []rankedCandidate) error {
	items := make([]string, 0, len(rows)+1)
	for _, row := range rows {
		items = append(items, fmt.Sprintf("%d. %s / %s / %.2f", row.Rank, row.CandidateID, row.Name, row.Score))
	}

	candidatePrompt := promptui.Select{
		Label: "Choose a candidate and press ENTER",
		Items: append(items, PromptBack),
		Size:  10,
	}

	for {
		idx, selected, err := candidatePrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack || idx >= ranking.Len() {
			return nil
		}

		if err := writeJSON(cmd.OutOrStdout(), details(svc, ranking.Items[idx])); err != nil {
			return err
		}
	}
}

func details(svc *services, r *scoring.MatchResult) map[string]any {
	payload := svc.explainer.ForResult(r)
	out := map[string]any{
		"score":          r.Score,
		"breakdown":      r.Breakdown,
		"reason":         r.Reason,
		"missing_skills": r.MissingSkills,
		"explanation":    payload,
	}
	if c := withoutText(r.Candidate); c != nil {
		out["candidate"] = c
		out["skills"] = strings.Join(c.Skills, ", ")
	}
	return out
}
