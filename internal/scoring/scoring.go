// Package scoring combines skill, experience, education and semantic
// sub-scores into a single résumé-to-job fit score.
package scoring

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/ai"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/candidate"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/logger"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/skills"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/utils"
)

// Weights of each sub-score in the final score. They sum to 1.
const (
	WeightSkill      = 0.50
	WeightExperience = 0.30
	WeightEducation  = 0.10
	WeightSemantic   = 0.10
)

// Breakdown holds the sub-scores of one match, each in [0, 100].
type Breakdown struct {
	SkillScore      float64       `json:"skill_score" mapstructure:"skill_score"`
	ExperienceScore float64       `json:"experience_score" mapstructure:"experience_score"`
	EducationScore  float64       `json:"education_score" mapstructure:"education_score"`
	SemanticScore   float64       `json:"semantic_score" mapstructure:"semantic_score"`
	Domain          skills.Domain `json:"domain" mapstructure:"domain"`
}

// MatchResult is the outcome of scoring one candidate against one job.
type MatchResult struct {
	Score         float64            `json:"score" mapstructure:"score"`
	Breakdown     Breakdown          `json:"breakdown" mapstructure:"breakdown"`
	Reason        string             `json:"reason" mapstructure:"reason"`
	MissingSkills []string           `json:"missing_skills" mapstructure:"missing_skills"`
	Candidate     *candidate.Profile `json:"candidate" mapstructure:"candidate"`
}

// ToMap renders the result as a plain mapping keyed by the field tags.
func (r *MatchResult) ToMap() (map[string]any, error) {
	out := make(map[string]any)
	if err := mapstructure.Decode(r, &out); err != nil {
		return nil, fmt.Errorf("decode match result: %w", err)
	}
	return out, nil
}

// Scorer runs hybrid matches. It is safe for concurrent use when the
// similarity scorer is.
type Scorer struct {
	registry   *skills.Registry
	similarity ai.SimilarityScorer
	logger     *zap.Logger
}

// NewScorer creates a scorer. similarity may be nil, in which case the
// semantic sub-score is always 0. A nil registry is replaced with the
// built-in one.
func NewScorer(registry *skills.Registry, similarity ai.SimilarityScorer, log *zap.Logger) *Scorer {
	if registry == nil {
		registry = skills.NewRegistry()
	}

	return &Scorer{
		registry:   registry,
		similarity: similarity,
		logger:     logger.WithFields(log),
	}
}

// Match scores profile against jobText.
func (s *Scorer) Match(ctx context.Context, profile *candidate.Profile, jobText string) *MatchResult {
	if profile == nil {
		profile = &candidate.Profile{}
	}

	domain := skills.DetectDomain(jobText)
	required := s.registry.Bank(domain).Extract(jobText)
	if len(required) == 0 {
		required = s.registry.General().Extract(jobText)
	}

	matched, missing := splitSkills(required, profile.Skills)

	skillScore := 100.0
	if len(required) > 0 {
		skillScore = utils.Round2(100 * float64(len(matched)) / float64(len(required)))
	}

	breakdown := Breakdown{
		SkillScore:      skillScore,
		ExperienceScore: ExperienceScore(profile.ExperienceYears, jobText),
		EducationScore:  EducationScore(profile.Education, jobText),
		SemanticScore:   s.semantic(ctx, profile, jobText),
		Domain:          domain,
	}

	final := WeightSkill*breakdown.SkillScore +
		WeightExperience*breakdown.ExperienceScore +
		WeightEducation*breakdown.EducationScore +
		WeightSemantic*breakdown.SemanticScore

	result := &MatchResult{
		Score:         utils.Round2(utils.ClampPercent(final)),
		Breakdown:     breakdown,
		Reason:        reason(breakdown, len(matched), len(required), profile.ExperienceYears),
		MissingSkills: missing,
		Candidate:     profile,
	}

	s.logger.Debug("candidate scored",
		append(logger.MatchFields(profile.ID, string(domain)),
			zap.Float64("score", result.Score),
			zap.Int("required_skills", len(required)),
			zap.Int("matched_skills", len(matched)),
		)...,
	)

	return result
}

// splitSkills returns required∩have and required−have, both sorted.
func splitSkills(required, have []string) ([]string, []string) {
	owned := make(map[string]struct{}, len(have))
	for _, s := range have {
		owned[strings.ToLower(s)] = struct{}{}
	}

	matched := make([]string, 0, len(required))
	missing := make([]string, 0, len(required))
	for _, s := range required {
		if _, ok := owned[s]; ok {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}

	sort.Strings(matched)
	sort.Strings(missing)
	return matched, missing
}

var requiredYearsPattern = regexp.MustCompile(`(\d+)\s*\+?\s*years?`)

// ExperienceScore compares candidate years with the first "N(+) years"
// requirement in jobText. No requirement means full credit.
func ExperienceScore(candidateYears float64, jobText string) float64 {
	m := requiredYearsPattern.FindStringSubmatch(strings.ToLower(jobText))
	if m == nil {
		return 100
	}

	required, err := strconv.ParseFloat(m[1], 64)
	if err != nil || required <= 0 || candidateYears >= required {
		return 100
	}

	return utils.Round2(utils.ClampPercent(candidateYears / required * 100))
}

// EducationScore checks the candidate's education against a master's or
// bachelor's requirement in jobText.
//
// The single-letter fallbacks ("m", "b") are loose, but over the values the
// extractor produces ("", Bachelor, Master, PhD) they select the same levels
// as the full words.
func EducationScore(candidateEducation, jobText string) float64 {
	job := strings.ToLower(jobText)
	edu := strings.ToLower(candidateEducation)

	switch {
	case strings.Contains(job, "master") || strings.Contains(job, "m.tech") || strings.Contains(job, "msc"):
		if strings.Contains(edu, "master") || strings.Contains(edu, "m") {
			return 100
		}
		return 50
	case strings.Contains(job, "bachelor") || strings.Contains(job, "b.tech"):
		if strings.Contains(edu, "bachelor") || strings.Contains(edu, "b") {
			return 100
		}
		return 70
	default:
		return 100
	}
}

func (s *Scorer) semantic(ctx context.Context, profile *candidate.Profile, jobText string) float64 {
	if s.similarity == nil {
		return 0
	}

	score, err := s.similarity.Similarity(ctx, profile.RawText, jobText)
	if err != nil {
		s.logger.Warn("semantic similarity unavailable, scoring it as 0",
			append(logger.MatchFields(profile.ID, ""), zap.Error(err))...,
		)
		return 0
	}

	return utils.Round2(utils.ClampPercent(score))
}

func reason(b Breakdown, matched, required int, years float64) string {
	parts := []string{
		fmt.Sprintf("Domain: %s", b.Domain),
		fmt.Sprintf("Skill match: %d/%d (%s%%)", matched, required, utils.FormatNumber(b.SkillScore)),
		fmt.Sprintf("Experience score: %s%% (%s yrs)", utils.FormatNumber(b.ExperienceScore), utils.FormatNumber(years)),
		fmt.Sprintf("Education score: %s%%", utils.FormatNumber(b.EducationScore)),
		fmt.Sprintf("Semantic similarity: %s%%", utils.FormatNumber(b.SemanticScore)),
	}
	return strings.Join(parts, " | ")
}
