// Package explain turns a score breakdown into a short sentence and a
// hiring recommendation.
package explain

import (
	"fmt"
	"strings"

	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/candidate"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/scoring"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/utils"
)

const (
	DefaultHighThreshold   = 80.0
	DefaultMediumThreshold = 60.0

	maxListedSkills = 3
)

// Thresholds split scores into the interview, training and reject tiers.
type Thresholds struct {
	High   float64 `mapstructure:"high-threshold"`
	Medium float64 `mapstructure:"medium-threshold"`
}

// DefaultThresholds returns the stock 80/60 split.
func DefaultThresholds() Thresholds {
	return Thresholds{High: DefaultHighThreshold, Medium: DefaultMediumThreshold}
}

// Breakdown is a possibly partial set of sub-scores. Nil fields are left
// out of the explanation.
type Breakdown struct {
	SkillScore      *float64
	ExperienceScore *float64
	EducationScore  *float64
	SemanticScore   *float64
	FinalScore      *float64
	Domain          string
}

// FromScoring converts a complete scoring breakdown.
func FromScoring(b scoring.Breakdown) Breakdown {
	return Breakdown{
		SkillScore:      ptr(b.SkillScore),
		ExperienceScore: ptr(b.ExperienceScore),
		EducationScore:  ptr(b.EducationScore),
		SemanticScore:   ptr(b.SemanticScore),
		Domain:          string(b.Domain),
	}
}

func ptr(v float64) *float64 { return &v }

// Payload is what a reviewer reads next to the score.
type Payload struct {
	ExplanationText string `json:"explanation_text" mapstructure:"explanation_text"`
	Recommendation  string `json:"recommendation" mapstructure:"recommendation"`
}

// Generator renders explanations with a fixed set of thresholds.
type Generator struct {
	thresholds Thresholds
}

// NewGenerator returns a generator. Non-positive thresholds fall back to the defaults.
func NewGenerator(t Thresholds) *Generator {
	if t.High <= 0 {
		t.High = DefaultHighThreshold
	}
	if t.Medium <= 0 {
		t.Medium = DefaultMediumThreshold
	}
	return &Generator{thresholds: t}
}

// Payload builds the explanation for score. The breakdown is copied and its
// final score set to score.
func (g *Generator) Payload(score float64, b Breakdown, c *candidate.Profile, missing []string) Payload {
	b.FinalScore = &score
	return Payload{
		ExplanationText: Explanation(b, c),
		Recommendation:  g.Recommendation(b, missing),
	}
}

// ForResult is Payload for a scoring result.
func (g *Generator) ForResult(r *scoring.MatchResult) Payload {
	return g.Payload(r.Score, FromScoring(r.Breakdown), r.Candidate, r.MissingSkills)
}

// Explanation joins the present sub-scores, e.g.
// "50.0% skill match. 100.0% experience match (3.0 yrs). domain: IT."
func Explanation(b Breakdown, c *candidate.Profile) string {
	parts := make([]string, 0, 5)
	if b.SkillScore != nil {
		parts = append(parts, fmt.Sprintf("%s%% skill match", utils.FormatNumber(*b.SkillScore)))
	}
	if b.ExperienceScore != nil {
		if c != nil {
			parts = append(parts, fmt.Sprintf("%s%% experience match (%s yrs)",
				utils.FormatNumber(*b.ExperienceScore), utils.FormatNumber(c.ExperienceYears)))
		} else {
			parts = append(parts, fmt.Sprintf("%s%% experience match", utils.FormatNumber(*b.ExperienceScore)))
		}
	}
	if b.EducationScore != nil {
		parts = append(parts, fmt.Sprintf("%s%% education match", utils.FormatNumber(*b.EducationScore)))
	}
	if b.SemanticScore != nil {
		parts = append(parts, fmt.Sprintf("semantic similarity %s%%", utils.FormatNumber(*b.SemanticScore)))
	}
	if b.Domain != "" {
		parts = append(parts, "domain: "+b.Domain)
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ". ") + "."
}

type tier int

const (
	tierLow tier = iota
	tierMedium
	tierHigh
)

// Recommendation picks the tier from the final score, or from the skill
// score when no final score is set.
func (g *Generator) Recommendation(b Breakdown, missing []string) string {
	var score float64
	switch {
	case b.FinalScore != nil:
		score = *b.FinalScore
	case b.SkillScore != nil:
		score = *b.SkillScore
	}

	listed := missing
	if len(listed) > maxListedSkills {
		listed = listed[:maxListedSkills]
	}

	switch g.tier(score) {
	case tierHigh:
		return "Recommendation: Candidate ready to interview."
	case tierMedium:
		if len(listed) > 0 {
			return fmt.Sprintf("Recommendation: Consider after short training in %s.", strings.Join(listed, ", "))
		}
		return "Recommendation: Consider for interview; minor gaps."
	default:
		if len(listed) > 0 {
			return fmt.Sprintf("Recommendation: Not suitable now, missing %s.", strings.Join(listed, ", "))
		}
		return "Recommendation: Not suitable."
	}
}

func (g *Generator) tier(score float64) tier {
	switch {
	case score >= g.thresholds.High:
		return tierHigh
	case score >= g.thresholds.Medium:
		return tierMedium
	default:
		return tierLow
	}
}
