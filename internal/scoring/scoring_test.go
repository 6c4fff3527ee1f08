package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/candidate"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/skills"
)

type stubSimilarity struct {
	score float64
	err   error
	calls int
}

func (s *stubSimilarity) Similarity(context.Context, string, string) (float64, error) {
	s.calls++
	return s.score, s.err
}

func newScorer(sim *stubSimilarity) *Scorer {
	if sim == nil {
		return NewScorer(skills.NewRegistry(), nil, zap.NewNop())
	}
	return NewScorer(skills.NewRegistry(), sim, zap.NewNop())
}

func TestMatch_PartialSkills(t *testing.T) {
	profile := &candidate.Profile{ID: "c1", Skills: []string{"python"}, ExperienceYears: 3}

	result := newScorer(nil).Match(context.Background(), profile, "Python Developer needed, python, sql")

	assert.Equal(t, skills.DomainIT, result.Breakdown.Domain)
	assert.Equal(t, 50.0, result.Breakdown.SkillScore)
	assert.Equal(t, []string{"sql"}, result.MissingSkills)
	assert.Equal(t, 100.0, result.Breakdown.ExperienceScore)
	assert.Equal(t, 100.0, result.Breakdown.EducationScore)
	assert.Equal(t, 0.0, result.Breakdown.SemanticScore)
	// 0.5*50 + 0.3*100 + 0.1*100 + 0.1*0
	assert.Equal(t, 65.0, result.Score)
	assert.Same(t, profile, result.Candidate)
	assert.Equal(t,
		"Domain: IT | Skill match: 1/2 (50.0%) | Experience score: 100.0% (3.0 yrs) | Education score: 100.0% | Semantic similarity: 0.0%",
		result.Reason,
	)
}

func TestMatch_NilRegistryUsesBuiltInBanks(t *testing.T) {
	profile := &candidate.Profile{ID: "c1", Skills: []string{"python"}, ExperienceYears: 3}

	var result *MatchResult
	require.NotPanics(t, func() {
		result = NewScorer(nil, nil, nil).Match(context.Background(), profile, "Python Developer needed, python, sql")
	})

	assert.Equal(t, skills.DomainIT, result.Breakdown.Domain)
	assert.Equal(t, 50.0, result.Breakdown.SkillScore)
	assert.Equal(t, []string{"sql"}, result.MissingSkills)
}

func TestMatch_ExperienceRequirementMet(t *testing.T) {
	profile := &candidate.Profile{Skills: []string{"python", "nlp", "rest"}, ExperienceYears: 3, Education: "Bachelor"}
	job := "Looking for a Python Developer with experience in FastAPI, REST APIs, and NLP.\n" +
		"Candidate should have 2+ years of experience and a background in Computer Science or related field."

	result := newScorer(&stubSimilarity{score: 80}).Match(context.Background(), profile, job)

	assert.Equal(t, 100.0, result.Breakdown.ExperienceScore)
	assert.Equal(t, 100.0, result.Breakdown.SkillScore)
	assert.Empty(t, result.MissingSkills)
	assert.Equal(t, 80.0, result.Breakdown.SemanticScore)
	assert.Equal(t, 98.0, result.Score)
}

func TestMatch_NoRequiredSkills(t *testing.T) {
	profile := &candidate.Profile{Skills: []string{"python"}}

	result := newScorer(nil).Match(context.Background(), profile, "Warehouse supervisor, forklift license")

	assert.Equal(t, skills.DomainGeneral, result.Breakdown.Domain)
	assert.Equal(t, 100.0, result.Breakdown.SkillScore)
	require.NotNil(t, result.MissingSkills)
	assert.Empty(t, result.MissingSkills)
}

func TestMatch_FallsBackToGeneralBank(t *testing.T) {
	// Classified HR via "talent", but only finance vocabulary is present.
	profile := &candidate.Profile{Skills: []string{"tally"}}

	result := newScorer(nil).Match(context.Background(), profile, "Talent team needs tally and gst knowledge")

	assert.Equal(t, skills.DomainHR, result.Breakdown.Domain)
	assert.Equal(t, []string{"gst"}, result.MissingSkills)
	assert.Equal(t, 50.0, result.Breakdown.SkillScore)
}

func TestMatch_SimilarityFailureIsZero(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	sim := &stubSimilarity{err: errors.New("quota exceeded")}
	scorer := NewScorer(skills.NewRegistry(), sim, zap.New(core))

	result := scorer.Match(context.Background(), &candidate.Profile{ID: "c9", RawText: "x"}, "python")

	assert.Equal(t, 0.0, result.Breakdown.SemanticScore)
	assert.Equal(t, 1, sim.calls)
	require.Len(t, observed.All(), 1)
	assert.Equal(t, "c9", observed.All()[0].ContextMap()["candidate_id"])
}

func TestMatch_SimilarityIsClamped(t *testing.T) {
	result := newScorer(&stubSimilarity{score: 250}).Match(context.Background(), &candidate.Profile{}, "")
	assert.Equal(t, 100.0, result.Breakdown.SemanticScore)

	result = newScorer(&stubSimilarity{score: -4}).Match(context.Background(), &candidate.Profile{}, "")
	assert.Equal(t, 0.0, result.Breakdown.SemanticScore)
}

func TestMatch_Invariants(t *testing.T) {
	jobs := []string{
		"",
		"HR executive: recruitment, payroll, excel, 5+ years, master's preferred",
		"Senior backend engineer: java, docker, kubernetes, aws, 10 years, B.Tech",
		"Accountant with gst, tally, reconciliation, 3 years",
	}
	profiles := []*candidate.Profile{
		{},
		{Skills: []string{"excel", "payroll"}, ExperienceYears: 2.5, Education: "Master"},
		{Skills: []string{"java", "docker", "aws", "kubernetes"}, ExperienceYears: 12, Education: "Bachelor"},
		nil,
	}

	scorer := newScorer(&stubSimilarity{score: 55.555})
	for _, job := range jobs {
		for _, p := range profiles {
			result := scorer.Match(context.Background(), p, job)
			assert.GreaterOrEqual(t, result.Score, 0.0)
			assert.LessOrEqual(t, result.Score, 100.0)
			for _, missing := range result.MissingSkills {
				assert.False(t, result.Candidate.HasSkill(missing), "missing %q is owned", missing)
			}
		}
	}
}

func TestExperienceScore(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100.0, ExperienceScore(3, "Python Developer... 2+ years"))
	assert.Equal(t, 100.0, ExperienceScore(0, "no stated requirement"))
	assert.Equal(t, 50.0, ExperienceScore(2.5, "at least 5 years"))
	assert.Equal(t, 33.33, ExperienceScore(1, "3 year minimum"))
	assert.Equal(t, 0.0, ExperienceScore(0, "4 years"))
	// First mention is the requirement.
	assert.Equal(t, 100.0, ExperienceScore(2, "2 years python, 8 years total"))
}

func TestEducationScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		edu, job string
		want     float64
	}{
		{"Master", "Master's degree required", 100},
		{"Bachelor", "M.Tech preferred", 50},
		{"", "MSc in statistics", 50},
		{"Bachelor", "Bachelor in CS", 100},
		{"Master", "B.Tech graduates", 70},
		{"PhD", "bachelor degree", 70},
		{"", "no degree mentioned", 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EducationScore(tt.edu, tt.job), "%s / %s", tt.edu, tt.job)
	}
}

func TestMatchResultToMap(t *testing.T) {
	result := newScorer(nil).Match(context.Background(), &candidate.Profile{ID: "c1", Skills: []string{"python"}}, "python, sql")

	m, err := result.ToMap()
	require.NoError(t, err)

	for _, key := range []string{"score", "breakdown", "reason", "missing_skills", "candidate"} {
		assert.Contains(t, m, key)
	}
	assert.Len(t, m, 5)
	assert.Equal(t, result.Score, m["score"])
	assert.Equal(t, []string{"sql"}, m["missing_skills"])

	breakdown, ok := m["breakdown"].(map[string]any)
	require.True(t, ok, "breakdown should be a mapping, got %T", m["breakdown"])
	assert.Equal(t, 50.0, breakdown["skill_score"])
}
