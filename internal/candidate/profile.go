// Package candidate builds structured candidate profiles from plain résumé text.
package candidate

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/ai"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/extract"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/logger"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/skills"
)

// Profile is the structured view of one résumé. It is not modified after Parse returns.
type Profile struct {
	ID              string   `json:"candidate_id" mapstructure:"candidate_id"`
	Name            string   `json:"name" mapstructure:"name"`
	Email           string   `json:"email" mapstructure:"email"`
	Phone           string   `json:"phone" mapstructure:"phone"`
	Skills          []string `json:"skills" mapstructure:"skills"`
	ExperienceYears float64  `json:"experience_years" mapstructure:"experience_years"`
	Education       string   `json:"education" mapstructure:"education"`
	RawText         string   `json:"raw_text" mapstructure:"raw_text"`
}

// HasSkill reports whether the lowercase skill is in the profile.
func (p *Profile) HasSkill(skill string) bool {
	if p == nil {
		return false
	}
	skill = strings.ToLower(strings.TrimSpace(skill))
	for _, s := range p.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// Parser turns résumé text into profiles.
type Parser struct {
	bank   *skills.Bank
	years  *extract.YearsExtractor
	names  ai.NameRecognizer
	logger *zap.Logger
}

// Option customizes a Parser.
type Option func(*Parser)

// WithNameRecognizer plugs in a model-backed name recognizer tried before
// the text heuristics.
func WithNameRecognizer(r ai.NameRecognizer) Option {
	return func(p *Parser) { p.names = r }
}

// WithDateParser replaces the date parser used for experience date ranges.
func WithDateParser(d extract.DateParser) Option {
	return func(p *Parser) { p.years = extract.NewYearsExtractor(d) }
}

// NewParser creates a parser that recognizes skills from the GENERAL bank of
// registry. A nil registry is replaced with the built-in one.
func NewParser(registry *skills.Registry, log *zap.Logger, opts ...Option) *Parser {
	if registry == nil {
		registry = skills.NewRegistry()
	}

	p := &Parser{
		bank:   registry.General(),
		years:  extract.NewYearsExtractor(nil),
		logger: logger.WithFields(log),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse builds the profile for text. filename becomes the candidate id.
// Extraction never fails; unknown fields are left empty.
func (p *Parser) Parse(ctx context.Context, text, filename string) *Profile {
	return &Profile{
		ID:              filename,
		Name:            p.name(ctx, text, filename),
		Email:           extract.Email(text),
		Phone:           extract.Phone(text),
		Skills:          p.bank.Extract(text),
		ExperienceYears: p.years.Years(text),
		Education:       extract.Education(text),
		RawText:         text,
	}
}

func (p *Parser) name(ctx context.Context, text, filename string) string {
	if p.names != nil {
		name, err := p.names.RecognizePerson(ctx, text)
		switch {
		case err != nil:
			p.logger.Warn("name recognition failed, using text heuristics",
				append(logger.MatchFields(filename, ""), zap.Error(err))...,
			)
		case strings.TrimSpace(name) != "":
			return strings.TrimSpace(name)
		}
	}

	return extract.NameHeuristic(text)
}
