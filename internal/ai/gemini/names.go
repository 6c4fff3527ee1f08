package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed name_prompt.md
var namePromptTemplate string

const (
	// Only the head of a résumé is sent; names live there.
	maxNameInputRunes   = 2000
	defaultMaxLogLength = 200
)

// NameRecognizer asks the model for the person a résumé belongs to.
type NameRecognizer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewNameRecognizer returns a recognizer backed by generator.
func NewNameRecognizer(generator contentGenerator, logger *zap.Logger, maxLogLength int) *NameRecognizer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &NameRecognizer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// RecognizePerson implements ai.NameRecognizer.
func (r *NameRecognizer) RecognizePerson(ctx context.Context, text string) (string, error) {
	if r == nil || r.generator == nil {
		return "", errors.New("name recognizer is not configured")
	}

	head := headRunes(strings.TrimSpace(text), maxNameInputRunes)
	if head == "" {
		return "", nil
	}

	prompt := buildNamePrompt(head)

	r.logger.Debug("gemini name recognition request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	r.logger.Debug("gemini name recognition response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLen)),
	)

	return parseNameResponse(raw)
}

func buildNamePrompt(resumeText string) string {
	template := namePromptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Résumé:\n{{RESUME_TEXT}}\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, "{{RESUME_TEXT}}", resumeText)
}

func parseNameResponse(raw string) (string, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return "", fmt.Errorf("parse gemini response: %w", err)
	}

	name := coerceString(data["name"])
	switch strings.ToLower(name) {
	case "none", "null", "unknown", "n/a":
		return "", nil
	}

	return name, nil
}

func headRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case nil:
		return ""
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
