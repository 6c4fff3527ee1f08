package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestRecognizePerson(t *testing.T) {
	stub := &stubGenerator{response: `{"name": "  John Doe "}`}
	r := NewNameRecognizer(stub, zap.NewNop(), 0)

	name, err := r.RecognizePerson(context.Background(), "John Doe\nPython Developer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "John Doe" {
		t.Fatalf("unexpected name: %q", name)
	}
	if !strings.Contains(stub.lastPrompt, "John Doe\nPython Developer") {
		t.Fatalf("expected resume text in prompt: %s", stub.lastPrompt)
	}
	if strings.Contains(stub.lastPrompt, "{{RESUME_TEXT}}") {
		t.Fatalf("placeholder was not replaced")
	}
}

func TestRecognizePersonTruncatesInput(t *testing.T) {
	stub := &stubGenerator{response: `{"name": "A"}`}
	r := NewNameRecognizer(stub, nil, 10)

	long := strings.Repeat("ж", maxNameInputRunes+500)
	if _, err := r.RecognizePerson(context.Background(), long); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent := strings.Count(stub.lastPrompt, "ж")
	if sent != maxNameInputRunes {
		t.Fatalf("expected %d runes of resume, got %d", maxNameInputRunes, sent)
	}
	if !utf8.ValidString(stub.lastPrompt) {
		t.Fatalf("prompt is not valid utf-8")
	}
}

func TestRecognizePersonHandlesCodeBlockAndEmpty(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"name\": \"none\"}\n```"}
	r := NewNameRecognizer(stub, zap.NewNop(), 0)

	name, err := r.RecognizePerson(context.Background(), "some resume")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "" {
		t.Fatalf("expected empty name, got %q", name)
	}

	name, err = r.RecognizePerson(context.Background(), "   ")
	if err != nil || name != "" {
		t.Fatalf("expected empty result for blank text, got %q (%v)", name, err)
	}
}

func TestRecognizePersonErrors(t *testing.T) {
	r := NewNameRecognizer(&stubGenerator{err: errors.New("unavailable")}, zap.NewNop(), 0)
	if _, err := r.RecognizePerson(context.Background(), "text"); err == nil {
		t.Fatal("expected generator error")
	}

	r = NewNameRecognizer(&stubGenerator{response: "not json"}, zap.NewNop(), 0)
	if _, err := r.RecognizePerson(context.Background(), "text"); err == nil {
		t.Fatal("expected parse error")
	}
}
