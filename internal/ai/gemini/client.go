package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/logger"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/utils"
)

const (
	Provider = "gemini"

	defaultModel          = "gemini-2.5-flash"
	defaultEmbeddingModel = "text-embedding-004"
	defaultMaxRetries     = 3

	baseRetryDelay = time.Second
	maxRetryDelay  = 10 * time.Second
)

// models is the subset of *genai.Models the client uses.
type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

var wait = utils.WaitFor

// Options configures a Client.
type Options struct {
	APIKey         string
	Model          string
	EmbeddingModel string
	MaxRetries     int
}

// Client wraps the Google GenAI models API with retries on temporary errors.
type Client struct {
	models         models
	model          string
	embeddingModel string
	maxRetries     int
	logger         *zap.Logger
}

// NewClient creates a Client configured for the Gemini API backend.
func NewClient(ctx context.Context, opts Options, log *zap.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newClient(client.Models, opts, log), nil
}

func newClient(m models, opts Options, log *zap.Logger) *Client {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	embeddingModel := strings.TrimSpace(opts.EmbeddingModel)
	if embeddingModel == "" {
		embeddingModel = defaultEmbeddingModel
	}

	retries := opts.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}

	return &Client{
		models:         m,
		model:          model,
		embeddingModel: embeddingModel,
		maxRetries:     retries,
		logger:         logger.WithCommonFields(log, Provider, model),
	}
}

// Model returns the generation model name.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

// EmbeddingModel returns the embedding model name.
func (c *Client) EmbeddingModel() string {
	if c == nil {
		return ""
	}
	return c.embeddingModel
}

// GenerateContent sends the prompt and returns the joined text parts of the response.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.models == nil {
		return "", errors.New("gemini client is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	var resp *genai.GenerateContentResponse
	err := c.withRetries(ctx, "generate content", func() error {
		var err error
		resp, err = c.models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

// Embed returns one embedding vector per input text, in order.
func (c *Client) Embed(ctx context.Context, texts ...string) ([][]float32, error) {
	if c == nil || c.models == nil {
		return nil, errors.New("gemini client is not initialized")
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, &genai.Content{Parts: []*genai.Part{{Text: text}}})
	}

	var resp *genai.EmbedContentResponse
	err := c.withRetries(ctx, "embed content", func() error {
		var err error
		resp, err = c.models.EmbedContent(ctx, c.embeddingModel, contents, nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if resp == nil || len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini api returned %d embeddings for %d texts", embeddingCount(resp), len(texts))
	}

	vectors := make([][]float32, 0, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		if e == nil || len(e.Values) == 0 {
			return nil, fmt.Errorf("gemini api returned empty embedding at index %d", i)
		}
		vectors = append(vectors, e.Values)
	}

	return vectors, nil
}

func embeddingCount(resp *genai.EmbedContentResponse) int {
	if resp == nil {
		return 0
	}
	return len(resp.Embeddings)
}

func (c *Client) withRetries(ctx context.Context, op string, call func() error) error {
	var err error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		err = call()
		if err == nil {
			return nil
		}

		delay, retry := retryDelay(err, attempt)
		if !retry || attempt == c.maxRetries {
			return err
		}

		c.logger.Debug("retrying gemini request",
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		if waitErr := wait(ctx, delay); waitErr != nil {
			return waitErr
		}
	}

	return err
}

var retryAfterPattern = regexp.MustCompile(`(?i)retry (?:after|in) (\d+(?:\.\d+)?)\s*s`)

// retryDelay reports whether err is worth retrying and how long to wait.
// Quota errors asking for a long pause are not retried.
func retryDelay(err error, attempt int) (time.Duration, bool) {
	code, message, ok := apiError(err)
	if !ok {
		return 0, false
	}

	switch {
	case code == http.StatusTooManyRequests:
		delay := baseRetryDelay * time.Duration(attempt)
		if m := retryAfterPattern.FindStringSubmatch(message); m != nil {
			if secs, perr := strconv.ParseFloat(m[1], 64); perr == nil {
				delay = time.Duration(secs * float64(time.Second))
			}
		}
		if delay > maxRetryDelay {
			return 0, false
		}
		return delay, true
	case code >= http.StatusInternalServerError:
		return baseRetryDelay * time.Duration(attempt), true
	default:
		return 0, false
	}
}

func apiError(err error) (int, string, bool) {
	var value genai.APIError
	if errors.As(err, &value) {
		return value.Code, value.Message, true
	}
	var ptr *genai.APIError
	if errors.As(err, &ptr) && ptr != nil {
		return ptr.Code, ptr.Message, true
	}
	return 0, "", false
}
