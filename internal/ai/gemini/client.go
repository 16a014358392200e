package gemini

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/jobfit/jobfit/internal/utils"
)

const (
	defaultModel      = "gemini-2.0-flash"
	defaultMaxRetries = 2
	retryBaseDelay    = 2 * time.Second
	// Quota errors that ask for a longer pause than this are not worth
	// blocking a synchronous request for.
	maxQuotaDelay = 30 * time.Second
)

// wait is swapped out in tests.
var wait = utils.WaitFor

var retryAfterRe = regexp.MustCompile(`retry after (\d+)`)

// chatSession is the part of genai.Chat the generator relies on.
type chatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// chatCreator is the part of the genai chats service the generator relies on.
type chatCreator interface {
	Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error)
}

type genaiChats struct {
	client *genai.Client
}

func (c genaiChats) Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error) {
	return c.client.Chats.Create(ctx, model, config, history)
}

// NewClient creates a genai client for the Gemini API backend. The same
// client is shared between the Generator and the Embedder.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	apiKey = strings.TrimSpace(apiKey)
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

	return client, nil
}

// Generator wraps the Gemini chat API with bounded retries on temporary
// errors and a per-call timeout.
type Generator struct {
	chats      chatCreator
	model      string
	maxRetries int
	timeout    time.Duration
	logger     *zap.Logger
}

func NewGenerator(client *genai.Client, model string, maxRetries int, timeout time.Duration, logger *zap.Logger) *Generator {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		chats:      genaiChats{client: client},
		model:      model,
		maxRetries: maxRetries,
		timeout:    timeout,
		logger:     logger,
	}
}

// GenerateContent sends the prompt to Gemini and returns the textual response.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, prompt, &genai.GenerateContentConfig{})
}

// GenerateJSON sends the prompt to Gemini requesting a JSON response body.
func (g *Generator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

func (g *Generator) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	var lastErr error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		output, err := g.send(ctx, prompt, config)
		if err == nil {
			return output, nil
		}
		lastErr = err

		delay, retryable := retryDelay(err, attempt)
		if !retryable || attempt == g.maxRetries {
			break
		}

		g.logger.Debug("retrying gemini call",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		if err := wait(ctx, delay); err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("generate content: %w", lastErr)
}

func (g *Generator) send(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	chat, err := g.chats.Create(ctx, g.model, config, nil)
	if err != nil {
		return "", err
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: prompt})
	if err != nil {
		return "", err
	}

	output := collectText(resp)
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
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

	return strings.TrimSpace(builder.String())
}

// retryDelay decides whether the error is worth another attempt and how long
// to wait before it. Server-side errors back off linearly; quota errors honor
// the advertised delay unless it exceeds maxQuotaDelay.
func retryDelay(err error, attempt int) (time.Duration, bool) {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return 0, false
	}

	switch {
	case apiErr.Code >= 500:
		return time.Duration(attempt) * retryBaseDelay, true
	case apiErr.Code == 429:
		delay := quotaDelay(apiErr.Message)
		if delay > maxQuotaDelay {
			return 0, false
		}
		if delay == 0 {
			delay = time.Duration(attempt) * retryBaseDelay
		}
		return delay, true
	}

	return 0, false
}

func quotaDelay(message string) time.Duration {
	matches := retryAfterRe.FindStringSubmatch(strings.ToLower(message))
	if len(matches) != 2 {
		return 0
	}
	seconds, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
