package openai

import (
	"math"
	"sync"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/doublelucky/compass/pkg/ai"
)

// AnalysisOpenAIClient implements ai.AnalysisAIClient against any
// OpenAI-compatible chat completion endpoint.
//
// An AnalysisOpenAIClient should be created using NewAnalysisOpenAIClient.
type AnalysisOpenAIClient struct {
	chatModel string
	chatURL   string
	chatKey   string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewAnalysisOpenAIClientParams defines the configuration parameters for
// creating a new AnalysisOpenAIClient.
//
// ChatModel specifies the model used for analysis and drafting.
// ChatURL and ChatKey configure the chat/completion API endpoint; an
// empty ChatURL targets the OpenAI platform directly.
type NewAnalysisOpenAIClientParams struct {
	ChatModel string
	ChatURL   string
	ChatKey   string
}

// NewAnalysisOpenAIClient creates and returns a new AnalysisOpenAIClient
// configured with the provided parameters.
//
// Example:
//
//	client := openai.NewAnalysisOpenAIClient(openai.NewAnalysisOpenAIClientParams{
//		ChatModel: "gpt-4o-mini",
//		ChatKey:   os.Getenv("AI_CHAT_KEY"),
//	})
func NewAnalysisOpenAIClient(
	params NewAnalysisOpenAIClientParams,
) *AnalysisOpenAIClient {
	return &AnalysisOpenAIClient{
		chatModel: params.ChatModel,
		chatURL:   params.ChatURL,
		chatKey:   params.ChatKey,

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},

		ChatClient: newOpenaiClient(params.ChatURL, params.ChatKey),
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}

// ResetMetrics clears all accumulated token and timing metrics to zero.
func (c *AnalysisOpenAIClient) ResetMetrics() {
	c.metricsLock.Lock()
	c.metrics = ai.ModelMetrics{}
	c.metricsLock.Unlock()
}

// GetMetrics returns the accumulated token usage and timing metrics since
// the last reset.
func (c *AnalysisOpenAIClient) GetMetrics() ai.ModelMetrics {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	return c.metrics
}

func (c *AnalysisOpenAIClient) modifyMetrics(m ai.ModelMetrics) {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()

	c.metrics.InputTokens += m.InputTokens
	c.metrics.OutputTokens += m.OutputTokens
	c.metrics.TotalTokens += m.TotalTokens
	c.metrics.DurationMs += m.DurationMs

	if c.metrics.DurationMs > 0 {
		tokensPerSecond := (float64(c.metrics.TotalTokens) * 1000.0) / float64(c.metrics.DurationMs)
		c.metrics.TokenPerSecond = float32(math.Round(tokensPerSecond*100) / 100)
	}
}
