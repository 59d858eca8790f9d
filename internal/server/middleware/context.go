package middleware

import (
	"github.com/doublelucky/compass/internal/util"

	"github.com/labstack/echo/v4"

	"github.com/doublelucky/compass/pkg/ai"
	oai "github.com/doublelucky/compass/pkg/ai/ollama"
	gai "github.com/doublelucky/compass/pkg/ai/openai"
	"github.com/doublelucky/compass/pkg/analysis"
	"github.com/doublelucky/compass/pkg/logger"
	"github.com/doublelucky/compass/pkg/session"
)

// App holds the long-lived collaborators handlers reach through the
// request context.
type App struct {
	Session  *session.Manager
	Analyzer *analysis.Analyzer
}

type AppContext struct {
	echo.Context
	App *App
}

// NewApp builds the AI client from the environment (AI_ADAPTER selects
// the backend), the analyzer on top of it, and one session manager.
func NewApp() *App {
	adapter := util.GetEnv("AI_ADAPTER")
	var aiClient ai.AnalysisAIClient

	switch adapter {
	case "ollama":
		client, err := oai.NewAnalysisOllamaClient(oai.NewAnalysisOllamaClientParams{
			ChatModel: util.GetEnv("AI_CHAT_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 15)),
		})
		if err != nil {
			logger.Fatal("Failed to create Ollama client", "err", err)
		}
		aiClient = client
	default:
		aiClient = gai.NewAnalysisOpenAIClient(gai.NewAnalysisOpenAIClientParams{
			ChatModel: util.GetEnv("AI_CHAT_MODEL"),

			ChatURL: util.GetEnv("AI_CHAT_URL"),
			ChatKey: util.GetEnv("AI_CHAT_KEY"),
		})
	}

	analyzer := analysis.NewAnalyzer(analysis.NewAnalyzerParams{
		Client: aiClient,
	})

	return &App{
		Session: session.NewManager(session.NewManagerParams{
			Fetcher:      analyzer,
			DefaultFocus: util.GetEnvString("DEFAULT_FOCUS", "OpenAI"),
		}),
		Analyzer: analyzer,
	}
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{
				Context: c,
				App:     app,
			}
			return next(cc)
		}
	}
}
