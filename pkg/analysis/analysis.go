// Package analysis adapts the narrative-analysis model into the typed
// AnalysisResult shape the graph core consumes. It owns prompt
// construction per query mode, reply parsing, and error classification.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/doublelucky/compass/internal/util"
	"github.com/doublelucky/compass/pkg/ai"
	"github.com/doublelucky/compass/pkg/common"
	"github.com/doublelucky/compass/pkg/logger"
)

// analyzeTimeout bounds one shared model call, retries included. The
// call runs detached from caller contexts, so this is its only deadline.
const analyzeTimeout = 2 * time.Minute

// Analyzer turns a focus string plus filter constraints into an
// AnalysisResult by prompting the configured AI backend.
//
// An Analyzer should be created using NewAnalyzer.
type Analyzer struct {
	client     ai.AnalysisAIClient
	maxRetries int

	// Collapses concurrent identical analyses into one model call.
	group singleflight.Group
}

// NewAnalyzerParams defines the configuration parameters for creating a
// new Analyzer.
type NewAnalyzerParams struct {
	Client     ai.AnalysisAIClient
	MaxRetries int
}

// NewAnalyzer creates and returns a new Analyzer configured with the
// provided parameters.
func NewAnalyzer(params NewAnalyzerParams) *Analyzer {
	maxRetries := params.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 2
	}
	return &Analyzer{
		client:     params.Client,
		maxRetries: maxRetries,
	}
}

// BuildPrompt renders the prompt for a mode, focus and filter set.
// Filter constraints apply to the career modes only; the care-journey
// prompt takes just the scenario.
func BuildPrompt(mode common.QueryMode, focus string, filters common.FilterSet) string {
	switch mode {
	case common.ModeResumeMatch:
		return fmt.Sprintf(ai.ResumeMatchPrompt,
			filters.Industry, filters.OrganizationSize, filters.WorkStyle, focus)
	case common.ModeCareJourney:
		return fmt.Sprintf(ai.CareJourneyPrompt, focus)
	default:
		return fmt.Sprintf(ai.DiscoveryPrompt,
			filters.Industry, filters.OrganizationSize, filters.WorkStyle, focus)
	}
}

// Analyze prompts the model with the focus and constraints and parses
// its reply into an AnalysisResult.
//
// Errors are classified: an empty focus or an out-of-set filter label is
// ErrInvalidInput (rejected before any model call), transport or model
// failures come back as *ServiceError, and replies that cannot be parsed
// into the expected shape as *MalformedResponseError.
//
// Concurrent calls with identical mode, focus and filters share a single
// in-flight model request. Canceling one caller's context fails only
// that caller; the shared request keeps running for the others.
func (a *Analyzer) Analyze(
	ctx context.Context,
	mode common.QueryMode,
	focus string,
	filters common.FilterSet,
) (*common.AnalysisResult, error) {
	if strings.TrimSpace(focus) == "" {
		return nil, fmt.Errorf("%w: empty focus", common.ErrInvalidInput)
	}
	filters, ok := filters.Normalize()
	if !ok {
		return nil, fmt.Errorf("%w: filter label outside the allowed set", common.ErrInvalidInput)
	}

	key := fmt.Sprintf("%s|%s|%s|%s|%s",
		mode, focus, filters.Industry, filters.OrganizationSize, filters.WorkStyle)

	// The shared call must not die with whichever caller happened to
	// arrive first, so it runs detached from all caller contexts with
	// its own deadline; each caller only races its own context against
	// the shared result.
	ch := a.group.DoChan(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), analyzeTimeout)
		defer cancel()
		return a.analyze(callCtx, mode, focus, filters)
	})

	select {
	case <-ctx.Done():
		return nil, &common.ServiceError{Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logger.Debug("[Analysis] Shared in-flight result", "focus", focus)
		}
		return res.Val.(*common.AnalysisResult), nil
	}
}

func (a *Analyzer) analyze(
	ctx context.Context,
	mode common.QueryMode,
	focus string,
	filters common.FilterSet,
) (*common.AnalysisResult, error) {
	prompt := BuildPrompt(mode, focus, filters)

	logger.Debug("[Analysis] Issuing analysis", "mode", mode, "focus", focus)

	result, err := util.RetryWithContext(ctx, a.maxRetries,
		func(ctx context.Context) (*common.AnalysisResult, error) {
			var res common.AnalysisResult
			err := a.client.GenerateCompletionWithFormat(
				ctx,
				"analysis_result",
				"A center entity with two layers of related entities.",
				prompt,
				&res,
				ai.WithTemperature(0.2),
			)
			if err != nil {
				return nil, err
			}
			return &res, nil
		})
	if err != nil {
		if errors.Is(err, ai.ErrMalformedJSON) {
			return nil, &common.MalformedResponseError{Err: err}
		}
		return nil, &common.ServiceError{Err: err}
	}

	if strings.TrimSpace(result.Center.Name) == "" {
		return nil, &common.MalformedResponseError{
			Err: errors.New("reply parsed but has no center name"),
		}
	}

	logger.Debug("[Analysis] Analysis complete",
		"focus", focus, "center", result.Center.Name, "relations", len(result.Relations))

	return result, nil
}

// DraftOutreach generates a short cold-outreach email for a company,
// optionally grounded in the user's resume text.
func (a *Analyzer) DraftOutreach(
	ctx context.Context,
	company string,
	summary string,
	resume string,
) (string, error) {
	if strings.TrimSpace(company) == "" {
		return "", fmt.Errorf("%w: empty company", common.ErrInvalidInput)
	}

	about := "I am a passionate professional."
	if trimmed := strings.TrimSpace(resume); trimmed != "" {
		if len(trimmed) > 500 {
			trimmed = trimmed[:500] + "..."
		}
		about = "My Resume Summary: " + trimmed
	}

	prompt := fmt.Sprintf(ai.OutreachPrompt, company, summary, about)

	draft, err := util.RetryWithContext(ctx, a.maxRetries,
		func(ctx context.Context) (string, error) {
			return a.client.GenerateCompletion(ctx, prompt, ai.WithTemperature(0.7))
		})
	if err != nil {
		return "", &common.ServiceError{Err: err}
	}
	return strings.TrimSpace(draft), nil
}

// Metrics returns the backing client's accumulated usage metrics.
func (a *Analyzer) Metrics() ai.ModelMetrics {
	return a.client.GetMetrics()
}

// ResetMetrics clears the backing client's accumulated usage metrics.
func (a *Analyzer) ResetMetrics() {
	a.client.ResetMetrics()
}
