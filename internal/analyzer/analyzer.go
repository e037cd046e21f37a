package analyzer

import (
	"context"

	"campus-match/internal/domain/signals"

	"go.uber.org/zap"
)

// Kind tells the analyzer what sort of text it is looking at.
type Kind string

const (
	KindJob    Kind = "job"
	KindResume Kind = "resume"
)

// Analyzer extracts structured signals from free text.
type Analyzer interface {
	Analyze(ctx context.Context, text string, kind Kind) (signals.Extract, error)
}

// Extractor is the primary (AI-backed) extraction capability. It may fail.
type Extractor interface {
	ExtractSignals(ctx context.Context, text string, kind Kind) (signals.Extract, error)
}

// Adapter fronts the primary extractor with the keyword fallback so callers
// always get a usable extract: a failing or unconfigured provider degrades,
// it never stalls the pipeline.
type Adapter struct {
	primary  Extractor
	fallback *KeywordFallback
	logger   *zap.Logger
}

func NewAdapter(primary Extractor, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		primary:  primary,
		fallback: NewKeywordFallback(),
		logger:   logger,
	}
}

func (a *Adapter) Analyze(ctx context.Context, text string, kind Kind) (signals.Extract, error) {
	if a.primary != nil {
		ext, err := a.primary.ExtractSignals(ctx, text, kind)
		if err == nil {
			return ext.Sanitize(), nil
		}
		a.logger.Warn("text analysis fell back to keyword heuristic",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
	return a.fallback.Extract(text, kind), nil
}
