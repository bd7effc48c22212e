package personalization

import (
	"context"

	"go.uber.org/zap"

	"github.com/LocNguyenSGU/portfolio/internal/analytics"
	"github.com/LocNguyenSGU/portfolio/internal/dom"
)

// State is where an Applier is in its single run.
type State int

const (
	Idle State = iota
	Fetching
	Applied
	FailedSilently
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Fetching:
		return "fetching"
	case Applied:
		return "applied"
	case FailedSilently:
		return "failed_silently"
	default:
		return "unknown"
	}
}

// Applier runs one fetch-and-apply cycle per page load.
type Applier struct {
	fetcher    Fetcher
	emitter    *analytics.Emitter
	logger     *zap.Logger
	badgeLabel string

	state State
	rules RuleSet
}

// Option configures an Applier.
type Option func(*Applier)

// WithBadgeLabel sets the text of the featured badge.
func WithBadgeLabel(label string) Option {
	return func(a *Applier) { a.badgeLabel = label }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Applier) { a.logger = logger }
}

// NewApplier builds an Idle applier. emitter may be nil.
func NewApplier(f Fetcher, emitter *analytics.Emitter, opts ...Option) *Applier {
	a := &Applier{fetcher: f, emitter: emitter, logger: zap.NewNop(), badgeLabel: DefaultBadgeLabel}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Applier) State() State {
	return a.state
}

// Segment is the applied segment, empty unless State is Applied.
func (a *Applier) Segment() string {
	return a.rules.Segment
}

// Run fetches the visitor's rules and applies them to doc. Only the first
// call does anything; later calls return the settled state. Failures leave
// doc untouched and are only logged.
func (a *Applier) Run(ctx context.Context, doc *dom.Document, visitorID string) State {
	if a.state != Idle {
		return a.state
	}
	a.state = Fetching

	rules, err := a.fetcher.Fetch(ctx, visitorID)
	if err != nil {
		a.state = FailedSilently
		a.logger.Warn("personalization failed, showing default", zap.String("visitor_id", visitorID), zap.Error(err))
		return a.state
	}

	a.logger.Debug("personalization rules",
		zap.String("segment", rules.Segment),
		zap.Strings("priority_sections", rules.PrioritySections),
		zap.Strings("featured_projects", rules.FeaturedItems),
		zap.Strings("highlight_skills", rules.HighlightSkills),
	)

	ApplyRules(doc, rules, a.badgeLabel)
	a.rules = rules
	a.state = Applied
	a.emitter.PersonalizationApplied(analytics.WithVisitor(ctx, visitorID), rules.Segment)
	return a.state
}
