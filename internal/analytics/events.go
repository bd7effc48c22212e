package analytics

import (
	"context"
	"time"
)

// Event names understood by the portfolio front end.
const (
	EventProjectClick           = "project_click"
	EventSectionView            = "section_view"
	EventContactIntent          = "contact_intent"
	EventSkillHover             = "skill_hover"
	EventDeepRead               = "deep_read"
	EventScrollDepth            = "scroll_depth"
	EventLanguageSwitch         = "language_switch"
	EventPersonalizationApplied = "personalization_applied"
)

var knownEvents = map[string]bool{
	EventProjectClick:           true,
	EventSectionView:            true,
	EventContactIntent:          true,
	EventSkillHover:             true,
	EventDeepRead:               true,
	EventScrollDepth:            true,
	EventLanguageSwitch:         true,
	EventPersonalizationApplied: true,
}

// Known reports whether name is a tracked event.
func Known(name string) bool {
	return knownEvents[name]
}

// ClientReportable reports whether browsers may submit name. Events the
// server emits itself are excluded.
func ClientReportable(name string) bool {
	return Known(name) && name != EventPersonalizationApplied
}

func (e *Emitter) track(ctx context.Context, name string, props map[string]any) {
	if e == nil {
		return
	}
	props["timestamp"] = e.now().UnixMilli()
	e.Emit(ctx, CategoryEvent, name, props)
}

func (e *Emitter) ProjectClick(ctx context.Context, projectID, category string) {
	if category == "" {
		category = "general"
	}
	e.track(ctx, EventProjectClick, map[string]any{"project_id": projectID, "category": category})
}

func (e *Emitter) SectionView(ctx context.Context, section string, spent time.Duration) {
	e.track(ctx, EventSectionView, map[string]any{"section_name": section, "time_spent": spent.Milliseconds()})
}

func (e *Emitter) ContactIntent(ctx context.Context, contactType string) {
	e.track(ctx, EventContactIntent, map[string]any{"contact_type": contactType})
}

func (e *Emitter) SkillHover(ctx context.Context, skill string, d time.Duration) {
	e.track(ctx, EventSkillHover, map[string]any{"skill_name": skill, "duration": d.Milliseconds()})
}

func (e *Emitter) DeepRead(ctx context.Context, projectID string, d time.Duration) {
	e.track(ctx, EventDeepRead, map[string]any{"project_id": projectID, "duration": d.Milliseconds()})
}

func (e *Emitter) ScrollDepth(ctx context.Context, milestone string) {
	e.track(ctx, EventScrollDepth, map[string]any{"milestone": milestone})
}

func (e *Emitter) LanguageSwitch(ctx context.Context, from, to string) {
	e.track(ctx, EventLanguageSwitch, map[string]any{"from_lang": from, "to_lang": to})
}

// PersonalizationApplied records the segment whose rules were applied. The
// timestamp is ISO-8601 rather than epoch milliseconds.
func (e *Emitter) PersonalizationApplied(ctx context.Context, segment string) {
	if e == nil {
		return
	}
	e.Emit(ctx, CategoryEvent, EventPersonalizationApplied, map[string]any{
		"segment":   segment,
		"timestamp": e.now().UTC().Format(time.RFC3339),
	})
}
