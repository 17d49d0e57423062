package widgets

import (
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

// identifierMap is the single authoritative lookup translating every accepted
// widget identifier (canonical IDs, UI selection keys and legacy synonyms) to
// its canonical WidgetID. Meta identifiers that describe always-on surfaces
// map to the empty WidgetID and are dropped without a warning.
var identifierMap = map[string]WidgetID{
	// canonical IDs map to themselves
	"budget-overview":  WidgetBudgetOverview,
	"project-contacts": WidgetProjectContacts,
	"doc-repo":         WidgetDocRepo,
	"project-photos":   WidgetProjectPhotos,
	"delay-tracker":    WidgetDelayTracker,
	"timeline":         WidgetTimeline,
	"meeting-minutes":  WidgetMeetingMinutes,

	// UI selection keys
	"budget":    WidgetBudgetOverview,
	"contacts":  WidgetProjectContacts,
	"documents": WidgetDocRepo,
	"photos":    WidgetProjectPhotos,
	"delays":    WidgetDelayTracker,
	"minutes":   WidgetMeetingMinutes,

	// legacy / display identifiers
	"gantt-chart":         WidgetTimeline,
	"time-tracking":       WidgetDelayTracker,
	"contacts-list":       WidgetProjectContacts,
	"document-repository": WidgetDocRepo,
	"photo-gallery":       WidgetProjectPhotos,
	"meeting-notes":       WidgetMeetingMinutes,
	"budget-tracker":      WidgetBudgetOverview,

	// always-on surfaces, intentionally not part of the canonical set
	"project-overview": "",
	"overview":         "",
}

// Normalize resolves arbitrary caller-supplied widget identifiers into the
// canonical, deduplicated set. Identifiers that resolve to nothing are
// dropped: meta identifiers silently, unknown ones with a diagnostic log line.
// One bad entry never fails the whole list. Output order is unspecified.
func Normalize(input []string) []WidgetID {
	out := make([]WidgetID, 0, len(input))
	seen := make(map[WidgetID]struct{}, len(input))

	for _, raw := range input {
		key := strings.ToLower(strings.TrimSpace(raw))
		if key == "" {
			continue
		}
		target, ok := identifierMap[key]
		if !ok {
			log.Infof("[Widgets] dropping unknown widget identifier %q", raw)
			continue
		}
		if target == "" || !IsCanonical(target) {
			continue
		}
		if _, dup := seen[target]; dup {
			continue
		}
		seen[target] = struct{}{}
		out = append(out, target)
	}

	return out
}

// NormalizeStrings is Normalize with a plain-string result, for callers that
// persist the list.
func NormalizeStrings(input []string) []string {
	ids := Normalize(input)
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
