package widgets

// WidgetID is the canonical identifier of one dashboard widget type.
// The set is closed; adding a widget means extending the constants and the
// canonical set below.
type WidgetID string

const (
	WidgetBudgetOverview  WidgetID = "budget-overview"
	WidgetProjectContacts WidgetID = "project-contacts"
	WidgetDocRepo         WidgetID = "doc-repo"
	WidgetProjectPhotos   WidgetID = "project-photos"
	WidgetDelayTracker    WidgetID = "delay-tracker"
	WidgetTimeline        WidgetID = "timeline"
	WidgetMeetingMinutes  WidgetID = "meeting-minutes"
)

// IndustryKey selects the default widget bundle applied to a new project.
type IndustryKey string

const (
	IndustryGeneral       IndustryKey = "general"
	IndustrySoftware      IndustryKey = "software"
	IndustryFinancial     IndustryKey = "financial"
	IndustryPharma        IndustryKey = "pharma"
	IndustryConstruction  IndustryKey = "construction"
	IndustryManufacturing IndustryKey = "manufacturing"
)

var canonical = map[WidgetID]struct{}{
	WidgetBudgetOverview:  {},
	WidgetProjectContacts: {},
	WidgetDocRepo:         {},
	WidgetProjectPhotos:   {},
	WidgetDelayTracker:    {},
	WidgetTimeline:        {},
	WidgetMeetingMinutes:  {},
}

// IsCanonical reports whether id is a member of the closed widget set.
func IsCanonical(id WidgetID) bool {
	_, ok := canonical[id]
	return ok
}

// All returns every canonical widget identifier.
func All() []WidgetID {
	out := make([]WidgetID, 0, len(canonical))
	for id := range canonical {
		out = append(out, id)
	}
	return out
}

var industryDefaults = map[IndustryKey][]WidgetID{
	IndustryGeneral:       {WidgetBudgetOverview, WidgetProjectContacts, WidgetTimeline, WidgetDocRepo},
	IndustrySoftware:      {WidgetTimeline, WidgetDelayTracker, WidgetMeetingMinutes, WidgetDocRepo},
	IndustryFinancial:     {WidgetBudgetOverview, WidgetDocRepo, WidgetProjectContacts},
	IndustryPharma:        {WidgetDocRepo, WidgetMeetingMinutes, WidgetTimeline},
	IndustryConstruction:  {WidgetProjectPhotos, WidgetDelayTracker, WidgetBudgetOverview, WidgetTimeline},
	IndustryManufacturing: {WidgetDelayTracker, WidgetBudgetOverview, WidgetTimeline},
}

var industryAddons = map[IndustryKey][]WidgetID{
	IndustrySoftware:      {WidgetProjectContacts},
	IndustryFinancial:     {WidgetTimeline},
	IndustryPharma:        {WidgetDelayTracker},
	IndustryConstruction:  {WidgetDocRepo, WidgetMeetingMinutes},
	IndustryManufacturing: {WidgetProjectPhotos, WidgetDocRepo},
}

// NormalizeIndustry maps unrecognized industry keys to general.
func NormalizeIndustry(industry IndustryKey) IndustryKey {
	if _, ok := industryDefaults[industry]; ok {
		return industry
	}
	return IndustryGeneral
}

// Bundle is the default widget selection for an industry.
type Bundle struct {
	Widgets []WidgetID `json:"widgets"`
	Addons  []WidgetID `json:"addons"`
	All     []WidgetID `json:"all"`
}

// DefaultsForIndustry returns the baseline bundle, the recommended addons and
// their deduplicated union for the given industry. Unrecognized industries
// fall back to the general bundle.
func DefaultsForIndustry(industry IndustryKey) Bundle {
	base, ok := industryDefaults[industry]
	if !ok {
		base = industryDefaults[IndustryGeneral]
	}
	addons := industryAddons[industry]
	if addons == nil {
		addons = []WidgetID{}
	}

	all := make([]WidgetID, 0, len(base)+len(addons))
	seen := make(map[WidgetID]struct{}, len(base)+len(addons))
	for _, id := range base {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			all = append(all, id)
		}
	}
	for _, id := range addons {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			all = append(all, id)
		}
	}

	widgets := make([]WidgetID, len(base))
	copy(widgets, base)

	return Bundle{Widgets: widgets, Addons: addons, All: all}
}
