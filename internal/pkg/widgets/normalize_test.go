package widgets

import "testing"

func contains(ids []WidgetID, want WidgetID) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}

func TestNormalizeCanonicalPassThrough(t *testing.T) {
	in := []string{"budget-overview", "timeline", "doc-repo"}
	got := Normalize(in)
	if len(got) != 3 {
		t.Fatalf("Normalize(%v) returned %d ids, want 3", in, len(got))
	}
	for _, id := range []WidgetID{WidgetBudgetOverview, WidgetTimeline, WidgetDocRepo} {
		if !contains(got, id) {
			t.Fatalf("Normalize(%v) lost %q", in, id)
		}
	}
}

func TestNormalizeSynonyms(t *testing.T) {
	tests := []struct {
		in   string
		want WidgetID
	}{
		{in: "gantt-chart", want: WidgetTimeline},
		{in: "time-tracking", want: WidgetDelayTracker},
		{in: "contacts-list", want: WidgetProjectContacts},
		{in: "document-repository", want: WidgetDocRepo},
		{in: "photo-gallery", want: WidgetProjectPhotos},
		{in: "budget", want: WidgetBudgetOverview},
		{in: "  Meeting-Notes ", want: WidgetMeetingMinutes},
	}

	for _, tt := range tests {
		got := Normalize([]string{tt.in})
		if len(got) != 1 || got[0] != tt.want {
			t.Fatalf("Normalize([%q]) = %v, want [%q]", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDeduplicatesAcrossSynonyms(t *testing.T) {
	got := Normalize([]string{"timeline", "gantt-chart"})
	if len(got) != 1 || got[0] != WidgetTimeline {
		t.Fatalf("expected single timeline entry, got %v", got)
	}
}

func TestNormalizeDropsUnknown(t *testing.T) {
	got := Normalize([]string{"budget-overview", "definitely-not-a-widget"})
	if len(got) != 1 || got[0] != WidgetBudgetOverview {
		t.Fatalf("unknown identifier should be dropped, got %v", got)
	}
}

func TestNormalizeDropsMetaIdentifiers(t *testing.T) {
	got := Normalize([]string{"project-overview", "overview"})
	if len(got) != 0 {
		t.Fatalf("meta identifiers should resolve to nothing, got %v", got)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	if got := Normalize(nil); len(got) != 0 {
		t.Fatalf("Normalize(nil) = %v, want empty", got)
	}
	if got := Normalize([]string{}); len(got) != 0 {
		t.Fatalf("Normalize([]) = %v, want empty", got)
	}
}

func TestIdentifierMapTargetsAreCanonical(t *testing.T) {
	for key, target := range identifierMap {
		if target == "" {
			continue
		}
		if !IsCanonical(target) {
			t.Fatalf("identifierMap[%q] = %q is not canonical", key, target)
		}
	}
}
