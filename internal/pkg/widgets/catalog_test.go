package widgets

import "testing"

func TestDefaultsForIndustryFallsBackToGeneral(t *testing.T) {
	general := DefaultsForIndustry(IndustryGeneral)
	unknown := DefaultsForIndustry(IndustryKey("unknown-industry"))

	if len(unknown.Widgets) != len(general.Widgets) {
		t.Fatalf("unknown industry bundle = %v, want general %v", unknown.Widgets, general.Widgets)
	}
	for i := range general.Widgets {
		if unknown.Widgets[i] != general.Widgets[i] {
			t.Fatalf("unknown industry bundle = %v, want general %v", unknown.Widgets, general.Widgets)
		}
	}
}

func TestDefaultsForIndustryAllIsDeduplicatedUnion(t *testing.T) {
	for _, industry := range []IndustryKey{
		IndustryGeneral, IndustrySoftware, IndustryFinancial,
		IndustryPharma, IndustryConstruction, IndustryManufacturing,
	} {
		b := DefaultsForIndustry(industry)
		seen := make(map[WidgetID]struct{})
		for _, id := range b.All {
			if _, dup := seen[id]; dup {
				t.Fatalf("industry %q: duplicate %q in All", industry, id)
			}
			seen[id] = struct{}{}
			if !IsCanonical(id) {
				t.Fatalf("industry %q: non-canonical %q in All", industry, id)
			}
		}
		for _, id := range b.Widgets {
			if _, ok := seen[id]; !ok {
				t.Fatalf("industry %q: baseline widget %q missing from All", industry, id)
			}
		}
		for _, id := range b.Addons {
			if _, ok := seen[id]; !ok {
				t.Fatalf("industry %q: addon %q missing from All", industry, id)
			}
		}
	}
}

func TestDefaultsForIndustryAddonsNeverNil(t *testing.T) {
	if DefaultsForIndustry(IndustryGeneral).Addons == nil {
		t.Fatal("Addons must be an empty list, not nil")
	}
}

func TestAllCoversCanonicalSet(t *testing.T) {
	ids := All()
	if len(ids) != len(canonical) {
		t.Fatalf("All() returned %d ids, want %d", len(ids), len(canonical))
	}
	for _, id := range ids {
		if !IsCanonical(id) {
			t.Fatalf("All() returned non-canonical %q", id)
		}
	}
}
