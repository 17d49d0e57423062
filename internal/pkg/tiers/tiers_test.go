package tiers

import "testing"

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "team", want: "solo"},
		{in: "enterprise-starter", want: "professional"},
		{in: "enterprise-pro", want: "professional"},
		{in: "unlimited", want: "enterprise"},
		{in: "professional", want: "professional"},
		{in: " Team ", want: "solo"},
		{in: " Starter ", want: " Starter "},
		{in: "something-custom", want: "something-custom"},
	}

	for _, tt := range tests {
		if got := NormalizeID(tt.in); got != tt.want {
			t.Fatalf("NormalizeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestByIDResolvesAliases(t *testing.T) {
	tier, ok := ByID("enterprise-pro")
	if !ok {
		t.Fatal("expected enterprise-pro alias to resolve")
	}
	if tier.ID != "professional" {
		t.Fatalf("ByID(enterprise-pro) = %q, want professional", tier.ID)
	}

	tier, ok = ByID(" Starter ")
	if !ok || tier.ID != "starter" {
		t.Fatalf("ByID( Starter ) = %q, %v, want starter", tier.ID, ok)
	}

	if _, ok := ByID("no-such-tier"); ok {
		t.Fatal("expected unknown tier to miss")
	}
}

func TestCatalogOrderedByCapability(t *testing.T) {
	rank := func(limit int) int {
		if limit == Unlimited {
			return int(^uint(0) >> 1)
		}
		return limit
	}
	for i := 1; i < len(Catalog); i++ {
		prev, cur := Catalog[i-1], Catalog[i]
		if rank(cur.MaxUsers) < rank(prev.MaxUsers) {
			t.Fatalf("tier %q has fewer users than %q", cur.ID, prev.ID)
		}
		if rank(cur.MaxProjects) < rank(prev.MaxProjects) {
			t.Fatalf("tier %q has fewer projects than %q", cur.ID, prev.ID)
		}
		if cur.PriceMonthly < prev.PriceMonthly {
			t.Fatalf("tier %q is cheaper than %q", cur.ID, prev.ID)
		}
	}
}

func TestNext(t *testing.T) {
	if next := Next("starter"); next == nil || next.ID != "solo" {
		t.Fatalf("Next(starter) = %v, want solo", next)
	}
	if next := Next("team"); next == nil || next.ID != "professional" {
		t.Fatalf("Next(team alias) = %v, want professional", next)
	}
	if next := Next("enterprise"); next == nil || next.ID != Scale.ID {
		t.Fatalf("Next(enterprise) = %v, want scale", next)
	}
	if next := Next("scale"); next != nil {
		t.Fatalf("Next(scale) = %v, want nil", next)
	}
}
