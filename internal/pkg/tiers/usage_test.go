package tiers

import "testing"

func mustTier(t *testing.T, id string) Tier {
	t.Helper()
	tier, ok := ByID(id)
	if !ok {
		t.Fatalf("tier %q missing from catalog", id)
	}
	return tier
}

func TestRecommendNilWhenUnderThreshold(t *testing.T) {
	u := Compute(mustTier(t, "solo"), 3, 5, 0, 0)
	if u.RecommendedTier != "" {
		t.Fatalf("expected no recommendation, got %q", u.RecommendedTier)
	}
	if Recommend(u) != nil {
		t.Fatal("Recommend should return nil when all ratios <= 0.8")
	}
}

func TestRecommendNextTierWhenUsersExceedThreshold(t *testing.T) {
	// solo allows 5 users; 5/5 = 1.0 > 0.8
	u := Compute(mustTier(t, "solo"), 5, 1, 0, 0)
	rec := Recommend(u)
	if rec == nil || rec.ID != "professional" {
		t.Fatalf("Recommend = %v, want professional", rec)
	}
	if u.RecommendedTier != "professional" {
		t.Fatalf("Compute should embed recommendation, got %q", u.RecommendedTier)
	}
	if u.RecommendedPrice != rec.PriceMonthly {
		t.Fatalf("projected price = %v, want %v", u.RecommendedPrice, rec.PriceMonthly)
	}
}

func TestRecommendStorageTriggered(t *testing.T) {
	// starter allows 1 GB; 0.9 GB is over the threshold
	u := Compute(mustTier(t, "starter"), 1, 1, 9*bytesPerGB/10, 0)
	rec := Recommend(u)
	if rec == nil || rec.ID != "solo" {
		t.Fatalf("Recommend = %v, want solo", rec)
	}
}

func TestUnlimitedNeverTriggersRecommendation(t *testing.T) {
	custom := Tier{ID: "enterprise", Name: "Enterprise", MaxUsers: Unlimited, MaxProjects: Unlimited, MaxStorageGB: Unlimited}
	u := Compute(custom, 1_000_000, 1_000_000, 1_000_000*bytesPerGB, 0)
	if u.UserUtilization != 0 || u.ProjectUtilization != 0 || u.StorageUtilization != 0 {
		t.Fatalf("unlimited limits must report zero utilization, got %+v", u)
	}
	if Recommend(u) != nil {
		t.Fatal("unlimited resources must never trigger a recommendation")
	}
}

func TestRecommendScaleBeyondTopFixedTier(t *testing.T) {
	// enterprise caps users at 100; 90 users is over the threshold
	u := Compute(mustTier(t, "enterprise"), 90, 10, 0, 0)
	rec := Recommend(u)
	if rec == nil || rec.ID != Scale.ID {
		t.Fatalf("Recommend = %v, want scale", rec)
	}
}

func TestUtilizationSentinel(t *testing.T) {
	if got := utilization(10, Unlimited); got != 0 {
		t.Fatalf("utilization(10, Unlimited) = %v, want 0", got)
	}
	if got := utilization(4, 5); got != 0.8 {
		t.Fatalf("utilization(4, 5) = %v, want 0.8", got)
	}
}
