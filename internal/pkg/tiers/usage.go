package tiers

// UsageStats pairs live resource counts with the active tier's static limits.
// It is derived on demand and never persisted.
type UsageStats struct {
	TierID       string  `json:"tier_id"`
	TierName     string  `json:"tier_name"`
	Users        int64   `json:"users"`
	MaxUsers     int     `json:"max_users"`
	Projects     int64   `json:"projects"`
	MaxProjects  int     `json:"max_projects"`
	StorageBytes int64   `json:"storage_bytes"`
	MaxStorageGB int     `json:"max_storage_gb"`
	AIRequests   int64   `json:"ai_requests"`
	AIQuota      int     `json:"ai_request_quota"`
	PriceMonthly float64 `json:"price_monthly"`

	UserUtilization    float64 `json:"user_utilization"`
	ProjectUtilization float64 `json:"project_utilization"`
	StorageUtilization float64 `json:"storage_utilization"`

	RecommendedTier  string  `json:"recommended_tier,omitempty"`
	RecommendedPrice float64 `json:"recommended_price,omitempty"`
}

const bytesPerGB = int64(1024 * 1024 * 1024)

// upgradeThreshold is the utilization ratio above which the next tier is
// recommended.
const upgradeThreshold = 0.8

// utilization computes current/max, treating the Unlimited sentinel as zero
// utilization. A max of 0 that is not Unlimited is a configuration error
// upstream; the guard here is the sentinel check only.
func utilization(current int64, max int) float64 {
	if max == Unlimited {
		return 0
	}
	return float64(current) / float64(max)
}

// Compute builds the usage snapshot for an organization on the given tier.
func Compute(t Tier, users, projects, storageBytes, aiRequests int64) UsageStats {
	storageMax := t.MaxStorageGB
	var storageUtil float64
	if storageMax == Unlimited {
		storageUtil = 0
	} else {
		storageUtil = float64(storageBytes) / float64(int64(storageMax)*bytesPerGB)
	}

	u := UsageStats{
		TierID:             t.ID,
		TierName:           t.Name,
		Users:              users,
		MaxUsers:           t.MaxUsers,
		Projects:           projects,
		MaxProjects:        t.MaxProjects,
		StorageBytes:       storageBytes,
		MaxStorageGB:       t.MaxStorageGB,
		AIRequests:         aiRequests,
		AIQuota:            t.AIRequestQuota,
		PriceMonthly:       t.PriceMonthly,
		UserUtilization:    utilization(users, t.MaxUsers),
		ProjectUtilization: utilization(projects, t.MaxProjects),
		StorageUtilization: storageUtil,
	}

	if rec := Recommend(u); rec != nil {
		u.RecommendedTier = rec.ID
		u.RecommendedPrice = rec.PriceMonthly
	}

	return u
}

// Recommend returns the next catalog tier when any utilization ratio exceeds
// the upgrade threshold, the scaling tier when already on the top fixed tier,
// and nil when the current tier still fits.
func Recommend(u UsageStats) *Tier {
	over := u.UserUtilization > upgradeThreshold ||
		u.ProjectUtilization > upgradeThreshold ||
		u.StorageUtilization > upgradeThreshold
	if !over {
		return nil
	}
	return Next(u.TierID)
}
