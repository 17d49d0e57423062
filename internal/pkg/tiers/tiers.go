package tiers

import "strings"

// Unlimited is the sentinel limit meaning "no cap on this resource".
const Unlimited = -1

// Tier is one entry of the static subscription catalog.
type Tier struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	MaxUsers       int      `json:"max_users"`
	MaxProjects    int      `json:"max_projects"`
	MaxStorageGB   int      `json:"max_storage_gb"`
	AIRequestQuota int      `json:"ai_request_quota"`
	PriceMonthly   float64  `json:"price_monthly"`
	Features       []string `json:"features"`
}

// Catalog is ordered by increasing capability. Recommendation logic walks it
// front to back.
var Catalog = []Tier{
	{
		ID:             "starter",
		Name:           "Starter",
		MaxUsers:       3,
		MaxProjects:    2,
		MaxStorageGB:   1,
		AIRequestQuota: 20,
		PriceMonthly:   0,
		Features:       []string{"2 projects", "3 team members", "1 GB storage", "20 AI drafts / month"},
	},
	{
		ID:             "solo",
		Name:           "Solo",
		MaxUsers:       5,
		MaxProjects:    10,
		MaxStorageGB:   10,
		AIRequestQuota: 100,
		PriceMonthly:   19,
		Features:       []string{"10 projects", "5 team members", "10 GB storage", "100 AI drafts / month", "CRM integration"},
	},
	{
		ID:             "professional",
		Name:           "Professional",
		MaxUsers:       25,
		MaxProjects:    50,
		MaxStorageGB:   100,
		AIRequestQuota: 1000,
		PriceMonthly:   49,
		Features:       []string{"50 projects", "25 team members", "100 GB storage", "1000 AI drafts / month", "CRM + Slack integration", "Priority support"},
	},
	{
		ID:             "enterprise",
		Name:           "Enterprise",
		MaxUsers:       100,
		MaxProjects:    Unlimited,
		MaxStorageGB:   1000,
		AIRequestQuota: Unlimited,
		PriceMonthly:   199,
		Features:       []string{"Unlimited projects", "100 team members", "1 TB storage", "Unlimited AI drafts", "All integrations", "SSO"},
	},
}

// Scale is the contact-sales tier recommended when an organization outgrows
// the top fixed catalog entry. It is not part of Catalog ordering.
var Scale = Tier{
	ID:             "scale",
	Name:           "Scale",
	MaxUsers:       Unlimited,
	MaxProjects:    Unlimited,
	MaxStorageGB:   Unlimited,
	AIRequestQuota: Unlimited,
	PriceMonthly:   0,
	Features:       []string{"Custom limits", "Dedicated support", "Custom contract"},
}

// aliases maps deprecated tier identifiers to their current canonical ID.
var aliases = map[string]string{
	"team":               "solo",
	"enterprise-starter": "professional",
	"enterprise-pro":     "professional",
	"unlimited":          "enterprise",
	"pro":                "professional",
}

// NormalizeID resolves legacy tier aliases to the current identifier.
// Identifiers without an alias entry pass through unchanged.
func NormalizeID(id string) string {
	if canonical, ok := aliases[strings.ToLower(strings.TrimSpace(id))]; ok {
		return canonical
	}
	return id
}

// ByID looks up a tier by identifier, resolving aliases first. The lookup
// itself is case and whitespace insensitive.
func ByID(id string) (Tier, bool) {
	key := strings.ToLower(strings.TrimSpace(NormalizeID(id)))
	for _, t := range Catalog {
		if t.ID == key {
			return t, true
		}
	}
	if key == Scale.ID {
		return Scale, true
	}
	return Tier{}, false
}

// Next returns the tier immediately following id in catalog order. Past the
// top fixed tier it returns the scaling tier; past that, nil.
func Next(id string) *Tier {
	key := strings.ToLower(strings.TrimSpace(NormalizeID(id)))
	for i, t := range Catalog {
		if t.ID != key {
			continue
		}
		if i+1 < len(Catalog) {
			next := Catalog[i+1]
			return &next
		}
		scale := Scale
		return &scale
	}
	return nil
}
