package oauth

import (
	"strings"

	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/dropbox"
	"github.com/markbates/goth/providers/salesforce"
	"github.com/markbates/goth/providers/slack"

	"github.com/stratushq/stratus/internal/pkg/env"
)

// Setup registers the integration providers (CRM, communication and file
// storage) and the cookie store backing the OAuth state. Safe to call
// multiple times; providers are just re-registered.
func Setup() {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	if base == "" {
		base = "http://localhost:" + env.GetEnv("APP_PORT", "4000")
	}

	goth.UseProviders(
		salesforce.New(
			env.GetEnv("SALESFORCE_KEY", ""),
			env.GetEnv("SALESFORCE_SECRET", ""),
			base+"/auth/salesforce/callback",
		),
		slack.New(
			env.GetEnv("SLACK_KEY", ""),
			env.GetEnv("SLACK_SECRET", ""),
			base+"/auth/slack/callback",
			"users:read",
		),
		dropbox.New(
			env.GetEnv("DROPBOX_KEY", ""),
			env.GetEnv("DROPBOX_SECRET", ""),
			base+"/auth/dropbox/callback",
		),
	)

	store := sessions.NewCookieStore([]byte(env.GetEnv("SESSION_SECRET", "stratus-dev-secret")))
	store.Options.HttpOnly = true
	store.MaxAge(600)
	gothic.Store = store
}
