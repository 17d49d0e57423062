package constants

// Static route constants
const (
	PublicRoute = "/"
	APIRoute    = "/api"
	APIv1Route  = "/api/v1"
	AuthRoute   = "/auth"
)
