package apiv1

// Pong is the health check response body.
type Pong struct {
	Ping string `json:"ping"`
}

// ProjectSummary is the public shape of a project resource.
type ProjectSummary struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Industry    string `json:"industry"`
	Status      string `json:"status"`
}

// DashboardConfig is the public shape of a project's widget configuration.
// Widgets is null when the project has never been configured.
type DashboardConfig struct {
	ProjectUUID string   `json:"project_uuid"`
	Configured  bool     `json:"configured"`
	Widgets     []string `json:"widgets"`
}

// PutDashboardRequest is the body accepted by the dashboard update endpoint.
type PutDashboardRequest struct {
	Widgets []string `json:"widgets"`
}
