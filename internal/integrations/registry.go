package integrations

// OAuthConfig describes a platform's OAuth2 endpoints.
type OAuthConfig struct {
	AuthURL     string   `json:"auth_url"`
	TokenURL    string   `json:"token_url"`
	ClientID    string   `json:"client_id"`
	Scopes      []string `json:"scopes"`
	RedirectURI string   `json:"redirect_uri"`
}

// Integration is a static platform descriptor. Connection state lives in
// the ConnectionStore, not here.
type Integration struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Type         string       `json:"type"`
	Status       string       `json:"status"`
	OAuthConfig  *OAuthConfig `json:"oauth_config,omitempty"`
	Capabilities []string     `json:"capabilities"`

	// callbackID is the path segment used on the OAuth callback route;
	// it differs from ID for google_workspace.
	callbackID string
}

// Catalog builds the supported-integration descriptors with redirect
// URIs rooted at the given application base URL.
func Catalog(baseURL string) []Integration {
	callback := func(platform string) string {
		return baseURL + "/api/integrations/callback/" + platform
	}

	return []Integration{
		{
			ID:         "salesforce",
			Name:       "Salesforce CRM",
			Type:       "oauth2",
			Status:     "available",
			callbackID: "salesforce",
			OAuthConfig: &OAuthConfig{
				AuthURL:     "https://login.salesforce.com/services/oauth2/authorize",
				TokenURL:    "https://login.salesforce.com/services/oauth2/token",
				ClientID:    "apex_ai_salesforce_client",
				Scopes:      []string{"api", "refresh_token", "offline_access", "full"},
				RedirectURI: callback("salesforce"),
			},
			Capabilities: []string{
				"Lead Management",
				"Opportunity Tracking",
				"Account Synchronization",
				"Task Automation",
				"Report Generation",
				"Data Analytics",
				"Workflow Automation",
			},
		},
		{
			ID:         "microsoft365",
			Name:       "Microsoft Office 365",
			Type:       "oauth2",
			Status:     "available",
			callbackID: "microsoft365",
			OAuthConfig: &OAuthConfig{
				AuthURL:  "https://login.microsoftonline.com/common/oauth2/v2.0/authorize",
				TokenURL: "https://login.microsoftonline.com/common/oauth2/v2.0/token",
				ClientID: "apex_ai_ms365_client",
				Scopes: []string{
					"https://graph.microsoft.com/Mail.ReadWrite",
					"https://graph.microsoft.com/Calendars.ReadWrite",
					"https://graph.microsoft.com/Files.ReadWrite.All",
					"https://graph.microsoft.com/User.Read",
					"offline_access",
				},
				RedirectURI: callback("microsoft365"),
			},
			Capabilities: []string{
				"Email Automation",
				"Calendar Management",
				"Document Processing",
				"Meeting Scheduling",
				"Contact Synchronization",
				"OneDrive Integration",
				"Teams Integration",
			},
		},
		{
			ID:         "google_workspace",
			Name:       "Google Workspace",
			Type:       "oauth2",
			Status:     "available",
			callbackID: "google",
			OAuthConfig: &OAuthConfig{
				AuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
				TokenURL: "https://oauth2.googleapis.com/token",
				ClientID: "apex_ai_google_client",
				Scopes: []string{
					"https://www.googleapis.com/auth/gmail.modify",
					"https://www.googleapis.com/auth/calendar",
					"https://www.googleapis.com/auth/drive.file",
					"https://www.googleapis.com/auth/userinfo.email",
				},
				RedirectURI: callback("google"),
			},
			Capabilities: []string{
				"Gmail Intelligence",
				"Calendar AI",
				"Drive Document Analysis",
				"Contact Management",
				"Meeting Automation",
				"Workspace Analytics",
			},
		},
		{
			ID:         "slack",
			Name:       "Slack Communications",
			Type:       "oauth2",
			Status:     "available",
			callbackID: "slack",
			OAuthConfig: &OAuthConfig{
				AuthURL:  "https://slack.com/oauth/v2/authorize",
				TokenURL: "https://slack.com/api/oauth.v2.access",
				ClientID: "apex_ai_slack_client",
				Scopes: []string{
					"channels:read",
					"chat:write",
					"users:read",
					"reactions:write",
					"files:read",
				},
				RedirectURI: callback("slack"),
			},
			Capabilities: []string{
				"Automated Responses",
				"Channel Monitoring",
				"Meeting Summaries",
				"Team Analytics",
				"File Intelligence",
				"Workflow Triggers",
			},
		},
		{
			ID:         "zoom",
			Name:       "Zoom Video Conferencing",
			Type:       "oauth2",
			Status:     "available",
			callbackID: "zoom",
			OAuthConfig: &OAuthConfig{
				AuthURL:  "https://zoom.us/oauth/authorize",
				TokenURL: "https://zoom.us/oauth/token",
				ClientID: "apex_ai_zoom_client",
				Scopes: []string{
					"meeting:write",
					"meeting:read",
					"recording:read",
					"user:read",
				},
				RedirectURI: callback("zoom"),
			},
			Capabilities: []string{
				"Meeting Transcription",
				"Automated Scheduling",
				"Recording Analysis",
				"Attendance Tracking",
				"Follow-up Generation",
				"Meeting Intelligence",
			},
		},
		{
			ID:         "jira",
			Name:       "Jira Project Management",
			Type:       "oauth2",
			Status:     "available",
			callbackID: "jira",
			OAuthConfig: &OAuthConfig{
				AuthURL:  "https://auth.atlassian.com/authorize",
				TokenURL: "https://auth.atlassian.com/oauth/token",
				ClientID: "apex_ai_jira_client",
				Scopes: []string{
					"read:jira-work",
					"write:jira-work",
					"read:jira-user",
				},
				RedirectURI: callback("jira"),
			},
			Capabilities: []string{
				"Automated Ticket Creation",
				"Sprint Planning Assistance",
				"Progress Tracking",
				"Workflow Optimization",
				"Team Performance Analytics",
				"Epic Management",
			},
		},
	}
}

func findIntegration(catalog []Integration, id string) *Integration {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}

func findByCallbackID(catalog []Integration, platform string) *Integration {
	for i := range catalog {
		if catalog[i].callbackID == platform {
			return &catalog[i]
		}
	}
	return nil
}
