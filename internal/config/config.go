package config

// Config represents the service configuration
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Port     int    `envconfig:"PORT" default:"8080"`

	// Base URL used for OAuth redirect URIs and post-callback redirects
	AppBaseURL string `envconfig:"APP_BASE_URL" default:"http://localhost:3000"`

	// Chat completion provider
	AIEndpoint   string `envconfig:"AI_ENDPOINT" default:"https://oi-server.onrender.com/chat/completions"`
	AIAPIKey     string `envconfig:"AI_API_KEY"`
	AIModel      string `envconfig:"AI_MODEL" default:"openrouter/claude-sonnet-4"`
	AICustomerID string `envconfig:"AI_CUSTOMER_ID"`

	// OAuth state / connection store backend: "memory" or "redis"
	StateStore string `envconfig:"STATE_STORE" default:"memory"`
	RedisAddr  string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB    int    `envconfig:"REDIS_DB" default:"0"`

	// Knowledge document store backend: "memory" or "gcp"
	KBStorageType string `envconfig:"KB_STORAGE_TYPE" default:"memory"`
	GCPBucket     string `envconfig:"GCP_STORAGE_BUCKET"`
	GCPProject    string `envconfig:"GCP_PROJECT_ID"`
	GCPKeyFile    string `envconfig:"GCP_KEY_FILE"`

	OAuth OAuthCredentials
}

// OAuthCredentials holds per-platform client credentials. The demo
// defaults keep the authorize-URL flow working without operator secrets;
// real token exchange requires the env vars to be set.
type OAuthCredentials struct {
	SalesforceClientID     string `envconfig:"SALESFORCE_CLIENT_ID" default:"apex_ai_salesforce_client"`
	SalesforceClientSecret string `envconfig:"SALESFORCE_CLIENT_SECRET" default:"demo_secret"`

	Microsoft365ClientID     string `envconfig:"MICROSOFT365_CLIENT_ID" default:"apex_ai_ms365_client"`
	Microsoft365ClientSecret string `envconfig:"MICROSOFT365_CLIENT_SECRET" default:"demo_secret"`

	GoogleClientID     string `envconfig:"GOOGLE_CLIENT_ID" default:"apex_ai_google_client"`
	GoogleClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET" default:"demo_secret"`

	SlackClientID     string `envconfig:"SLACK_CLIENT_ID" default:"apex_ai_slack_client"`
	SlackClientSecret string `envconfig:"SLACK_CLIENT_SECRET" default:"demo_secret"`

	ZoomClientID     string `envconfig:"ZOOM_CLIENT_ID" default:"apex_ai_zoom_client"`
	ZoomClientSecret string `envconfig:"ZOOM_CLIENT_SECRET" default:"demo_secret"`

	JiraClientID     string `envconfig:"JIRA_CLIENT_ID" default:"apex_ai_jira_client"`
	JiraClientSecret string `envconfig:"JIRA_CLIENT_SECRET" default:"demo_secret"`
}

// ClientCredentials returns the client id/secret pair for a platform id.
// Unknown platforms get empty credentials.
func (o OAuthCredentials) ClientCredentials(platform string) (string, string) {
	switch platform {
	case "salesforce":
		return o.SalesforceClientID, o.SalesforceClientSecret
	case "microsoft365":
		return o.Microsoft365ClientID, o.Microsoft365ClientSecret
	case "google", "google_workspace":
		return o.GoogleClientID, o.GoogleClientSecret
	case "slack":
		return o.SlackClientID, o.SlackClientSecret
	case "zoom":
		return o.ZoomClientID, o.ZoomClientSecret
	case "jira":
		return o.JiraClientID, o.JiraClientSecret
	}
	return "", ""
}
