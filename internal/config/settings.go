// Package config holds orcheo's run configuration: which language model and
// connector mode to run with, per-service credentials for real connectors,
// and sandbox resource limits.
package config

// ConnectorMode selects whether a run dispatches against the in-memory
// simulator or real, credentialed connectors.
type ConnectorMode string

const (
	// ConnectorModeSimulated routes every service through internal/simulator.
	ConnectorModeSimulated ConnectorMode = "simulated"
	// ConnectorModeHybrid resolves each service independently: a service
	// with credentials configured gets the real connector, one without
	// silently falls back to the simulator.
	ConnectorModeHybrid ConnectorMode = "hybrid"
	// ConnectorModeReal resolves services identically to hybrid, but
	// callers are expected to verify the resulting service.Map contains no
	// simulator fallback before treating the run as fully real (see
	// Registry.VerifyNoSimulatedFallback).
	ConnectorModeReal ConnectorMode = "real"
)

// Settings is the full run configuration, loaded from a YAML file and
// validated before use.
type Settings struct {
	ModelID       string        `yaml:"model_id" validate:"required"`
	ConnectorMode ConnectorMode `yaml:"connector_mode" validate:"required,oneof=simulated hybrid real"`

	AnthropicAPIKey string `yaml:"anthropic_api_key,omitempty"`

	HR     HRSettings     `yaml:"hr,omitempty"`
	Google GoogleSettings `yaml:"google,omitempty"`
	Slack  SlackSettings  `yaml:"slack,omitempty"`
	Jira   JiraSettings   `yaml:"jira,omitempty"`
	GitHub GitHubSettings `yaml:"github,omitempty"`

	Sandbox SandboxSettings `yaml:"sandbox,omitempty"`

	CustomConnectorDir string `yaml:"custom_connector_dir,omitempty"`
	WorkflowStoreRoot  string `yaml:"workflow_store_root,omitempty"`
}

// HRSettings configures the generic HR webhook connector.
type HRSettings struct {
	BaseURL string `yaml:"base_url,omitempty" validate:"omitempty,url"`
	APIKey  string `yaml:"api_key,omitempty"`
}

// IsConfigured reports whether every required HR credential is present.
func (s HRSettings) IsConfigured() bool { return s.BaseURL != "" && s.APIKey != "" }

// GoogleSettings configures the Google Workspace Admin SDK connector.
type GoogleSettings struct {
	ServiceAccountJSON string `yaml:"service_account_json,omitempty"`
	AdminEmail         string `yaml:"admin_email,omitempty" validate:"omitempty,email"`
	Domain             string `yaml:"domain,omitempty"`
}

// IsConfigured reports whether every required Google credential is present.
func (s GoogleSettings) IsConfigured() bool {
	return s.ServiceAccountJSON != "" && s.AdminEmail != ""
}

// SlackSettings configures the Slack Web API connector.
type SlackSettings struct {
	BotToken string `yaml:"bot_token,omitempty"`
}

// IsConfigured reports whether every required Slack credential is present.
func (s SlackSettings) IsConfigured() bool { return s.BotToken != "" }

// JiraSettings configures the Jira Cloud REST API connector.
type JiraSettings struct {
	BaseURL    string `yaml:"base_url,omitempty" validate:"omitempty,url"`
	Email      string `yaml:"email,omitempty" validate:"omitempty,email"`
	APIToken   string `yaml:"api_token,omitempty"`
	ProjectKey string `yaml:"project_key,omitempty"`
}

// IsConfigured reports whether every required Jira credential is present.
func (s JiraSettings) IsConfigured() bool {
	return s.BaseURL != "" && s.Email != "" && s.APIToken != ""
}

// GitHubSettings configures the GitHub REST API connector.
type GitHubSettings struct {
	Token string `yaml:"token,omitempty"`
	Org   string `yaml:"org,omitempty"`
}

// IsConfigured reports whether every required GitHub credential is present.
func (s GitHubSettings) IsConfigured() bool { return s.Token != "" && s.Org != "" }

// SandboxSettings bounds the Sandboxed Command Tool's resource usage.
type SandboxSettings struct {
	TimeoutSeconds int      `yaml:"timeout_seconds,omitempty" validate:"omitempty,min=1,max=600"`
	OutputBudget   int      `yaml:"output_budget_bytes,omitempty" validate:"omitempty,min=1024"`
	AllowedEnv     []string `yaml:"allowed_env,omitempty"`
	WorkspaceRoot  string   `yaml:"workspace_root,omitempty"`
}

// DefaultSandboxSettings returns the settings applied when a config file
// omits the sandbox section entirely.
func DefaultSandboxSettings() SandboxSettings {
	return SandboxSettings{
		TimeoutSeconds: 30,
		OutputBudget:   64 * 1024,
		WorkspaceRoot:  ".",
	}
}
