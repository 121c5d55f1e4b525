package models

// SubscriptionsConfig represents the structure of the subscriptions.json file.
// It's a map where keys are bilibili UIDs (as decimal strings).
type SubscriptionsConfig map[string]Subscription

// Subscription represents the delivery targets for a single tracked account.
type Subscription struct {
	Name     string   `json:"name" mapstructure:"name"`
	Channels []string `json:"channels" mapstructure:"channels"`
}

// CommandsConfig represents the "commands" section of config.yaml.
type CommandsConfig struct {
	Auth AuthConfig `json:"auth" mapstructure:"auth"`
}

// AuthConfig lists who may run privileged commands.
type AuthConfig struct {
	Developers  []string `json:"developers" mapstructure:"developers"`
	AdminsRoles []string `json:"admins_roles" mapstructure:"admins_roles"`
	Guest       []string `json:"guest" mapstructure:"guest"`
}
