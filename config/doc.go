// Package config provides configuration loading for services that embed
// the auth flow.
//
// It uses Viper to merge YAML config files with environment variables, and
// godotenv to pick up .env files in development. Services embed
// ServiceConfig in their own config structs and call LoadConfig:
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    OIDC oidc.Config `yaml:"oidc" mapstructure:"oidc"`
//	}
//
//	var cfg AppConfig
//	err := config.LoadConfig("login-svc", &cfg)
//
// Environment variables are bound automatically: OIDC_CLIENT_ID becomes
// oidc.client_id, LOGGING_LEVEL becomes logging.level, and so on.
package config
