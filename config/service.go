package config

import (
	"fmt"

	"github.com/skillsenselab/authflow/logger"
	"github.com/skillsenselab/authflow/validation"
	"github.com/skillsenselab/authflow/version"
)

// Environments a service may declare.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

var environments = []string{EnvDevelopment, EnvStaging, EnvProduction}

// ServiceConfig is the base block every host config embeds: service
// identity, environment, and logging. Embedding promotes its methods, so
// the host struct picks up defaulting and validation for free.
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    OIDC oidc.Config `yaml:"oidc" mapstructure:"oidc"`
//	}
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// GetServiceConfig exposes the embedded base block to code that only knows
// the outer struct.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig { return c }

// ApplyDefaults fills the base fields. An embedding struct that overrides
// this should call it first.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = EnvDevelopment
	}
	if c.Environment == EnvDevelopment {
		c.Debug = true
	}
	if c.Version == "" {
		c.Version = version.Version
	}
	// The logger stamps every entry with the service name.
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
}

// Validate checks the base fields. An embedding struct that overrides this
// should call it first.
func (c *ServiceConfig) Validate() error {
	err := validation.New().
		Require("name", c.Name).
		Require("environment", c.Environment).
		OneOf("environment", c.Environment, environments...).
		Err()
	if err != nil {
		return err
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
