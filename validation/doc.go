// Package validation checks configuration before any network traffic
// happens, in two styles. Validate walks a struct's `validate:"..."` tags
// through go-playground/validator, which covers the declarative cases:
//
//	type ClientConfig struct {
//		ID          string `mapstructure:"id" validate:"required"`
//		RedirectURL string `mapstructure:"redirect_url" validate:"omitempty,url"`
//	}
//	err := validation.Validate(cfg)
//
// Checker covers conditions tags cannot express, collecting every problem
// before reporting:
//
//	err := validation.New().
//		Require("name", cfg.Name).
//		OneOf("environment", cfg.Environment, "development", "production").
//		Err()
//
// Both styles return the same Validation error shape with a per-field
// breakdown in Details.
package validation
