package security

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// TLSConfig carries the transport TLS settings a deployment may need when
// its identity provider sits behind a private CA or requires mutual TLS.
// A nil pointer and the zero value both mean "use Go's defaults".
type TLSConfig struct {
	// SkipVerify disables server certificate verification. Test
	// environments only.
	SkipVerify bool `yaml:"skip_verify" mapstructure:"skip_verify"`

	// CAFile points at a PEM bundle that replaces the system roots when
	// verifying the provider.
	CAFile string `yaml:"ca_file" mapstructure:"ca_file"`

	// CertFile and KeyFile hold the client certificate pair for mutual
	// TLS. Set both or neither.
	CertFile string `yaml:"cert_file" mapstructure:"cert_file"`
	KeyFile  string `yaml:"key_file" mapstructure:"key_file"`

	// ServerName overrides the hostname checked during verification.
	ServerName string `yaml:"server_name" mapstructure:"server_name"`

	// MinVersion is a tls.VersionTLS* constant. Defaults to TLS 1.2.
	MinVersion uint16 `yaml:"min_version" mapstructure:"min_version"`
}

// IsEnabled reports whether any setting deviates from the defaults.
func (c *TLSConfig) IsEnabled() bool {
	return c != nil && (c.SkipVerify || c.CAFile != "" || c.CertFile != "" || c.ServerName != "")
}

// Validate rejects a client certificate pair with one half missing.
func (c *TLSConfig) Validate() error {
	if c == nil {
		return nil
	}
	if (c.CertFile == "") != (c.KeyFile == "") {
		return fmt.Errorf("security/tls: cert_file and key_file must be set together")
	}
	return nil
}

// Build renders the settings into a *tls.Config for an HTTP transport.
// A nil receiver or an all-default config yields (nil, nil), which keeps
// the transport on Go's own defaults.
func (c *TLSConfig) Build() (*tls.Config, error) {
	if !c.IsEnabled() {
		return nil, nil
	}

	cfg := &tls.Config{InsecureSkipVerify: c.SkipVerify, ServerName: c.ServerName, MinVersion: c.MinVersion}
	if cfg.MinVersion == 0 {
		cfg.MinVersion = tls.VersionTLS12
	}

	if c.CAFile != "" {
		caPEM, err := os.ReadFile(c.CAFile)
		if err != nil {
			return nil, fmt.Errorf("security/tls: read CA file: %w", err)
		}
		roots := x509.NewCertPool()
		if !roots.AppendCertsFromPEM(caPEM) {
			return nil, fmt.Errorf("security/tls: no certificates in %s", c.CAFile)
		}
		cfg.RootCAs = roots
	}

	if c.CertFile != "" {
		pair, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("security/tls: load client key pair: %w", err)
		}
		cfg.Certificates = []tls.Certificate{pair}
	}

	return cfg, nil
}
