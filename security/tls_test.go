package security

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// testCerts writes a throwaway CA plus a client pair signed by it into a
// temp dir and returns the three paths.
func testCerts(t *testing.T) (caFile, certFile, keyFile string) {
	t.Helper()
	dir := t.TempDir()

	caKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate CA key: %v", err)
	}
	caTmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "authflow test CA"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	caDER, err := x509.CreateCertificate(rand.Reader, caTmpl, caTmpl, &caKey.PublicKey, caKey)
	if err != nil {
		t.Fatalf("create CA cert: %v", err)
	}
	caCert, err := x509.ParseCertificate(caDER)
	if err != nil {
		t.Fatalf("parse CA cert: %v", err)
	}

	leafKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate leaf key: %v", err)
	}
	leafTmpl := &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject:      pkix.Name{CommonName: "localhost"},
		DNSNames:     []string{"localhost"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}
	leafDER, err := x509.CreateCertificate(rand.Reader, leafTmpl, caCert, &leafKey.PublicKey, caKey)
	if err != nil {
		t.Fatalf("create leaf cert: %v", err)
	}
	keyDER, err := x509.MarshalECPrivateKey(leafKey)
	if err != nil {
		t.Fatalf("marshal leaf key: %v", err)
	}

	caFile = writeTestPEM(t, dir, "ca.pem", "CERTIFICATE", caDER)
	certFile = writeTestPEM(t, dir, "cert.pem", "CERTIFICATE", leafDER)
	keyFile = writeTestPEM(t, dir, "key.pem", "EC PRIVATE KEY", keyDER)
	return caFile, certFile, keyFile
}

func writeTestPEM(t *testing.T, dir, name, blockType string, der []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	data := pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestBuildDisabled(t *testing.T) {
	var nilCfg *TLSConfig
	if got, err := nilCfg.Build(); err != nil || got != nil {
		t.Errorf("nil receiver: Build() = %v, %v", got, err)
	}

	zero := &TLSConfig{}
	if got, err := zero.Build(); err != nil || got != nil {
		t.Errorf("zero value: Build() = %v, %v", got, err)
	}
}

func TestBuildSkipVerify(t *testing.T) {
	cfg := &TLSConfig{SkipVerify: true}
	got, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !got.InsecureSkipVerify {
		t.Error("InsecureSkipVerify not set")
	}
	if got.MinVersion != tls.VersionTLS12 {
		t.Errorf("MinVersion = %d, want TLS 1.2 default", got.MinVersion)
	}
}

func TestBuildNameAndVersion(t *testing.T) {
	cfg := &TLSConfig{ServerName: "op.internal", MinVersion: tls.VersionTLS13}
	got, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got.ServerName != "op.internal" {
		t.Errorf("ServerName = %q", got.ServerName)
	}
	if got.MinVersion != tls.VersionTLS13 {
		t.Errorf("MinVersion = %d, want TLS 1.3", got.MinVersion)
	}
}

func TestBuildWithCA(t *testing.T) {
	caFile, _, _ := testCerts(t)
	got, err := (&TLSConfig{CAFile: caFile}).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got.RootCAs == nil {
		t.Error("RootCAs not installed from CA file")
	}
}

func TestBuildWithClientPair(t *testing.T) {
	_, certFile, keyFile := testCerts(t)
	got, err := (&TLSConfig{CertFile: certFile, KeyFile: keyFile}).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(got.Certificates) != 1 {
		t.Errorf("Certificates = %d, want 1", len(got.Certificates))
	}
}

func TestBuildEverything(t *testing.T) {
	caFile, certFile, keyFile := testCerts(t)
	cfg := &TLSConfig{
		CAFile:     caFile,
		CertFile:   certFile,
		KeyFile:    keyFile,
		ServerName: "localhost",
		MinVersion: tls.VersionTLS13,
	}

	got, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got.RootCAs == nil || len(got.Certificates) != 1 {
		t.Error("CA pool or client pair missing")
	}
	if got.ServerName != "localhost" || got.MinVersion != tls.VersionTLS13 {
		t.Errorf("ServerName=%q MinVersion=%d", got.ServerName, got.MinVersion)
	}
}

func TestBuildFailures(t *testing.T) {
	t.Run("missing CA file", func(t *testing.T) {
		if _, err := (&TLSConfig{CAFile: "/does/not/exist.pem"}).Build(); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("CA file without certificates", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "junk.pem")
		if err := os.WriteFile(path, []byte("-----BEGIN CERTIFICATE-----\nnot base64\n-----END CERTIFICATE-----\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := (&TLSConfig{CAFile: path}).Build(); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("missing client pair files", func(t *testing.T) {
		cfg := &TLSConfig{CertFile: "/no/cert.pem", KeyFile: "/no/key.pem"}
		if _, err := cfg.Build(); err == nil {
			t.Error("expected error")
		}
	})
}

func TestValidatePairing(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TLSConfig
		wantErr bool
	}{
		{"nil", nil, false},
		{"empty", &TLSConfig{}, false},
		{"both halves", &TLSConfig{CertFile: "c.pem", KeyFile: "k.pem"}, false},
		{"cert only", &TLSConfig{CertFile: "c.pem"}, true},
		{"key only", &TLSConfig{KeyFile: "k.pem"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  *TLSConfig
		want bool
	}{
		{"nil", nil, false},
		{"zero", &TLSConfig{}, false},
		{"skip verify", &TLSConfig{SkipVerify: true}, true},
		{"ca file", &TLSConfig{CAFile: "ca.pem"}, true},
		{"client cert", &TLSConfig{CertFile: "c.pem"}, true},
		{"server name", &TLSConfig{ServerName: "op.internal"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.IsEnabled(); got != tt.want {
				t.Errorf("IsEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}
