// Package security provides shared TLS primitives for outbound connections.
//
// Identity providers frequently sit behind private CAs or require mutual
// TLS; TLSConfig covers both without callers touching crypto/tls directly:
//
//	tlsConfig, err := (&security.TLSConfig{
//	    CAFile:   "/etc/authflow/op-ca.pem",
//	    CertFile: "/etc/authflow/client.pem",
//	    KeyFile:  "/etc/authflow/client.key",
//	}).Build()
//
// A nil or zero-value TLSConfig builds to nil, which keeps the default
// http.Transport behavior.
package security
