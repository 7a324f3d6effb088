package httpclient

import "github.com/skillsenselab/authflow/security"

// TLSConfig aliases the shared TLS settings so callers configure the
// transport without importing the security package themselves.
type TLSConfig = security.TLSConfig
