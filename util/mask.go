package util

const maskMarker = "***"

// MaskSecret renders a secret for logs, keeping at most keep leading
// characters. Values no longer than keep are fully masked, so a short
// secret never leaks through a generous prefix.
func MaskSecret(s string, keep int) string {
	if keep <= 0 || len(s) <= keep {
		return maskMarker
	}
	return s[:keep] + maskMarker
}
