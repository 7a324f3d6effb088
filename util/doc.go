// Package util holds small helpers shared across the module.
//
// MaskSecret keeps token and credential material out of log output:
//
//	logger.FieldAccessToken, util.MaskSecret(token.AccessToken, 4)
package util
