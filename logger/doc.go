// Package logger wraps zerolog with the conventions the rest of the
// module relies on: a process-wide logger installed once at startup,
// component-tagged loggers handed to each subsystem, field-name constants
// so every entry spells request_id and grant_type the same way, and
// context helpers that stamp request and trace ids onto entries.
//
// A typical component takes its logger from the registry and writes with
// the Fields builder:
//
//	log := logger.Get("oidc")
//	log.Info("token exchanged", logger.Fields(
//		logger.FieldGrantType, "authorization_code",
//	))
package logger
