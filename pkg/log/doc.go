/*
Package log provides structured logging for traindeck, built on zerolog.

Call Init once at process start, then use the global Logger or the
With* helpers to derive component-scoped child loggers:

	log.Init(log.Config{Level: log.InfoLevel})
	logger := log.WithComponent("submit")
	logger.Info().Str("app_id", id).Msg("app submitted")

Output defaults to a human-readable console writer on stderr; set
JSONOutput for machine-parseable logs.
*/
package log
