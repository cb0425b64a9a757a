/*
Package log provides structured logging for all redispatch components.

Built on zerolog, it exposes a global logger initialized once at startup
plus helpers that create child loggers scoped to a component, entity,
order, or connection. Console output is the default; JSON output is
intended for production deployments where logs are shipped to a collector.

# Usage

	log.Init(log.Config{Level: log.InfoLevel})

	logger := log.WithComponent("stream")
	logger.Info().Str("entity_id", entityID).Msg("stream opened")

Child loggers are cheap and carry their fields on every line, so per-entity
and per-connection loggers should be created once and reused for the
lifetime of the subscription or connection.
*/
package log
