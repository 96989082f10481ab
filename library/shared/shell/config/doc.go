// Package config provides connection and telemetry configuration for the library application.
//
// It contains factory functions for PostgreSQL connections with each driver the catalog
// engine supports (pgx.Pool, sql.DB, sqlx.DB), plus OpenTelemetry providers that export
// over OTLP gRPC. Endpoints and DSNs come from the environment, optionally loaded from a
// .env file in the working directory.
//
// This package is part of the shell (infrastructure) layer.
package config
