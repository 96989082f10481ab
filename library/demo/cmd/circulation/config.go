package main

import (
	"flag"
	"fmt"
	"log"
)

const (
	engineMemory   = "memory"
	enginePostgres = "postgres"

	serviceVersion = "0.1.0"
)

// Config holds the demo configuration parameters.
type Config struct {
	Engine               string
	ObservabilityEnabled bool
	Debug                bool
}

// parseFlags parses command line flags and returns configuration.
func parseFlags() Config {
	var (
		engine        = flag.String("engine", engineMemory, "Catalog engine: memory or postgres")
		observability = flag.Bool("observability-enabled", false, "Export traces and metrics via OTLP")
		debug         = flag.Bool("debug", false, "Log every store operation")
	)

	flag.Parse()

	if err := validateEngine(*engine); err != nil {
		log.Fatal(err)
	}

	return Config{
		Engine:               *engine,
		ObservabilityEnabled: *observability,
		Debug:                *debug,
	}
}

func validateEngine(engine string) error {
	switch engine {
	case engineMemory, enginePostgres:
		return nil
	default:
		return fmt.Errorf("unknown engine %q (supported: %s, %s)", engine, engineMemory, enginePostgres)
	}
}
