package shell

import (
	"context"

	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
)

// Command represents the contract for all command types.
// CommandType identifies the command in metrics, spans and logs.
type Command interface {
	CommandType() string
}

// CommandHandler defines the contract for components that process commands.
// Business outcomes, including rejections and collaborator failures, are reported through core.Result,
// so a command handler never returns an error.
type CommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) core.Result
}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

// QueryHandler defines the contract for components that answer queries.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
