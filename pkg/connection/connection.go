// Package connection provides database connections for the shell. A
// connection executes opaque SQL text against a remote endpoint and returns
// a StatementResult; it knows nothing about rendering or the REPL.
package connection

import (
	"context"

	"github.com/hpolloni/rdsline/pkg/results"
)

// Connection executes statements against a database.
type Connection interface {
	// Execute runs one SQL statement and returns its result. The statement
	// text is passed through verbatim; no client-side parsing happens.
	Execute(ctx context.Context, sql string) (results.StatementResult, error)

	// Describe returns a human-readable description of the connection,
	// printed by the .show command.
	Describe() string
}

// Noop is the connection used before any profile is configured. It never
// fails and never reaches the network.
type Noop struct{}

// Execute implements Connection.
func (Noop) Execute(_ context.Context, _ string) (results.StatementResult, error) {
	return &results.NullResult{}, nil
}

// Describe implements Connection.
func (Noop) Describe() string {
	return "NoopConnection"
}
