// Package results provides the result types produced by executing a statement.
package results

import "fmt"

// StatementResult is the outcome of executing one statement against a
// connection. Implementations are plain data; formatting for the terminal
// lives in the render package.
type StatementResult interface {
	// Summary returns the one-line, mode-independent description of the
	// result. Query results are tabular and rendered elsewhere; Summary is
	// what non-tabular results print.
	Summary() string
}

// QueryResult holds the rows returned by a query statement.
//
// Columns are in display order and may contain duplicate names. Every row
// has exactly len(Columns) values, each one of: nil, bool, int64, float64,
// string, time.Time or []byte.
type QueryResult struct {
	Columns []string
	Rows    [][]any
}

// Summary implements StatementResult.
func (r *QueryResult) Summary() string {
	return fmt.Sprintf("%d row(s)", len(r.Rows))
}

// DMLResult is the outcome of a DML/DDL statement: no rows, only a count of
// affected records.
type DMLResult struct {
	RecordsUpdated int64
}

// Summary implements StatementResult.
func (r *DMLResult) Summary() string {
	return fmt.Sprintf("Number of records updated: %d", r.RecordsUpdated)
}

// NullResult signals that no connection is configured yet.
type NullResult struct{}

// Summary implements StatementResult.
func (r *NullResult) Summary() string {
	return "No connection set."
}
