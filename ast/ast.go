// Package ast defines the in-memory form of bank statement exports: statements,
// their transaction records, calendar dates and source positions.
//
// Money is an exact decimal amount, never a float, so that summing many records
// never drifts. Statements are treated as values: operations that merge or split them return
// new statements and leave their inputs untouched.
package ast
