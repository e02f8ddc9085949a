// Package model defines the domain types and value objects for the
// screensplit CLI.
//
// This package contains pure data structures with no external dependencies.
// A Layout describes the screen and the base network; an Assignment is one
// row of the resulting table. Assignments are derived on every run and never
// persisted.
//
// The package also defines exit codes (ExitCode), a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling,
// and ValidationError with one sentinel per layout invariant.
package model
