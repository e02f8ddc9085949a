// Package model defines the domain types for the screensplit CLI.
//
// All entities in this package are the data passed between the layout
// validator, the subnet partitioner, the pixel range calculator and the
// report emitter.
package model

import (
	"errors"
	"fmt"
	"net/netip"
)

const (
	// DefaultWidth is the screen width used when nothing else is configured.
	DefaultWidth = 1920

	// DefaultHeight is the screen height used when nothing else is configured.
	DefaultHeight = 1080

	// DefaultServers is the server count used when nothing else is configured.
	DefaultServers = 16

	// DefaultNetwork is the base /64 carved into per-server subnets.
	DefaultNetwork = "2000:42::/64"

	// RequiredPrefixBits is the only accepted base network prefix length.
	// Pixelflut-v6 addresses use the lower 64 bits for pixel data.
	RequiredPrefixBits = 64

	// MaxDimension bounds width and height. Pixel coordinates travel as
	// 16-bit values inside the destination address.
	MaxDimension = 1 << 16
)

// Layout is the resolved configuration for one run: the screen geometry,
// the number of servers and the base network.
type Layout struct {
	// Width is the horizontal resolution of the screen in pixels.
	Width int `json:"width" yaml:"width" mapstructure:"width"`

	// Height is the vertical resolution. It does not influence the
	// vertical slicing but is validated and reported.
	Height int `json:"height" yaml:"height" mapstructure:"height"`

	// Servers is the number of servers sharing the screen.
	// Must be a power of two.
	Servers int `json:"servers" yaml:"servers" mapstructure:"servers"`

	// Network is the base IPv6 network, split into one subnet per server.
	Network netip.Prefix `json:"network" yaml:"network" mapstructure:"network"`
}

// DefaultLayout returns the layout of the reference display wall:
// 1920x1080 split across 16 servers inside 2000:42::/64.
func DefaultLayout() Layout {
	return Layout{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Servers: DefaultServers,
		Network: netip.MustParsePrefix(DefaultNetwork),
	}
}

// String returns a compact human-readable representation of the layout.
// Format: "1920x1080 / 16 servers / 2000:42::/64"
func (l Layout) String() string {
	return fmt.Sprintf("%dx%d / %d servers / %s", l.Width, l.Height, l.Servers, l.Network)
}

// PixelRange is an inclusive horizontal span of pixel columns.
type PixelRange struct {
	// Start is the first column of the range.
	Start int `json:"start" yaml:"start"`

	// End is the last column of the range (inclusive).
	End int `json:"end" yaml:"end"`
}

// Width returns the number of columns covered by the range.
func (r PixelRange) Width() int {
	return r.End - r.Start + 1
}

// Contains reports whether column x lies inside the range.
func (r PixelRange) Contains(x int) bool {
	return x >= r.Start && x <= r.End
}

// Assignment is one row of the assignment table: a server, the subnet it
// answers on and the vertical slice of the screen it draws.
type Assignment struct {
	// Index is the 0-based server index.
	Index int `json:"index" yaml:"index"`

	// Subnet is the server's slice of the base network.
	Subnet netip.Prefix `json:"subnet" yaml:"subnet"`

	// X is the inclusive pixel column range owned by the server.
	X PixelRange `json:"x" yaml:"x"`
}

// String renders the assignment as a single table line.
// Format: "Server 0 has subnet 2000:42::/68 with x ranging from 0 to 119"
func (a Assignment) String() string {
	return fmt.Sprintf("Server %d has subnet %s with x ranging from %d to %d",
		a.Index, a.Subnet, a.X.Start, a.X.End)
}

// Sentinel errors, one per layout invariant. ValidationError wraps exactly
// one of them so callers can use errors.Is.
var (
	ErrNotPowerOfTwo  = errors.New("server count is not a power of two")
	ErrTooManyServers = errors.New("server count is not less than the screen width")
	ErrPrefixLength   = errors.New("network prefix length is not /64")
	ErrUnevenChunks   = errors.New("screen width is not a multiple of the server count")
	ErrNotIPv6        = errors.New("network is not an IPv6 prefix")
	ErrHostBits       = errors.New("network has host bits set")
	ErrOutOfBounds    = errors.New("value out of bounds")
	ErrPrefixOverflow = errors.New("subnet prefix exceeds 128 bits")
)

// ValidationError describes one violated layout invariant.
type ValidationError struct {
	// Field is the configuration key that failed validation (e.g., "servers").
	Field string

	// Message describes what's wrong with the field value.
	Message string

	// Err is the sentinel identifying the invariant.
	Err error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid layout: %s: %s", e.Field, e.Message)
}

// Unwrap exposes the sentinel for errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field string, sentinel error, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Err:     sentinel,
	}
}

// ExitCode defines standard CLI exit codes. These codes allow scripts and
// CI systems to programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInvalidLayout indicates that a layout invariant was violated.
	ExitInvalidLayout ExitCode = 2

	// ExitConfigError indicates the configuration could not be read or decoded.
	ExitConfigError ExitCode = 3

	// ExitLookupFailed indicates that a pixel column or address does not
	// belong to any server.
	ExitLookupFailed ExitCode = 4
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
