package domain

import (
	"fmt"
	"strings"
)

// DuplicateKeyError reports an insertion under a key that is already taken.
type DuplicateKeyError struct {
	Key string
}

func (e DuplicateKeyError) Error() string {
	return fmt.Sprintf("configuration key %q has already been added", e.Key)
}

// UnknownKeyError reports a required lookup of a key the registry does not hold.
type UnknownKeyError struct {
	Op  string
	Key string
}

func (e UnknownKeyError) Error() string {
	return fmt.Sprintf("%s: configuration key %q does not exist", e.Op, e.Key)
}

// KindMismatchError reports an operation invoked against the wrong
// implementation kind.
type KindMismatchError struct {
	Key  string
	Want ImplementationKind
	Got  ImplementationKind
}

func (e KindMismatchError) Error() string {
	return fmt.Sprintf("configuration key %q is of kind %s, not %s", e.Key, e.Got, e.Want)
}

// InvalidPayloadError reports a kind-specific semantic validation failure.
type InvalidPayloadError struct {
	Kind   ImplementationKind
	Key    string
	Reason string
}

func (e InvalidPayloadError) Error() string {
	return fmt.Sprintf("%s key %q is not valid: %s", e.Kind, e.Key, e.Reason)
}

// MissingOptionsError reports required KEY:VALUE options absent from a
// configuration statement. Missing lists every absent option name.
type MissingOptionsError struct {
	Keyword string
	Key     string
	Missing []string
}

func (e MissingOptionsError) Error() string {
	return fmt.Sprintf("%s %q: missing required options: %s", e.Keyword, e.Key, strings.Join(e.Missing, ", "))
}

// UnresolvedWildcardError reports a summary wildcard used without a
// reference case to expand it against.
type UnresolvedWildcardError struct {
	Pattern string
}

func (e UnresolvedWildcardError) Error() string {
	return fmt.Sprintf("summary wildcard %q requires a reference case", e.Pattern)
}

// UnknownTransformNameError reports a transform name missing from the
// transform table.
type UnknownTransformNameError struct {
	Name string
}

func (e UnknownTransformNameError) Error() string {
	return fmt.Sprintf("transform function %q is not in the transform table", e.Name)
}

// UnrecognizedFormatTokenError reports an unknown generated-data file
// format token.
type UnrecognizedFormatTokenError struct {
	Token string
}

func (e UnrecognizedFormatTokenError) Error() string {
	return fmt.Sprintf("unrecognized file format token %q", e.Token)
}
