// Package storage defines the persistence boundary for family trees: a
// narrow load/save Repository interface, the error taxonomy shared by every
// backend, and the extension-based format dispatch.
package storage

import (
	"fmt"

	"github.com/jwnbm/familytree/internal/tree"
)

// Repository loads and saves whole trees. Both calls are blocking and
// synchronous; a save either completes or returns an error, never a partial
// result visible to a later load.
type Repository interface {
	Load(path string) (*tree.FamilyTree, error)
	Save(path string, t *tree.FamilyTree) error
}

// Kind classifies a repository failure.
type Kind int

const (
	// KindRead covers unreadable paths, missing files, and connection
	// open failures.
	KindRead Kind = iota
	// KindWrite covers unwritable paths and transaction commit failures.
	KindWrite
	// KindSerialize covers in-memory to wire encoding failures.
	KindSerialize
	// KindDeserialize covers wire to in-memory decoding failures:
	// malformed documents, invalid enum integers, unparseable ids,
	// dangling references.
	KindDeserialize
)

func (k Kind) String() string {
	switch k {
	case KindRead:
		return "read"
	case KindWrite:
		return "write"
	case KindSerialize:
		return "serialize"
	case KindDeserialize:
		return "deserialize"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the typed failure every backend returns. Detail is a
// human-readable diagnostic; Err, when set, is the underlying cause.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// Readf builds a KindRead error from a format string. If the last argument
// is an error it becomes the wrapped cause; format it with %v so the detail
// string carries it too.
func Readf(format string, args ...any) *Error {
	return newError(KindRead, format, args...)
}

// Writef builds a KindWrite error.
func Writef(format string, args ...any) *Error {
	return newError(KindWrite, format, args...)
}

// Serializef builds a KindSerialize error.
func Serializef(format string, args ...any) *Error {
	return newError(KindSerialize, format, args...)
}

// Deserializef builds a KindDeserialize error.
func Deserializef(format string, args ...any) *Error {
	return newError(KindDeserialize, format, args...)
}

func newError(kind Kind, format string, args ...any) *Error {
	var cause error
	if n := len(args); n > 0 {
		if err, ok := args[n-1].(error); ok {
			cause = err
		}
	}
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...), Err: cause}
}
