package result

import "fmt"

// Kind classifies expected command failures. The transport adapter maps each
// kind to a protocol status; this package only produces the kind.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindBadCommand         Kind = "bad_command"
	KindInsufficientRights Kind = "insufficient_rights"
)

// Failure describes why a command was rejected.
type Failure struct {
	Kind    Kind
	Entity  string // populated for KindNotFound
	Message string
}

func (f *Failure) Error() string {
	if f.Entity != "" {
		return fmt.Sprintf("%s: %s: %s", f.Kind, f.Entity, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Unit is the value type of commands that report nothing on success.
type Unit = struct{}

// Result is a tagged success/failure value. Expected failure paths travel as
// Failure values rather than errors so callers always branch on the tag.
type Result[T any] struct {
	value   T
	failure *Failure
}

// Success wraps a value in a succeeded Result.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// OK is shorthand for a succeeded Result carrying no value.
func OK() Result[Unit] {
	return Success(Unit{})
}

// Fail wraps an existing Failure.
func Fail[T any](f *Failure) Result[T] {
	return Result[T]{failure: f}
}

// NotFound reports a missing entity by type and identifier.
func NotFound[T any](entity, id string) Result[T] {
	return Fail[T](&Failure{Kind: KindNotFound, Entity: entity, Message: id})
}

// BadCommand reports a structurally valid command that cannot be applied.
func BadCommand[T any](reason string) Result[T] {
	return Fail[T](&Failure{Kind: KindBadCommand, Message: reason})
}

// InsufficientRights reports that the acting user may not invoke the command.
func InsufficientRights[T any]() Result[T] {
	return Fail[T](&Failure{Kind: KindInsufficientRights, Message: "actor lacks rights for this command"})
}

// Succeeded reports whether the Result carries a value.
func (r Result[T]) Succeeded() bool {
	return r.failure == nil
}

// Failed reports whether the Result carries a Failure.
func (r Result[T]) Failed() bool {
	return r.failure != nil
}

// Value returns the success value; the zero value when the Result failed.
func (r Result[T]) Value() T {
	return r.value
}

// Failure returns the failure tag, nil on success.
func (r Result[T]) Failure() *Failure {
	return r.failure
}

// Recast forwards a failure into a Result of a different value type. It
// panics on a succeeded Result since there is no value to carry over.
func Recast[T, U any](r Result[T]) Result[U] {
	if r.failure == nil {
		panic("result: recast of succeeded result")
	}
	return Fail[U](r.failure)
}
