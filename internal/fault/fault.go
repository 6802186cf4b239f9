// Package fault isolates panics raised by rendering code.
//
// A process-wide hook receives a Report for every recovered panic. Catch
// swaps in a silent hook for the duration of one call and checks on the way
// out that nobody replaced it in the meantime; a replaced hook is an
// integrity violation and is never recovered.
package fault

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

// Report describes one recovered panic.
type Report struct {
	Value any
	Stack []byte
}

// Hook receives panic reports.
type Hook func(Report)

// ErrIntegrity marks the fatal condition of the fault hook having been
// replaced while a guarded call was running.
var ErrIntegrity = errors.New("fault hook integrity violation")

var current atomic.Pointer[Hook]

// DefaultHook prints the panic value and stack to stderr.
func DefaultHook(r Report) {
	fmt.Fprintf(os.Stderr, "panic: %v\n%s", r.Value, r.Stack)
}

// SetHook installs h and returns the hook it replaced. A nil h restores
// DefaultHook.
func SetHook(h Hook) Hook {
	if h == nil {
		h = DefaultHook
	}
	return load(current.Swap(&h))
}

// TakeHook restores DefaultHook and returns the hook that was installed.
func TakeHook() Hook {
	return load(current.Swap(nil))
}

func load(p *Hook) Hook {
	if p == nil {
		return DefaultHook
	}
	return *p
}

func report(r Report) {
	load(current.Load())(r)
}

// Panic is the error a recovered panic turns into.
type Panic struct {
	Value any
	Stack []byte
}

func (p *Panic) Error() string {
	return fmt.Sprintf("panic: %v", p.Value)
}

// Unwrap exposes a panic value that is itself an error.
func (p *Panic) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}

// Catch runs fn with a silent hook installed. A panic in fn is reported to
// the hook in place at that moment and returned as a *Panic error. The
// previous hook is restored on every path; if the hook removed is not the
// one Catch installed, Catch panics with an error marked ErrIntegrity.
// Integrity panics from nested calls pass through unchanged.
func Catch[T any](fn func() T) (out T, err error) {
	silent := Hook(func(Report) {})
	installed := &silent
	prev := current.Swap(installed)

	defer func() {
		r := recover()
		var rep Report
		if r != nil {
			rep = Report{Value: r, Stack: debug.Stack()}
			if !IsIntegrityViolation(r) {
				report(rep)
			}
		}
		removed := current.Swap(prev)
		if r != nil && IsIntegrityViolation(r) {
			panic(r)
		}
		if removed != installed {
			panic(errors.Mark(errors.AssertionFailedf("fault hook was replaced during a guarded call"), ErrIntegrity))
		}
		if r != nil {
			var zero T
			out, err = zero, &Panic{Value: rep.Value, Stack: rep.Stack}
		}
	}()

	return fn(), nil
}

// IsIntegrityViolation reports whether a recovered value is the fatal
// integrity error raised by Catch.
func IsIntegrityViolation(v any) bool {
	err, ok := v.(error)
	return ok && errors.Is(err, ErrIntegrity)
}
