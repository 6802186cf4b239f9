package fault

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

// withHook installs h for the duration of the test.
func withHook(t *testing.T, h Hook) {
	t.Helper()
	prev := SetHook(h)
	t.Cleanup(func() { SetHook(prev) })
}

func recovered(fn func()) (v any) {
	defer func() { v = recover() }()
	fn()
	return nil
}

func TestCatchReturnsValue(t *testing.T) {
	got, err := Catch(func() string { return "ok" })
	require.NoError(t, err)
	require.Equal(t, "ok", got)
}

func TestCatchConvertsPanic(t *testing.T) {
	var reports []Report
	withHook(t, func(r Report) { reports = append(reports, r) })

	cause := errors.New("boom")
	got, err := Catch(func() int { panic(cause) })
	require.Zero(t, got)

	var p *Panic
	require.True(t, errors.As(err, &p))
	require.Equal(t, cause, p.Value)
	require.NotEmpty(t, p.Stack)
	require.True(t, errors.Is(err, cause))

	// the silent hook swallowed the report
	require.Empty(t, reports)
}

func TestCatchRestoresHook(t *testing.T) {
	calls := 0
	withHook(t, func(Report) { calls++ })

	_, err := Catch(func() int { panic("first") })
	require.Error(t, err)
	_, err = Catch(func() int { return 1 })
	require.NoError(t, err)

	report(Report{Value: "outside"})
	require.Equal(t, 1, calls)
}

func TestCatchNested(t *testing.T) {
	out, err := Catch(func() string {
		_, inner := Catch(func() int { panic("inner") })
		require.Error(t, inner)
		return "outer"
	})
	require.NoError(t, err)
	require.Equal(t, "outer", out)
}

func TestCatchDetectsReplacedHook(t *testing.T) {
	calls := 0
	withHook(t, func(Report) { calls++ })

	v := recovered(func() {
		_, _ = Catch(func() int {
			SetHook(func(Report) {})
			return 0
		})
	})
	require.NotNil(t, v)
	require.True(t, IsIntegrityViolation(v))

	// the hook in place before the guarded call is back
	report(Report{Value: "after"})
	require.Equal(t, 1, calls)
}

func TestIntegrityViolationIsNotAbsorbed(t *testing.T) {
	v := recovered(func() {
		_, _ = Catch(func() int {
			_, _ = Catch(func() int {
				TakeHook()
				return 0
			})
			return 1
		})
	})
	require.True(t, IsIntegrityViolation(v))
}

func TestIsIntegrityViolation(t *testing.T) {
	require.False(t, IsIntegrityViolation("text"))
	require.False(t, IsIntegrityViolation(errors.New("other")))
	require.True(t, IsIntegrityViolation(errors.Wrap(ErrIntegrity, "wrapped")))
}
