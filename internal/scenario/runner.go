package scenario

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/wippyai/overload/dispatch"
)

// Result is the outcome of one call.
type Result struct {
	Value   any
	Err     error
	Call    Call
	Outcome string
	Message string
	Passed  bool
}

// Runner runs scenario calls against a dispatcher.
type Runner struct {
	Dispatcher *dispatch.Dispatcher
	// Parallelism bounds concurrent calls; zero or less runs them one at a time.
	Parallelism int
}

// Run dispatches every call of f and checks it against its expectation.
// Results are returned in file order regardless of completion order.
// The error is non-nil only when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, f *File) ([]Result, error) {
	results := make([]Result, len(f.Calls))
	if len(f.Calls) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(r.Parallelism, len(f.Calls))))

	for i, c := range f.Calls {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.run(gctx, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (r *Runner) run(ctx context.Context, c Call) Result {
	res := Result{Call: c}
	res.Value, res.Err = r.Dispatcher.Invoke(ctx, c.Target, c.Arguments())
	res.Outcome = outcomeOf(res.Err)
	res.Message = check(c.Expect, res)
	res.Passed = res.Message == ""
	return res
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeResolved
	case stderrors.Is(err, dispatch.ErrNoMatch):
		return OutcomeNoMatch
	case stderrors.Is(err, dispatch.ErrAmbiguous):
		return OutcomeAmbiguous
	}
	return OutcomeError
}

// check returns why res does not meet want, or "".
func check(want Expect, res Result) string {
	if res.Outcome != want.Outcome {
		msg := fmt.Sprintf("outcome %s, want %s", res.Outcome, want.Outcome)
		if res.Err != nil {
			msg += ": " + res.Err.Error()
		}
		return msg
	}
	if want.Error != "" {
		if res.Err == nil || !strings.Contains(res.Err.Error(), want.Error) {
			return fmt.Sprintf("error %v does not contain %q", res.Err, want.Error)
		}
	}
	if want.Result != nil && !sameValue(normalize(want.Result), res.Value) {
		return fmt.Sprintf("result %v (%T), want %v", res.Value, res.Value, want.Result)
	}
	return ""
}

func sameValue(want, got any) bool {
	if reflect.DeepEqual(want, got) {
		return true
	}
	wf, wok := asFloat(want)
	gf, gok := asFloat(got)
	return wok && gok && wf == gf
}

func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// Failed counts results that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}
