package composables

import (
	"context"

	"github.com/go-faster/errors"
)

// Step is one named unit of a multi-statement write. Check runs before Run
// and must not mutate anything; either may be nil.
type Step struct {
	Name  string
	Check func(ctx context.Context) error
	Run   func(ctx context.Context) error
}

// InTxSteps executes the steps in order inside a single transaction. The
// first failing check or run aborts the sequence and rolls everything back,
// with the step name recorded on the error.
func InTxSteps(ctx context.Context, steps ...Step) error {
	return InTx(ctx, func(txCtx context.Context) error {
		for _, step := range steps {
			if step.Check != nil {
				if err := step.Check(txCtx); err != nil {
					return errors.Wrapf(err, "precondition %q", step.Name)
				}
			}
			if step.Run != nil {
				if err := step.Run(txCtx); err != nil {
					return errors.Wrapf(err, "step %q", step.Name)
				}
			}
		}
		return nil
	})
}
