// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"errors"
	"fmt"
	"os"

	"reconprov/internal/issue"
)

type (
	// Step is one host mutation in the provisioning sequence.
	Step struct {
		// ID is the short identifier used in logs and warnings.
		ID string
		// Operation names the action for failure messages.
		Operation string
		// Resource is the path, account, or unit the step acts on.
		Resource string
		// Tolerant steps log their failure as a warning instead of
		// aborting the run.
		Tolerant bool

		run func(ctx context.Context) error
	}
)

// runSteps executes steps in order. The first non-tolerant failure aborts
// the sequence; tolerant failures are appended to the returned warnings.
func (i *Installer) runSteps(ctx context.Context, steps []Step) ([]string, error) {
	var warnings []string
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return warnings, err
		}

		i.logger.Info(step.Operation, "step", step.ID, "resource", step.Resource)
		err := step.run(ctx)
		if err == nil {
			continue
		}

		if step.Tolerant {
			i.logger.Warn("continuing after step failure", "step", step.ID, "error", err)
			warnings = append(warnings, fmt.Sprintf("%s: %v", step.ID, err))
			continue
		}
		return warnings, stepError(step, err)
	}
	return warnings, nil
}

// stepError wraps a step failure with its operation and resource. The
// underlying host error stays in the chain verbatim.
func stepError(step Step, err error) error {
	ec := issue.NewErrorContext().
		WithOperation(step.Operation).
		WithResource(step.Resource)
	if errors.Is(err, os.ErrPermission) {
		ec = ec.WithSuggestion("re-run the installer with root privileges (sudo reconprov install)")
	}
	return ec.Wrap(err).BuildError()
}
