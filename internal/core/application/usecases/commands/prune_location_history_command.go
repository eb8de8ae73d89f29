package commands

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrPruneLocationHistoryCommandIsNotConstructed = errors.New(
	"PruneLocationHistoryCommand must be created via NewPruneLocationHistoryCommand constructor",
)

// PruneLocationHistoryCommand bounds driver location history. Per driver,
// all but the newest keepPerDriver records are deleted, and current records
// older than staleAfter are deactivated so silent drivers drop out of
// proximity search.
type PruneLocationHistoryCommand struct {
	keepPerDriver int
	staleAfter    time.Duration
	guard         guard.ConstructorGuard
}

// NewPruneLocationHistoryCommand creates a pruning command.
func NewPruneLocationHistoryCommand(
	keepPerDriver int,
	staleAfter time.Duration,
) (PruneLocationHistoryCommand, error) {
	if keepPerDriver < 1 {
		return PruneLocationHistoryCommand{}, errs.NewValueIsInvalidErrorWithCause("keepPerDriver",
			fmt.Errorf("%d must be at least 1", keepPerDriver))
	}
	if staleAfter <= 0 {
		return PruneLocationHistoryCommand{}, errs.NewValueIsInvalidErrorWithCause("staleAfter",
			fmt.Errorf("%s must be positive", staleAfter))
	}

	return PruneLocationHistoryCommand{
		keepPerDriver: keepPerDriver,
		staleAfter:    staleAfter,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// KeepPerDriver returns how many records survive per driver.
func (c *PruneLocationHistoryCommand) KeepPerDriver() int {
	return c.keepPerDriver
}

// StaleAfter returns the silence window after which a driver's current
// record is deactivated.
func (c *PruneLocationHistoryCommand) StaleAfter() time.Duration {
	return c.staleAfter
}

// Validate ensures the command was created through the constructor.
func (c *PruneLocationHistoryCommand) Validate() error {
	return c.guard.Validate(ErrPruneLocationHistoryCommandIsNotConstructed)
}
