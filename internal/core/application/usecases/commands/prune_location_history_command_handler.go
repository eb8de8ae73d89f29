package commands

import (
	"context"
	"time"
)

// PruneLocationHistoryResult reports what a pruning run removed.
type PruneLocationHistoryResult struct {
	// PrunedRecords is the number of history rows deleted.
	PrunedRecords int64
	// DeactivatedRecords is the number of current records marked inactive
	// for staleness.
	DeactivatedRecords int64
}

// PruneLocationHistoryCommandHandler runs the out-of-band history bound.
// It is driven by the pruning job, never by the request path.
type PruneLocationHistoryCommandHandler struct {
	uowFactory LocationUoWFactory
}

// NewPruneLocationHistoryCommandHandler creates a handler for history
// pruning.
func NewPruneLocationHistoryCommandHandler(uowFactory LocationUoWFactory) PruneLocationHistoryCommandHandler {
	return PruneLocationHistoryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle prunes history and deactivates stale records in one transaction.
func (h PruneLocationHistoryCommandHandler) Handle(
	ctx context.Context,
	command PruneLocationHistoryCommand,
) (PruneLocationHistoryResult, error) {
	if err := command.Validate(); err != nil {
		return PruneLocationHistoryResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PruneLocationHistoryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	locationRepo := uow.DriverLocationRepository()

	pruned, err := locationRepo.PruneHistory(ctx, command.KeepPerDriver())
	if err != nil {
		return PruneLocationHistoryResult{}, err
	}

	cutoff := time.Now().UTC().Add(-command.StaleAfter())
	deactivated, err := locationRepo.DeactivateStale(ctx, cutoff)
	if err != nil {
		return PruneLocationHistoryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PruneLocationHistoryResult{}, err
	}

	return PruneLocationHistoryResult{
		PrunedRecords:      pruned,
		DeactivatedRecords: deactivated,
	}, nil
}
