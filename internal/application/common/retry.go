package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/andrescamacho/parking-garage/internal/adapters/metrics"
	"github.com/andrescamacho/parking-garage/internal/domain/garage"
)

// MutateFunc receives a freshly loaded document and returns the document
// to store in its place. Returning an error aborts the cycle without writing.
type MutateFunc func(stored *garage.StoredDocument) ([]byte, error)

// WithVersionRetry runs a load, mutate, save-if-version loop with optimistic
// locking. A version conflict restarts the cycle from a fresh load; any other
// error ends it. After maxRetries conflicting attempts it gives up with
// garage.ErrVersionConflict.
func WithVersionRetry(
	ctx context.Context,
	repo garage.DocumentRepository,
	name string,
	maxRetries int,
	mutate MutateFunc,
) error {
	logger := LoggerFromContext(ctx)
	if maxRetries < 1 {
		maxRetries = 1
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		stored, err := repo.Load(ctx, name)
		if err != nil {
			return err
		}

		document, err := mutate(stored)
		if err != nil {
			return err
		}

		err = repo.SaveIfVersion(ctx, name, document, stored.Version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, garage.ErrVersionConflict) {
			return err
		}

		// someone else saved first - retry from a fresh load
		metrics.RecordVersionConflict(name)
		logger.WithFields(logrus.Fields{
			"garage":  name,
			"attempt": attempt,
			"version": stored.Version,
		}).Debug("garage document changed concurrently, retrying")
	}

	return fmt.Errorf("%w: %s still contended after %d attempts", garage.ErrVersionConflict, name, maxRetries)
}
