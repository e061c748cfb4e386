// Package store persists job description records in the external relational
// store. Records are write-once: the interface deliberately has no update or
// delete operations.
package store

import (
	"context"

	"hireboard-api/pkg/models"
)

// RecordStore is the injected collaborator for job description persistence.
// All operations are scoped to a single creator identity by the caller.
type RecordStore interface {
	// Insert persists a new record and returns it with the store-assigned
	// id and creation timestamp.
	Insert(ctx context.Context, record *models.JobDescription) (*models.JobDescription, error)

	// ListByCreator returns every record owned by creatorID, newest first.
	ListByCreator(ctx context.Context, creatorID string) ([]*models.JobDescription, error)

	// CreatorStats aggregates the creator's records for the dashboard.
	CreatorStats(ctx context.Context, creatorID string) (*models.JobDescriptionStats, error)

	// Ping verifies connectivity for readiness checks.
	Ping(ctx context.Context) error
}
