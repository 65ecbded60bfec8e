package unitofwork

import "context"

// RepositoryFactory hands out a fresh unit of work per service call.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
