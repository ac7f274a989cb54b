package memory

import (
	"context"
	"sync"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain"
)

// Synchronized serializes access to a repository that is not safe for
// concurrent use, such as Repository when served behind an HTTP server.
type Synchronized[ID domain.Identifier, A domain.Aggregate[ID]] struct {
	mu   sync.RWMutex
	repo domain.Repository[ID, A]
}

// NewSynchronized wraps repo with a read/write lock.
func NewSynchronized[ID domain.Identifier, A domain.Aggregate[ID]](repo domain.Repository[ID, A]) *Synchronized[ID, A] {
	return &Synchronized[ID, A]{repo: repo}
}

func (s *Synchronized[ID, A]) Save(ctx context.Context, aggregate A) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Save(ctx, aggregate)
}

func (s *Synchronized[ID, A]) SaveMany(ctx context.Context, aggregates []A) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.SaveMany(ctx, aggregates)
}

func (s *Synchronized[ID, A]) FindByID(ctx context.Context, id ID) (A, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.repo.FindByID(ctx, id)
}

func (s *Synchronized[ID, A]) FindMany(ctx context.Context) ([]A, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.repo.FindMany(ctx)
}

func (s *Synchronized[ID, A]) FindManyByIDs(ctx context.Context, ids []ID) ([]A, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.repo.FindManyByIDs(ctx, ids)
}

func (s *Synchronized[ID, A]) Update(ctx context.Context, aggregate A) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Update(ctx, aggregate)
}

func (s *Synchronized[ID, A]) Delete(ctx context.Context, id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Delete(ctx, id)
}

func (s *Synchronized[ID, A]) DeleteManyByIDs(ctx context.Context, ids []ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.DeleteManyByIDs(ctx, ids)
}

func (s *Synchronized[ID, A]) ExistsByID(ctx context.Context, ids []ID) (domain.ExistsResult[ID], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.repo.ExistsByID(ctx, ids)
}

func (s *Synchronized[ID, A]) EntityName() string {
	return s.repo.EntityName()
}
