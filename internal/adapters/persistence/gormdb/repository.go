package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/adapters/persistence"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain/example"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/ports"
)

// ExampleRepository implements example.Repository with keyed lookups.
//
// Unlike the in-memory store, Save rejects an identifier that is already
// stored with a *domain.ConflictError. Rows are ordered by the
// database-assigned created_seq.
type ExampleRepository struct {
	db     *gorm.DB
	mapper ports.ModelMapper[*example.Example, ExampleModel]
	inst   *persistence.Instrumentation
}

var _ example.Repository = (*ExampleRepository)(nil)

// NewExampleRepository creates a repository on db.
func NewExampleRepository(db *gorm.DB) *ExampleRepository {
	return &ExampleRepository{
		db:     db,
		mapper: ExampleMapper{},
		inst:   persistence.NewInstrumentation(db.Name(), domain.TypeName[*example.Example]()),
	}
}

// Save inserts aggregate.
func (r *ExampleRepository) Save(ctx context.Context, aggregate *example.Example) (err error) {
	ctx, done := r.inst.Start(ctx, "Save")
	defer func() { done(err) }()

	model := r.mapper.ToModel(aggregate)

	return r.translate(r.db.WithContext(ctx).Create(&model).Error, "saving example")
}

// SaveMany inserts aggregates in one statement, keeping their order.
func (r *ExampleRepository) SaveMany(ctx context.Context, aggregates []*example.Example) (err error) {
	if len(aggregates) == 0 {
		return nil
	}

	ctx, done := r.inst.Start(ctx, "SaveMany")
	defer func() { done(err) }()

	models := make([]ExampleModel, 0, len(aggregates))
	for _, a := range aggregates {
		models = append(models, r.mapper.ToModel(a))
	}

	return r.translate(r.db.WithContext(ctx).Create(&models).Error, "saving examples")
}

// FindByID loads the example with id.
func (r *ExampleRepository) FindByID(ctx context.Context, id example.ID) (_ *example.Example, _ bool, err error) {
	ctx, done := r.inst.Start(ctx, "FindByID")
	defer func() { done(err) }()

	var model ExampleModel

	err = r.db.WithContext(ctx).Where("id = ?", id.Value()).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("finding example: %w", err)
	}

	aggregate, err := r.mapper.ToDomain(model)
	if err != nil {
		return nil, false, err
	}

	return aggregate, true, nil
}

// FindMany loads every example in insertion order.
func (r *ExampleRepository) FindMany(ctx context.Context) (_ []*example.Example, err error) {
	ctx, done := r.inst.Start(ctx, "FindMany")
	defer func() { done(err) }()

	var models []ExampleModel
	if err = r.db.WithContext(ctx).Order("created_seq").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing examples: %w", err)
	}

	return r.toDomain(models)
}

// FindManyByIDs loads the examples matching ids in insertion order.
func (r *ExampleRepository) FindManyByIDs(ctx context.Context, ids []example.ID) (_ []*example.Example, err error) {
	if len(ids) == 0 {
		return []*example.Example{}, nil
	}

	ctx, done := r.inst.Start(ctx, "FindManyByIDs")
	defer func() { done(err) }()

	var models []ExampleModel

	err = r.db.WithContext(ctx).
		Where("id IN ?", values(ids)).
		Order("created_seq").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("listing examples by id: %w", err)
	}

	return r.toDomain(models)
}

// Update overwrites the stored name and age.
func (r *ExampleRepository) Update(ctx context.Context, aggregate *example.Example) (err error) {
	ctx, done := r.inst.Start(ctx, "Update")
	defer func() { done(err) }()

	model := r.mapper.ToModel(aggregate)

	res := r.db.WithContext(ctx).
		Model(&ExampleModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{"name": model.Name, "age": model.Age})
	if res.Error != nil {
		return fmt.Errorf("updating example: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return domain.NewEntityNotFoundError(r.EntityName(), aggregate.ID())
	}

	return nil
}

// Delete removes the example with id.
func (r *ExampleRepository) Delete(ctx context.Context, id example.ID) (err error) {
	ctx, done := r.inst.Start(ctx, "Delete")
	defer func() { done(err) }()

	res := r.db.WithContext(ctx).Where("id = ?", id.Value()).Delete(&ExampleModel{})
	if res.Error != nil {
		return fmt.Errorf("deleting example: %w", res.Error)
	}

	if res.RowsAffected != 1 {
		return domain.NewEntityNotFoundError(r.EntityName(), id)
	}

	return nil
}

// DeleteManyByIDs removes every example in ids inside one transaction, or
// none of them when any is missing.
func (r *ExampleRepository) DeleteManyByIDs(ctx context.Context, ids []example.ID) (err error) {
	if len(ids) == 0 {
		return nil
	}

	ctx, done := r.inst.Start(ctx, "DeleteManyByIDs")
	defer func() { done(err) }()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		present, err := existingIDs(tx, ids)
		if err != nil {
			return err
		}

		var missing []domain.Identifier

		for _, id := range ids {
			if _, ok := present[id.Value()]; !ok {
				missing = append(missing, id)
			}
		}

		if len(missing) > 0 {
			return domain.NewEntityNotFoundError(r.EntityName(), missing...)
		}

		if err := tx.Where("id IN ?", values(ids)).Delete(&ExampleModel{}).Error; err != nil {
			return fmt.Errorf("deleting examples: %w", err)
		}

		return nil
	})
}

// ExistsByID partitions ids by presence with a single query.
func (r *ExampleRepository) ExistsByID(ctx context.Context, ids []example.ID) (_ domain.ExistsResult[example.ID], err error) {
	if len(ids) == 0 {
		return domain.ExistsResult[example.ID]{}, domain.NewInvalidArgumentError(domain.EmptyIDsMessage)
	}

	ctx, done := r.inst.Start(ctx, "ExistsByID")
	defer func() { done(err) }()

	present, err := existingIDs(r.db.WithContext(ctx), ids)
	if err != nil {
		return domain.ExistsResult[example.ID]{}, err
	}

	return domain.PartitionIDs(ids, func(id example.ID) bool {
		_, ok := present[id.Value()]
		return ok
	}), nil
}

// EntityName implements domain.Repository.
func (r *ExampleRepository) EntityName() string {
	return domain.TypeName[*example.Example]()
}

func (r *ExampleRepository) toDomain(models []ExampleModel) ([]*example.Example, error) {
	out := make([]*example.Example, 0, len(models))

	for _, m := range models {
		aggregate, err := r.mapper.ToDomain(m)
		if err != nil {
			return nil, err
		}

		out = append(out, aggregate)
	}

	return out, nil
}

func (r *ExampleRepository) translate(err error, action string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.NewConflictErrorWithDetails(r.EntityName(), "identifier already stored", err.Error())
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}

func existingIDs(db *gorm.DB, ids []example.ID) (map[string]struct{}, error) {
	var found []string
	if err := db.Model(&ExampleModel{}).Where("id IN ?", values(ids)).Pluck("id", &found).Error; err != nil {
		return nil, fmt.Errorf("checking example ids: %w", err)
	}

	present := make(map[string]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}

	return present, nil
}

func values(ids []example.ID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Value())
	}

	return out
}
