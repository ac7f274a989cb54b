package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/adapters/persistence"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain/example"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/ports"
)

// maxTxRetries bounds how often an optimistic transaction is retried after
// a concurrent write invalidated its WATCH.
const maxTxRetries = 5

// ExampleDocument is the JSON stored per example.
type ExampleDocument struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// DocumentMapper converts between Example and ExampleDocument.
type DocumentMapper struct{}

// ToModel implements ports.ModelMapper.
func (DocumentMapper) ToModel(e *example.Example) ExampleDocument {
	return ExampleDocument{ID: e.ID().Value(), Name: e.Name(), Age: e.Age()}
}

// ToDomain implements ports.ModelMapper.
func (DocumentMapper) ToDomain(d ExampleDocument) (*example.Example, error) {
	return example.Rehydrate(d.ID, d.Name, d.Age)
}

// ExampleRepository implements example.Repository on Redis.
//
// Save rejects identifiers that are already stored with a
// *domain.ConflictError.
type ExampleRepository struct {
	client   redis.UniversalClient
	mapper   ports.ModelMapper[*example.Example, ExampleDocument]
	inst     *persistence.Instrumentation
	docsKey  string
	orderKey string
	seqKey   string
}

var _ example.Repository = (*ExampleRepository)(nil)

// NewExampleRepository creates a repository storing keys under prefix.
func NewExampleRepository(client redis.UniversalClient, prefix string) *ExampleRepository {
	if prefix == "" {
		prefix = "examples"
	}

	return &ExampleRepository{
		client:   client,
		mapper:   DocumentMapper{},
		inst:     persistence.NewInstrumentation("redis", domain.TypeName[*example.Example]()),
		docsKey:  prefix + ":docs",
		orderKey: prefix + ":order",
		seqKey:   prefix + ":seq",
	}
}

// Save inserts aggregate.
func (r *ExampleRepository) Save(ctx context.Context, aggregate *example.Example) (err error) {
	ctx, done := r.inst.Start(ctx, "Save")
	defer func() { done(err) }()

	return r.insert(ctx, []*example.Example{aggregate})
}

// SaveMany inserts aggregates atomically, keeping their order.
func (r *ExampleRepository) SaveMany(ctx context.Context, aggregates []*example.Example) (err error) {
	if len(aggregates) == 0 {
		return nil
	}

	ctx, done := r.inst.Start(ctx, "SaveMany")
	defer func() { done(err) }()

	return r.insert(ctx, aggregates)
}

// FindByID loads the example with id.
func (r *ExampleRepository) FindByID(ctx context.Context, id example.ID) (_ *example.Example, _ bool, err error) {
	ctx, done := r.inst.Start(ctx, "FindByID")
	defer func() { done(err) }()

	raw, err := r.client.HGet(ctx, r.docsKey, id.Value()).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("finding example: %w", err)
	}

	aggregate, err := r.decode(raw)
	if err != nil {
		return nil, false, err
	}

	return aggregate, true, nil
}

// FindMany loads every example in insertion order.
func (r *ExampleRepository) FindMany(ctx context.Context) (_ []*example.Example, err error) {
	ctx, done := r.inst.Start(ctx, "FindMany")
	defer func() { done(err) }()

	ordered, err := r.client.ZRange(ctx, r.orderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("listing examples: %w", err)
	}

	return r.load(ctx, ordered)
}

// FindManyByIDs loads the examples matching ids in insertion order.
func (r *ExampleRepository) FindManyByIDs(ctx context.Context, ids []example.ID) (_ []*example.Example, err error) {
	if len(ids) == 0 {
		return []*example.Example{}, nil
	}

	ctx, done := r.inst.Start(ctx, "FindManyByIDs")
	defer func() { done(err) }()

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id.Value()] = struct{}{}
	}

	ordered, err := r.client.ZRange(ctx, r.orderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("listing examples by id: %w", err)
	}

	selected := make([]string, 0, len(ids))

	for _, id := range ordered {
		if _, ok := wanted[id]; ok {
			selected = append(selected, id)
		}
	}

	return r.load(ctx, selected)
}

// Update overwrites a stored example.
func (r *ExampleRepository) Update(ctx context.Context, aggregate *example.Example) (err error) {
	ctx, done := r.inst.Start(ctx, "Update")
	defer func() { done(err) }()

	payload, err := json.Marshal(r.mapper.ToModel(aggregate))
	if err != nil {
		return fmt.Errorf("encoding example: %w", err)
	}

	return r.watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.HExists(ctx, r.docsKey, aggregate.ID().Value()).Result()
		if err != nil {
			return err
		}

		if !exists {
			return domain.NewEntityNotFoundError(r.EntityName(), aggregate.ID())
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, r.docsKey, aggregate.ID().Value(), payload)
			return nil
		})

		return err
	})
}

// Delete removes the example with id.
func (r *ExampleRepository) Delete(ctx context.Context, id example.ID) (err error) {
	ctx, done := r.inst.Start(ctx, "Delete")
	defer func() { done(err) }()

	return r.remove(ctx, []example.ID{id})
}

// DeleteManyByIDs removes every example in ids, or none of them when any is
// missing.
func (r *ExampleRepository) DeleteManyByIDs(ctx context.Context, ids []example.ID) (err error) {
	if len(ids) == 0 {
		return nil
	}

	ctx, done := r.inst.Start(ctx, "DeleteManyByIDs")
	defer func() { done(err) }()

	return r.remove(ctx, ids)
}

// ExistsByID partitions ids by presence.
func (r *ExampleRepository) ExistsByID(ctx context.Context, ids []example.ID) (_ domain.ExistsResult[example.ID], err error) {
	if len(ids) == 0 {
		return domain.ExistsResult[example.ID]{}, domain.NewInvalidArgumentError(domain.EmptyIDsMessage)
	}

	ctx, done := r.inst.Start(ctx, "ExistsByID")
	defer func() { done(err) }()

	present, err := presentIDs(ctx, r.client, r.docsKey, ids)
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

func (r *ExampleRepository) insert(ctx context.Context, aggregates []*example.Example) error {
	ids := make([]example.ID, 0, len(aggregates))
	docs := make([]any, 0, 2*len(aggregates))

	for _, a := range aggregates {
		payload, err := json.Marshal(r.mapper.ToModel(a))
		if err != nil {
			return fmt.Errorf("encoding example: %w", err)
		}

		ids = append(ids, a.ID())
		docs = append(docs, a.ID().Value(), payload)
	}

	return r.watch(ctx, func(tx *redis.Tx) error {
		present, err := presentIDs(ctx, tx, r.docsKey, ids)
		if err != nil {
			return err
		}

		if len(present) > 0 || hasDuplicates(ids) {
			return domain.NewConflictError(r.EntityName(), "identifier already stored")
		}

		last, err := tx.IncrBy(ctx, r.seqKey, int64(len(ids))).Result()
		if err != nil {
			return err
		}

		members := make([]redis.Z, 0, len(ids))
		for i, id := range ids {
			members = append(members, redis.Z{Score: float64(last - int64(len(ids)-1-i)), Member: id.Value()})
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, r.docsKey, docs...)
			pipe.ZAdd(ctx, r.orderKey, members...)

			return nil
		})

		return err
	})
}

func (r *ExampleRepository) remove(ctx context.Context, ids []example.ID) error {
	return r.watch(ctx, func(tx *redis.Tx) error {
		present, err := presentIDs(ctx, tx, r.docsKey, ids)
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

		members := make([]string, 0, len(ids))
		for _, id := range ids {
			members = append(members, id.Value())
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HDel(ctx, r.docsKey, members...)
			pipe.ZRem(ctx, r.orderKey, toAny(members)...)

			return nil
		})

		return err
	})
}

// watch runs fn under WATCH on the document hash, retrying when another
// client modified it before EXEC.
func (r *ExampleRepository) watch(ctx context.Context, fn func(tx *redis.Tx) error) error {
	var err error

	for range maxTxRetries {
		err = r.client.Watch(ctx, fn, r.docsKey)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}

	return domain.NewUnavailableError("redis", fmt.Sprintf("transaction aborted after %d retries: %v", maxTxRetries, err))
}

func (r *ExampleRepository) load(ctx context.Context, ids []string) ([]*example.Example, error) {
	if len(ids) == 0 {
		return []*example.Example{}, nil
	}

	raws, err := r.client.HMGet(ctx, r.docsKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("loading examples: %w", err)
	}

	out := make([]*example.Example, 0, len(raws))

	for _, raw := range raws {
		s, ok := raw.(string)
		if !ok {
			// Removed between ZRANGE and HMGET.
			continue
		}

		aggregate, err := r.decode(s)
		if err != nil {
			return nil, err
		}

		out = append(out, aggregate)
	}

	return out, nil
}

func (r *ExampleRepository) decode(raw string) (*example.Example, error) {
	var doc ExampleDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decoding example: %w", err)
	}

	return r.mapper.ToDomain(doc)
}

func presentIDs(ctx context.Context, c redis.Cmdable, key string, ids []example.ID) (map[string]struct{}, error) {
	fields := make([]string, 0, len(ids))
	for _, id := range ids {
		fields = append(fields, id.Value())
	}

	raws, err := c.HMGet(ctx, key, fields...).Result()
	if err != nil {
		return nil, fmt.Errorf("checking example ids: %w", err)
	}

	present := make(map[string]struct{}, len(fields))

	for i, raw := range raws {
		if raw != nil {
			present[fields[i]] = struct{}{}
		}
	}

	return present, nil
}

func hasDuplicates(ids []example.ID) bool {
	seen := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		if _, ok := seen[id.Value()]; ok {
			return true
		}

		seen[id.Value()] = struct{}{}
	}

	return false
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}
