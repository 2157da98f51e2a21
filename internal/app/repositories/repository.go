// Package repositories implements the generic CRUD contract every entity
// collection shares. One Repository is instantiated per collection key; all
// records flow through the store adapter as JSON arrays, so partial updates
// are plain map merges and no entity ever needs bespoke persistence code.
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/edudesk/edudesk/internal/pkg/logger"
	"github.com/edudesk/edudesk/internal/store"
)

// Fields managed by the repository. They are stripped from caller-supplied
// patches so id and createdAt stay immutable after creation.
const (
	fieldID        = "id"
	fieldCreatedAt = "createdAt"
	fieldUpdatedAt = "updatedAt"
)

// Repository is the generic CRUD component bound to one collection key.
// Every mutation is a full read-modify-write of the collection; the mutex
// serializes those cycles so concurrent API calls cannot interleave them.
type Repository[E any] struct {
	store store.Store
	key   string
	now   func() time.Time
	newID func(time.Time) string
	mu    sync.Mutex
}

// Option configures a Repository.
type Option[E any] func(*Repository[E])

// WithClock overrides the time source, used by tests for deterministic
// timestamps.
func WithClock[E any](now func() time.Time) Option[E] {
	return func(r *Repository[E]) { r.now = now }
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator[E any](gen func(time.Time) string) Option[E] {
	return func(r *Repository[E]) { r.newID = gen }
}

// New creates a repository over the given store and collection key.
func New[E any](st store.Store, key string, opts ...Option[E]) *Repository[E] {
	r := &Repository[E]{
		store: st,
		key:   key,
		now:   time.Now,
		newID: generateID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// generateID builds a millisecond-timestamp id with a random suffix so two
// adds in the same millisecond can never collide.
func generateID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

// Key returns the collection key this repository is bound to.
func (r *Repository[E]) Key() string {
	return r.key
}

// load reads the full collection as raw records. A missing key and a corrupt
// payload both come back as an empty collection; corruption is logged, not
// surfaced, so a bad persisted value never takes the API down.
func (r *Repository[E]) load(ctx context.Context) []map[string]interface{} {
	data, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		logger.Error().Err(err).Str("collection", r.key).Msg("failed to read collection")
		return nil
	}
	if !ok {
		return nil
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		logger.Warn().Err(err).Str("collection", r.key).Msg("corrupt collection payload, treating as empty")
		return nil
	}
	return rows
}

// persist replaces the whole collection value.
func (r *Repository[E]) persist(ctx context.Context, rows []map[string]interface{}) error {
	if rows == nil {
		rows = []map[string]interface{}{}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to serialize collection %s: %w", r.key, err)
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("failed to persist collection %s: %w", r.key, err)
	}
	return nil
}

func decode[E any](row map[string]interface{}) (E, error) {
	var entity E
	data, err := json.Marshal(row)
	if err != nil {
		return entity, err
	}
	if err := json.Unmarshal(data, &entity); err != nil {
		return entity, err
	}
	return entity, nil
}

func encode[E any](entity E) (map[string]interface{}, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}
	var row map[string]interface{}
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, err
	}
	return row, nil
}

// List returns the full collection in insertion order. It never fails:
// uninitialized and unreadable collections both yield an empty slice.
func (r *Repository[E]) List(ctx context.Context) []E {
	rows := r.load(ctx)
	items := make([]E, 0, len(rows))
	for _, row := range rows {
		entity, err := decode[E](row)
		if err != nil {
			logger.Warn().Err(err).Str("collection", r.key).Msg("skipping undecodable record")
			continue
		}
		items = append(items, entity)
	}
	return items
}

// GetByID scans the collection for a record with the given id.
func (r *Repository[E]) GetByID(ctx context.Context, id string) (E, bool) {
	var zero E
	for _, row := range r.load(ctx) {
		if row[fieldID] == id {
			entity, err := decode[E](row)
			if err != nil {
				logger.Warn().Err(err).Str("collection", r.key).Str("id", id).Msg("undecodable record")
				return zero, false
			}
			return entity, true
		}
	}
	return zero, false
}

// Count returns the number of records in the collection.
func (r *Repository[E]) Count(ctx context.Context) int {
	return len(r.load(ctx))
}

// Add assigns a fresh id, stamps createdAt and updatedAt with the same
// instant, appends the record and persists the collection. Any id or
// timestamps present on the supplied entity are overwritten.
func (r *Repository[E]) Add(ctx context.Context, entity E) (E, error) {
	var zero E
	row, err := encode(entity)
	if err != nil {
		return zero, fmt.Errorf("failed to encode record for %s: %w", r.key, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	row[fieldID] = r.newID(now)
	row[fieldCreatedAt] = now.Format(time.RFC3339Nano)
	row[fieldUpdatedAt] = now.Format(time.RFC3339Nano)

	rows := append(r.load(ctx), row)
	if err := r.persist(ctx, rows); err != nil {
		return zero, err
	}
	return decode[E](row)
}

// Update shallow-merges patch over the record with the given id and refreshes
// updatedAt. The managed fields are ignored even when present in the patch.
// A missing id is reported through the boolean, not an error.
func (r *Repository[E]) Update(ctx context.Context, id string, patch map[string]interface{}) (E, bool, error) {
	var zero E

	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.load(ctx)
	for i, row := range rows {
		if row[fieldID] != id {
			continue
		}
		for k, v := range patch {
			if k == fieldID || k == fieldCreatedAt || k == fieldUpdatedAt {
				continue
			}
			row[k] = v
		}
		row[fieldUpdatedAt] = r.now().UTC().Format(time.RFC3339Nano)
		rows[i] = row

		if err := r.persist(ctx, rows); err != nil {
			return zero, true, err
		}
		entity, err := decode[E](row)
		if err != nil {
			return zero, true, fmt.Errorf("failed to decode updated record: %w", err)
		}
		return entity, true, nil
	}
	return zero, false, nil
}

// Delete removes the record with the given id and reports whether anything
// was removed. Filter-not-equal semantics: should duplicates ever exist, all
// records with the id are removed in one pass.
func (r *Repository[E]) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.load(ctx)
	kept := rows[:0]
	for _, row := range rows {
		if row[fieldID] != id {
			kept = append(kept, row)
		}
	}
	if len(kept) == len(rows) {
		return false, nil
	}
	if err := r.persist(ctx, kept); err != nil {
		return true, err
	}
	return true, nil
}
