package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/goalsync/internal/models"
	"github.com/iudanet/goalsync/internal/server/storage"
	"github.com/iudanet/goalsync/pkg/api"
)

const entityColumns = `id, user_id, type, data, version, updated_at, deleted`

// querier общий интерфейс *sql.DB и *sql.Tx
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// pendingWrite мутация, прошедшая проверку версии
type pendingWrite struct {
	item    api.QueueItem
	current *models.StoredEntity // nil, если сущности на сервере нет
	typ     api.EntityType
}

// ApplyChanges применяет пакет мутаций в одной транзакции.
// Сначала все элементы проверяются против сохраненных версий; при любом расхождении
// ничего не записывается и возвращаются все конфликты.
func (s *Storage) ApplyChanges(ctx context.Context, userID string, changes map[api.EntityType][]api.QueueItem, since int64) (out *storage.SyncOutcome, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now, err := s.tick(ctx, tx)
	if err != nil {
		return nil, err
	}

	out = &storage.SyncOutcome{
		Conflicts: make(map[api.EntityType][]api.Conflict),
		Timestamp: now,
	}

	var writes []pendingWrite
	for _, t := range api.EntityTypes() {
		seen := make(map[string]struct{}, len(changes[t]))
		for _, item := range changes[t] {
			if _, dup := seen[item.ID]; dup {
				return nil, fmt.Errorf("%w: %s/%s", storage.ErrDuplicateItem, t, item.ID)
			}
			seen[item.ID] = struct{}{}

			current, err := s.getEntity(ctx, tx, userID, t, item.ID)
			if err != nil && !errors.Is(err, storage.ErrEntityNotFound) {
				return nil, err
			}

			if c, ok := checkVersion(item, current); !ok {
				out.Conflicts[t] = append(out.Conflicts[t], c)
				continue
			}
			writes = append(writes, pendingWrite{typ: t, item: item, current: current})
		}
	}

	if out.ConflictCount() == 0 {
		for _, w := range writes {
			if err := s.write(ctx, tx, userID, w, now); err != nil {
				return nil, err
			}
		}
	}

	out.Changes, err = s.entitiesSince(ctx, tx, userID, since)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sync transaction: %w", err)
	}

	return out, nil
}

// checkVersion сравнивает ожидаемую клиентом версию с сохраненной
func checkVersion(item api.QueueItem, current *models.StoredEntity) (api.Conflict, bool) {
	expected := item.ExpectedVersion()

	var serverVersion int64
	var serverEntity *api.Entity
	if current != nil {
		serverVersion = current.Version
		if !current.Deleted {
			e := current.ToEntity()
			serverEntity = &e
		}
	}

	switch {
	case current == nil && item.Operation == api.OpDelete:
		// удаление того, чего нет: нечего проверять
		return api.Conflict{}, true
	case current == nil && item.Operation == api.OpUpdate && expected > 0:
		// клиент думает, что сущность существует на сервере
	case expected == serverVersion:
		return api.Conflict{}, true
	}

	return api.Conflict{
		ID:             item.ID,
		Message:        fmt.Sprintf("version mismatch: client %d, server %d", expected, serverVersion),
		LocalEntity:    item.Payload,
		ServerEntity:   serverEntity,
		LocalOperation: item.Operation,
		ClientVersion:  expected,
		ServerVersion:  serverVersion,
	}, false
}

// write записывает мутацию с новой версией и серверным timestamp
func (s *Storage) write(ctx context.Context, q querier, userID string, w pendingWrite, now int64) error {
	if w.item.Operation == api.OpDelete && w.current == nil {
		return nil
	}

	var version int64 = 1
	data := []byte(w.item.Payload.Data)
	if w.current != nil {
		version = w.current.Version + 1
		if w.item.Operation == api.OpDelete {
			data = w.current.Data
		}
	}

	query := `
		INSERT INTO entities (` + entityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, type, id) DO UPDATE SET
			data = excluded.data,
			version = excluded.version,
			updated_at = excluded.updated_at,
			deleted = excluded.deleted
	`

	_, err := q.ExecContext(ctx, query,
		w.item.ID,
		userID,
		string(w.typ),
		data,
		version,
		now,
		boolToInt(w.item.Operation == api.OpDelete),
	)
	if err != nil {
		return fmt.Errorf("failed to write entity %s/%s: %w", w.typ, w.item.ID, err)
	}

	return nil
}

// tick продвигает серверные часы: результат строго больше любого ранее выданного timestamp
func (s *Storage) tick(ctx context.Context, q querier) (int64, error) {
	var last int64
	if err := q.QueryRowContext(ctx, `SELECT last_ts FROM sync_clock WHERE id = 1`).Scan(&last); err != nil {
		return 0, fmt.Errorf("failed to read sync clock: %w", err)
	}

	now := s.now().UnixMilli()
	if now <= last {
		now = last + 1
	}

	if _, err := q.ExecContext(ctx, `UPDATE sync_clock SET last_ts = ? WHERE id = 1`, now); err != nil {
		return 0, fmt.Errorf("failed to advance sync clock: %w", err)
	}

	return now, nil
}

// GetEntity retrieves a single entity (tombstones included)
func (s *Storage) GetEntity(ctx context.Context, userID string, entityType api.EntityType, id string) (*models.StoredEntity, error) {
	return s.getEntity(ctx, s.db, userID, entityType, id)
}

// GetUserEntitiesSince retrieves all entities (including deleted) modified after since
func (s *Storage) GetUserEntitiesSince(ctx context.Context, userID string, since int64) ([]*models.StoredEntity, error) {
	return s.entitiesSince(ctx, s.db, userID, since)
}

func (s *Storage) getEntity(ctx context.Context, q querier, userID string, entityType api.EntityType, id string) (*models.StoredEntity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities WHERE user_id = ? AND type = ? AND id = ?`

	e, err := scanEntity(q.QueryRowContext(ctx, query, userID, string(entityType), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	return e, nil
}

func (s *Storage) entitiesSince(ctx context.Context, q querier, userID string, since int64) (entities []*models.StoredEntity, err error) {
	query := `
		SELECT ` + entityColumns + `
		FROM entities
		WHERE user_id = ? AND updated_at > ?
		ORDER BY updated_at, type, id
	`

	rows, err := q.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities since: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		entities = append(entities, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entities, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntity(row scanner) (*models.StoredEntity, error) {
	e := &models.StoredEntity{}
	var typ string
	var data []byte
	var deleted int

	if err := row.Scan(&e.ID, &e.UserID, &typ, &data, &e.Version, &e.UpdatedAt, &deleted); err != nil {
		return nil, err
	}

	e.Type = api.EntityType(typ)
	e.Data = data
	e.Deleted = intToBool(deleted)
	return e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}
