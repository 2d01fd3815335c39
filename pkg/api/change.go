package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ChangeItem элемент изменений, присылаемых сервером.
// Это либо Upsert (полная сущность), либо Tombstone (только id удаленной сущности).
// На проводе tombstone выглядит как {"id": "...", "deleted": true}.
type ChangeItem struct {
	entity    Entity
	tombstone bool
}

// Upsert создает изменение с полной сущностью
func Upsert(e Entity) ChangeItem {
	return ChangeItem{entity: e}
}

// Tombstone создает маркер удаления сущности
func Tombstone(id string) ChangeItem {
	return ChangeItem{entity: Entity{ID: id}, tombstone: true}
}

// ID возвращает идентификатор сущности
func (c ChangeItem) ID() string {
	return c.entity.ID
}

// IsTombstone сообщает, является ли изменение удалением
func (c ChangeItem) IsTombstone() bool {
	return c.tombstone
}

// Entity возвращает сущность для upsert-изменения.
// Для tombstone ok == false.
func (c ChangeItem) Entity() (Entity, bool) {
	if c.tombstone {
		return Entity{}, false
	}
	return c.entity, true
}

type tombstoneWire struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// MarshalJSON реализует json.Marshaler
func (c ChangeItem) MarshalJSON() ([]byte, error) {
	if c.tombstone {
		return json.Marshal(tombstoneWire{ID: c.entity.ID, Deleted: true})
	}
	return json.Marshal(c.entity)
}

// UnmarshalJSON реализует json.Unmarshaler
func (c *ChangeItem) UnmarshalJSON(data []byte) error {
	var probe struct {
		ID      string `json:"id"`
		Deleted bool   `json:"deleted"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("failed to decode change item: %w", err)
	}
	if probe.ID == "" {
		return errors.New("change item without id")
	}

	if probe.Deleted {
		*c = Tombstone(probe.ID)
		return nil
	}

	var e Entity
	if err := json.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("failed to decode change entity: %w", err)
	}
	*c = Upsert(e)
	return nil
}
