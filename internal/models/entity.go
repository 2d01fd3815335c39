package models

import (
	"encoding/json"

	"github.com/iudanet/goalsync/pkg/api"
)

// StoredEntity представляет авторитетную серверную копию сущности
type StoredEntity struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Type      api.EntityType  `json:"type"`
	Data      json.RawMessage `json:"data"`
	Version   int64           `json:"version"`    // монотонно растущая версия, назначается сервером
	UpdatedAt int64           `json:"updated_at"` // серверное время последней записи (ms), используется как watermark
	Deleted   bool            `json:"deleted"`    // soft delete (tombstone)
}

// ToEntity конвертирует серверную запись в wire-формат
func (e *StoredEntity) ToEntity() api.Entity {
	return api.Entity{
		ID:      e.ID,
		Version: e.Version,
		Data:    append(json.RawMessage(nil), e.Data...),
	}
}

// ToChange конвертирует серверную запись в элемент изменений для клиента
func (e *StoredEntity) ToChange() api.ChangeItem {
	if e.Deleted {
		return api.Tombstone(e.ID)
	}
	return api.Upsert(e.ToEntity())
}

// Clone создает глубокую копию записи
func (e *StoredEntity) Clone() *StoredEntity {
	out := *e
	out.Data = append(json.RawMessage(nil), e.Data...)
	return &out
}
