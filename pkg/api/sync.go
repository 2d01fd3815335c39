package api

import (
	"encoding/json"
	"fmt"
)

// EntityType определяет тип синхронизируемой сущности
type EntityType string

const (
	EntityGoals       EntityType = "goals"
	EntityHabits      EntityType = "habits"
	EntityGlobalGoals EntityType = "globalGoals"
	EntityMilestones  EntityType = "milestones"
)

// EntityTypes возвращает все поддерживаемые типы сущностей в стабильном порядке
func EntityTypes() []EntityType {
	return []EntityType{EntityGoals, EntityHabits, EntityGlobalGoals, EntityMilestones}
}

// Valid проверяет, что тип сущности поддерживается
func (t EntityType) Valid() bool {
	switch t {
	case EntityGoals, EntityHabits, EntityGlobalGoals, EntityMilestones:
		return true
	}
	return false
}

// ParseEntityType разбирает тип сущности из строки (CLI, query параметры)
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown entity type %q", s)
	}
	return t, nil
}

// Operation тип локальной мутации
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpUpsert Operation = "upsert"
)

// Valid проверяет, что операция известна
func (o Operation) Valid() bool {
	switch o {
	case OpCreate, OpUpdate, OpDelete, OpUpsert:
		return true
	}
	return false
}

// Entity представляет синхронизируемую сущность (goal, habit, globalGoal, milestone).
// Для движка синхронизации содержимое Data непрозрачно.
type Entity struct {
	ID             string          `json:"id"`                        // ID уникальный идентификатор (UUID)
	Data           json.RawMessage `json:"data,omitempty"`            // Data бизнес-поля сущности
	Version        int64           `json:"_version"`                  // Version назначается и увеличивается только сервером
	LocalUpdatedAt int64           `json:"_localUpdatedAt,omitempty"` // LocalUpdatedAt время последней локальной мутации (ms)
}

// Stripped возвращает копию сущности без транзиентных локальных полей
func (e Entity) Stripped() Entity {
	out := e.Clone()
	out.LocalUpdatedAt = 0
	return out
}

// Clone создает глубокую копию сущности
func (e Entity) Clone() Entity {
	out := e
	if e.Data != nil {
		out.Data = append(json.RawMessage(nil), e.Data...)
	}
	return out
}

// QueueItem представляет одну ожидающую отправки мутацию
type QueueItem struct {
	ID                     string    `json:"id"`
	Operation              Operation `json:"operation"`
	Payload                Entity    `json:"payload"`
	ResolveConflictVersion *int64    `json:"resolveConflictVersion,omitempty"` // серверная версия, которую должно атомарно заменить локальное решение конфликта
	Version                int64     `json:"version"`                          // версия, которую клиент считает текущей
	ClientUpdatedAt        int64     `json:"clientUpdatedAt"`
}

// Clone создает глубокую копию элемента очереди
func (q QueueItem) Clone() QueueItem {
	out := q
	out.Payload = q.Payload.Clone()
	if q.ResolveConflictVersion != nil {
		v := *q.ResolveConflictVersion
		out.ResolveConflictVersion = &v
	}
	return out
}

// ExpectedVersion возвращает версию, против которой сервер должен проверять запись
func (q QueueItem) ExpectedVersion() int64 {
	if q.ResolveConflictVersion != nil {
		return *q.ResolveConflictVersion
	}
	return q.Version
}

// Conflict описывает расхождение версий для одной сущности
type Conflict struct {
	ID             string    `json:"id"`
	Message        string    `json:"message"`
	LocalEntity    Entity    `json:"localEntity"`
	ServerEntity   *Entity   `json:"serverEntity,omitempty"` // nil, если на сервере сущность удалена
	LocalOperation Operation `json:"localOperation"`
	ClientVersion  int64     `json:"clientVersion"`
	ServerVersion  int64     `json:"serverVersion"`
}

// SyncRequest представляет запрос на синхронизацию от клиента
type SyncRequest struct {
	Changes         map[EntityType][]QueueItem `json:"changes"`
	Review          json.RawMessage            `json:"review,omitempty"` // прикладной блок, сервером не интерпретируется
	DeviceID        string                     `json:"deviceId"`
	ClientTimezone  string                     `json:"clientTimezone"`
	LastSyncAt      int64                      `json:"lastSyncAt"`
	ClientTimestamp int64                      `json:"clientTimestamp"`
}

// SyncResponse представляет ответ сервера на синхронизацию
type SyncResponse struct {
	Conflicts       map[EntityType][]Conflict   `json:"conflicts"`
	Changes         map[EntityType][]ChangeItem `json:"changes,omitempty"` // изменения, которые сервер должен доставить устройству
	LastSyncAt      int64                       `json:"lastSyncAt"`
	ServerTimestamp int64                       `json:"serverTimestamp"`
	Success         bool                        `json:"success"`
}

// ConflictCount возвращает общее количество конфликтов в ответе
func (r *SyncResponse) ConflictCount() int {
	n := 0
	for _, list := range r.Conflicts {
		n += len(list)
	}
	return n
}

// ChangeCount возвращает общее количество изменений в ответе
func (r *SyncResponse) ChangeCount() int {
	n := 0
	for _, list := range r.Changes {
		n += len(list)
	}
	return n
}
