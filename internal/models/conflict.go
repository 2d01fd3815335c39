package models

import "github.com/iudanet/goalsync/pkg/api"

// PendingConflicts неразрешенные конфликты, сгруппированные по типу сущности
type PendingConflicts map[api.EntityType][]api.Conflict

// Len возвращает общее количество конфликтов
func (p PendingConflicts) Len() int {
	n := 0
	for _, list := range p {
		n += len(list)
	}
	return n
}

// IDs возвращает множество id сущностей, находящихся в конфликте
func (p PendingConflicts) IDs() map[string]struct{} {
	ids := make(map[string]struct{}, p.Len())
	for _, list := range p {
		for _, c := range list {
			ids[c.ID] = struct{}{}
		}
	}
	return ids
}

// Resolution выбор пользователя при разрешении конфликта
type Resolution string

const (
	// KeepLocal оставить локальную версию и перезаписать серверную
	KeepLocal Resolution = "local"
	// KeepServer принять серверную версию и отбросить локальную мутацию
	KeepServer Resolution = "server"
)

// Valid проверяет, что выбор известен
func (r Resolution) Valid() bool {
	return r == KeepLocal || r == KeepServer
}
