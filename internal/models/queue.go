package models

import "github.com/iudanet/goalsync/pkg/api"

// Queue очередь ожидающих мутаций: упорядоченный список на каждый тип сущности.
// Инвариант: не больше одного элемента на id.
type Queue map[api.EntityType][]api.QueueItem

// Len возвращает общее количество элементов по всем типам
func (q Queue) Len() int {
	n := 0
	for _, items := range q {
		n += len(items)
	}
	return n
}

// Clone создает глубокую копию очереди
func (q Queue) Clone() Queue {
	out := make(Queue, len(q))
	for t, items := range q {
		if len(items) == 0 {
			continue
		}
		cp := make([]api.QueueItem, len(items))
		for i, item := range items {
			cp[i] = item.Clone()
		}
		out[t] = cp
	}
	return out
}

// IDs возвращает множество id всех элементов очереди
func (q Queue) IDs() map[string]struct{} {
	ids := make(map[string]struct{}, q.Len())
	for _, items := range q {
		for _, item := range items {
			ids[item.ID] = struct{}{}
		}
	}
	return ids
}

// Find ищет элемент по типу и id
func (q Queue) Find(t api.EntityType, id string) (api.QueueItem, bool) {
	for _, item := range q[t] {
		if item.ID == id {
			return item, true
		}
	}
	return api.QueueItem{}, false
}
