package models

// SyncMeta метаданные синхронизации устройства
type SyncMeta struct {
	DeviceID   string `json:"deviceId"`   // DeviceID генерируется один раз на время жизни устройства
	LastSyncAt int64  `json:"lastSyncAt"` // LastSyncAt watermark: последний полностью учтенный серверный timestamp (ms)
}

// IsFirstSync сообщает, что устройство еще ни разу не синхронизировалось
func (m SyncMeta) IsFirstSync() bool {
	return m.LastSyncAt == 0
}
