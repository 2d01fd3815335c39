package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/iudanet/goalsync/internal/server/storage"
	"github.com/iudanet/goalsync/internal/validation"
	"github.com/iudanet/goalsync/pkg/api"
)

// MaxSyncBodySize ограничение на распакованное тело sync-запроса
const MaxSyncBodySize = 32 << 20

//go:generate moq -out sync_mock.go . SyncStorage

// SyncStorage определяет интерфейс хранилища, нужный sync handler
type SyncStorage interface {
	ApplyChanges(ctx context.Context, userID string, changes map[api.EntityType][]api.QueueItem, since int64) (*storage.SyncOutcome, error)
}

// SyncHandler handles synchronization requests
type SyncHandler struct {
	logger  *slog.Logger
	storage SyncStorage
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(logger *slog.Logger, storage SyncStorage) *SyncHandler {
	return &SyncHandler{
		logger:  logger,
		storage: storage,
	}
}

// HandleSync обрабатывает POST /api/v1/sync.
// Мутации применяются все или ни одной. При расхождении версий отвечает 409
// с полным SyncResponse: конфликты плюс изменения после watermark устройства.
func (h *SyncHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user id not found in context")
		sendError(ctx, h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.SyncRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxSyncBodySize)).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode sync request", slog.Any("error", err))
		sendError(ctx, h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateSyncRequest(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid sync request", slog.String("user_id", userID), slog.Any("error", err))
		sendError(ctx, h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	log := h.logger.With(
		slog.String("user_id", userID),
		slog.String("device_id", req.DeviceID),
	)
	if len(req.Review) > 0 {
		log.DebugContext(ctx, "sync request carries review block", slog.Int("bytes", len(req.Review)))
	}

	outcome, err := h.storage.ApplyChanges(ctx, userID, req.Changes, req.LastSyncAt)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateItem) {
			log.WarnContext(ctx, "duplicate items in sync request", slog.Any("error", err))
			sendError(ctx, h.logger, w, err.Error(), http.StatusBadRequest)
			return
		}
		log.ErrorContext(ctx, "failed to apply sync changes", slog.Any("error", err))
		sendError(ctx, h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.SyncResponse{
		Success:         outcome.ConflictCount() == 0,
		Conflicts:       outcome.Conflicts,
		Changes:         groupChanges(outcome),
		LastSyncAt:      outcome.Timestamp,
		ServerTimestamp: outcome.Timestamp,
	}
	if resp.Conflicts == nil {
		resp.Conflicts = map[api.EntityType][]api.Conflict{}
	}

	if !resp.Success {
		// watermark не продвигается, пока конфликты не разрешены
		resp.LastSyncAt = req.LastSyncAt
		log.InfoContext(ctx, "sync rejected with conflicts",
			slog.Int("conflicts", outcome.ConflictCount()),
			slog.Int("changes", resp.ChangeCount()))
		sendJSON(ctx, h.logger, w, resp, http.StatusConflict)
		return
	}

	log.InfoContext(ctx, "sync applied",
		slog.Int("received", countItems(req.Changes)),
		slog.Int("pushed", resp.ChangeCount()),
		slog.Int64("last_sync_at", resp.LastSyncAt))

	sendJSON(ctx, h.logger, w, resp, http.StatusOK)
}

// groupChanges группирует изменения по типу сущности в wire-формате
func groupChanges(outcome *storage.SyncOutcome) map[api.EntityType][]api.ChangeItem {
	if len(outcome.Changes) == 0 {
		return nil
	}

	out := make(map[api.EntityType][]api.ChangeItem)
	for _, e := range outcome.Changes {
		out[e.Type] = append(out[e.Type], e.ToChange())
	}
	return out
}

func countItems(changes map[api.EntityType][]api.QueueItem) int {
	n := 0
	for _, items := range changes {
		n += len(items)
	}
	return n
}
