package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/logrotator/pkg/appcontext"
	"github.com/yurykabanov/logrotator/pkg/domain"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 500
)

type RunRepository interface {
	FindRecent(context.Context, int) ([]domain.Run, error)
}

type RecentRunsHandler struct {
	logger logrus.FieldLogger
	repo   RunRepository
}

func NewRecentRunsHandler(logger logrus.FieldLogger, repo RunRepository) *RecentRunsHandler {
	return &RecentRunsHandler{
		logger: logger,
		repo:   repo,
	}
}

type runResponse struct {
	RunId         string `json:"run_id"`
	Action        string `json:"action"`
	Status        string `json:"status"`
	FilesTotal    int    `json:"files_total"`
	FilesModified int    `json:"files_modified"`
	Message       string `json:"message,omitempty"`
	CreatedAt     int64  `json:"created_at_mtime"`
	Duration      int64  `json:"duration_ms,omitempty"`
}

func (h *RecentRunsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	logger := appcontext.LoggerFromContext(h.logger, ctx)

	limit := defaultRunsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if n > maxRunsLimit {
			n = maxRunsLimit
		}
		limit = n
	}

	runs, err := h.repo.FindRecent(ctx, limit)
	if err != nil {
		logger.WithError(err).Error("Unable to query recent runs")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	result := make([]runResponse, 0, len(runs))

	for _, run := range runs {
		resp := runResponse{
			RunId:         run.RunId,
			Action:        run.Action,
			Status:        run.ExecStatus.String(),
			FilesTotal:    run.FilesTotal,
			FilesModified: run.FilesModified,
			Message:       run.Message,
			CreatedAt:     run.CreatedAt.UnixNano() / 1e6,
		}

		if run.FinishedAt != nil {
			resp.Duration = run.FinishedAt.Sub(run.CreatedAt).Nanoseconds() / 1e6
		}

		result = append(result, resp)
	}

	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	err = enc.Encode(result)
	if err != nil {
		logger.WithError(err).Error("Unable to encode response")
	}
}
