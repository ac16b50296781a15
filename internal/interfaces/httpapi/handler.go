package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/lol-stats/external/riot"
	"github.com/riskibarqy/lol-stats/internal/executor"
	"github.com/riskibarqy/lol-stats/internal/platform/logging"
	"github.com/riskibarqy/lol-stats/internal/usecase"
)

// TaskTracker exposes task progress to pollers. *executor.Executor satisfies it.
type TaskTracker interface {
	Record(h executor.Handle) (executor.Record, bool)
	StatusAll(handles []executor.Handle) bool
}

type Handler struct {
	summonerService *usecase.SummonerService
	pipeline        *usecase.IngestionPipeline
	tasks           TaskTracker
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	summonerService *usecase.SummonerService,
	pipeline *usecase.IngestionPipeline,
	tasks TaskTracker,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		summonerService: summonerService,
		pipeline:        pipeline,
		tasks:           tasks,
		logger:          logger.Named("handler"),
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func parseRegion(raw string) (string, error) {
	region, err := riot.ParseRegion(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return region.String(), nil
}

func parseSummonerID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: summoner id must be a positive integer", usecase.ErrInvalidInput)
	}
	return id, nil
}
