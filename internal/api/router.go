package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/TWRT/catalyst-bridge/internal/api/handlers"
	"github.com/TWRT/catalyst-bridge/internal/client"
	"github.com/TWRT/catalyst-bridge/internal/config"
	"github.com/TWRT/catalyst-bridge/internal/mapping"
	"github.com/TWRT/catalyst-bridge/internal/service"
)

const requestIDHeader = "X-Request-Id"

func SetupRouter(
	cfg *config.Config,
	board client.BoardClient,
	mappingConfig *mapping.Config,
	renderer service.Renderer,
	logger *slog.Logger,
) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	hookService := service.NewHookService(
		board,
		mappingConfig,
		renderer,
		cfg.TrelloBoardID,
		cfg.TrelloListID,
		service.WithLogger(logger),
		service.WithLabelDedupe(cfg.DedupeLabels),
	)

	healthHandler := handlers.NewHealthHandler()
	hookHandler := handlers.NewHookHandler(hookService, cfg.HookSecret, logger)

	mux.HandleFunc("GET /health", healthHandler.GetHealth)
	mux.HandleFunc("POST /hook", hookHandler.HandleHook)
	mux.HandleFunc("POST /{$}", hookHandler.HandleHook)

	return withRequestID(logger, mux)
}

// withRequestID tags every request with an id, echoed back in the response
// header and attached to the request logger.
func withRequestID(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		reqLogger := logger.With("request_id", requestID, "method", r.Method, "path", r.URL.Path)
		ctx := handlers.ContextWithLogger(r.Context(), reqLogger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
