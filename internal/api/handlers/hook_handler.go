package handlers

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/TWRT/catalyst-bridge/internal/client/trello"
	"github.com/TWRT/catalyst-bridge/internal/models"
	"github.com/TWRT/catalyst-bridge/internal/service"
)

const maxHookBodyBytes = 1 << 20

// CardProcessor is the part of service.HookService the webhook needs.
type CardProcessor interface {
	Preview(ctx context.Context, response models.FormResponse) (*models.NewCard, error)
	Process(ctx context.Context, response models.FormResponse) (*service.Reconciled, error)
}

// HookRequestBody is decoded in two steps: the response is only parsed once
// the token has been checked.
type HookRequestBody struct {
	Token    string          `json:"token"`
	Response json.RawMessage `json:"response"`
}

func (b *HookRequestBody) FormResponse() (models.FormResponse, error) {
	response := models.FormResponse{}
	if len(b.Response) == 0 || string(b.Response) == "null" {
		return response, nil
	}
	if err := json.Unmarshal(b.Response, &response); err != nil {
		return nil, err
	}
	if response == nil {
		response = models.FormResponse{}
	}
	return response, nil
}

type HookHandler struct {
	processor  CardProcessor
	hookSecret string
	logger     *slog.Logger
}

func NewHookHandler(processor CardProcessor, hookSecret string, logger *slog.Logger) *HookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HookHandler{
		processor:  processor,
		hookSecret: hookSecret,
		logger:     logger,
	}
}

func (h *HookHandler) HandleHook(w http.ResponseWriter, r *http.Request) {
	logger := LoggerFromContext(r.Context(), h.logger)

	reqBody, err := decodeHookBody(w, r)
	if err != nil {
		logger.WarnContext(r.Context(), "malformed hook body", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Malformed body: " + err.Error(),
		})
		return
	}

	if !h.authorized(reqBody.Token) {
		logger.WarnContext(r.Context(), "hook rejected: bad token")
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error": "Bad authentication",
		})
		return
	}

	response, err := reqBody.FormResponse()
	if err != nil {
		logger.WarnContext(r.Context(), "malformed form response", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Malformed body: " + err.Error(),
		})
		return
	}

	if dryRun, _ := strconv.ParseBool(r.URL.Query().Get("dry_run")); dryRun {
		card, err := h.processor.Preview(r.Context(), response)
		if err != nil {
			h.writeProcessError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"card": card,
		})
		return
	}

	result, err := h.processor.Process(r.Context(), response)
	if err != nil {
		h.writeProcessError(w, r, logger, err)
		return
	}

	logger.InfoContext(r.Context(), "hook processed", "card_id", result.Card.ID)
	writeJSON(w, http.StatusCreated, result)
}

func (h *HookHandler) authorized(token string) bool {
	if h.hookSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.hookSecret)) == 1
}

func (h *HookHandler) writeProcessError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	logger.ErrorContext(r.Context(), "hook failed", "error", err)

	status := http.StatusInternalServerError
	body := map[string]interface{}{
		"error": "Failed: " + err.Error(),
	}

	var reconcileErr *service.ReconcileError
	var apiErr *trello.APIError
	switch {
	case errors.As(err, &reconcileErr):
		status = http.StatusBadGateway
		body["stage"] = reconcileErr.Stage
		body["created_labels"] = reconcileErr.Created
	case errors.As(err, &apiErr):
		status = http.StatusBadGateway
	}

	writeJSON(w, status, body)
}

// decodeHookBody accepts a JSON body, or a form-encoded body whose "payload"
// field holds the JSON document.
func decodeHookBody(w http.ResponseWriter, r *http.Request) (*HookRequestBody, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxHookBodyBytes)

	var raw []byte
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		raw = []byte(r.PostForm.Get("payload"))
	} else {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		raw = body
	}

	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, errors.New("empty body")
	}

	var reqBody HookRequestBody
	if err := json.Unmarshal(raw, &reqBody); err != nil {
		return nil, err
	}
	return &reqBody, nil
}
