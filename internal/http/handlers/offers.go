package handlers

import (
	"errors"
	"net/http"
	"strings"

	"service-fleet-dispatch/internal/apperr"
	"service-fleet-dispatch/internal/logx"
)

// ActorHeader names the staff member resolving an offer on their behalf.
const ActorHeader = "X-User-ID"

// OffersHandler handles HTTP requests for vehicle offers.
type OffersHandler struct {
	broadcast broadcastUsecase
	resolve   resolveUsecase
	logger    logx.Logger
}

// NewOffersHandler creates a new OffersHandler.
func NewOffersHandler(logger logx.Logger, b broadcastUsecase, r resolveUsecase) *OffersHandler {
	return &OffersHandler{broadcast: b, resolve: r, logger: logger}
}

// Broadcast handles POST /v1/offers/broadcast.
// @Summary Broadcast a booking to eligible vehicles
// @Tags offers
// @Accept json
// @Produce json
// @Param request body broadcastRequest true "Broadcast payload"
// @Success 200 {object} broadcastResponse
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 404 {object} ErrorResponse "booking not found"
// @Failure 409 {object} ErrorResponse "booking already assigned or awaiting confirmation"
// @Failure 500 {object} ErrorResponse "internal error"
// @Router /v1/offers/broadcast [post]
func (h *OffersHandler) Broadcast(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	in, err := req.toModel()
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid bookingId")
		return
	}

	res, err := h.broadcast.Broadcast(r.Context(), in)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, broadcastResultToResponse(res))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "booking not found")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "booking already assigned or awaiting confirmation")
	default:
		h.internal(w, r, "offer broadcast failed", err)
	}
}

// Resolve handles POST /v1/offers/resolve.
// @Summary Confirm or reject an offer
// @Tags offers
// @Accept json
// @Produce json
// @Param request body resolveRequest true "Resolve payload"
// @Success 200 {object} resolveResponse
// @Failure 400 {object} ErrorResponse "invalid input, already resolved or expired"
// @Failure 404 {object} ErrorResponse "offer not found"
// @Failure 500 {object} ErrorResponse "internal error"
// @Router /v1/offers/resolve [post]
func (h *OffersHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	in, err := req.toModel(strings.TrimSpace(r.Header.Get(ActorHeader)))
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid confirmationId")
		return
	}

	res, err := h.resolve.Resolve(r.Context(), in)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, resolveResultToResponse(res))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrAlreadyResolved):
		writeError(h.logger, w, r, http.StatusBadRequest, "offer already resolved")
	case errors.Is(err, apperr.ErrExpired):
		writeError(h.logger, w, r, http.StatusBadRequest, "offer expired")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "offer not found")
	default:
		h.internal(w, r, "offer resolve failed", err)
	}
}

func (h *OffersHandler) internal(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if h.logger != nil {
		h.logger.Error(msg,
			logx.String("request_id", reqID(r.Context())),
			logx.Err(err),
		)
	}
	writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
}
