package status

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/carson-networks/budget-ledger/internal/logging"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Storage pinger
}

func NewHandler(storage pinger) Handler {
	return Handler{Storage: storage}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != "GET" {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	if err := h.Storage.Ping(req.Context()); err != nil {
		logData.AddData("storage", "unreachable")
		w.WriteHeader(http.StatusServiceUnavailable)
		return fmt.Errorf("status: storage ping: %w", err)
	}

	w.WriteHeader(http.StatusOK)
	return nil
}
