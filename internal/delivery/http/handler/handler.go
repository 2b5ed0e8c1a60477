package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/imcharliesparks/listmaker/internal/delivery/http/request"
	"github.com/imcharliesparks/listmaker/internal/delivery/http/response"
	"github.com/imcharliesparks/listmaker/internal/repository"
	"github.com/imcharliesparks/listmaker/internal/usecase"
)

// userIDHeader carries the authenticated user id, set by the upstream
// identity proxy. Authentication itself is not this service's concern.
const userIDHeader = "X-User-ID"

type Handler struct {
	items      usecase.ItemManager
	ingestions usecase.IngestionManager
}

func NewHandler(items usecase.ItemManager, ingestions usecase.IngestionManager) *Handler {
	return &Handler{
		items:      items,
		ingestions: ingestions,
	}
}

func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req request.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ListID == 0 || req.URL == "" {
		h.writeJSONError(w, "List ID and URL are required", http.StatusBadRequest)
		return
	}

	item, err := h.items.AddItem(r.Context(), userID, req.ListID, req.URL)
	if err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			h.writeJSONError(w, "List not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to add item", "list_id", req.ListID, "url", req.URL, "error", err)
		h.writeJSONError(w, "Failed to add item", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{"item": response.FromItem(item)})
}

func (h *Handler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	listID, ok := h.pathID(w, r, "listId")
	if !ok {
		return
	}

	items, err := h.items.ListItems(r.Context(), userID, listID)
	if err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			h.writeJSONError(w, "List not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to list items", "list_id", listID, "error", err)
		h.writeJSONError(w, "Failed to get items", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"items": response.FromItems(items)})
}

func (h *Handler) HandleGetItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	itemID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.items.GetItem(r.Context(), userID, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			h.writeJSONError(w, "Item not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to get item", "item_id", itemID, "error", err)
		h.writeJSONError(w, "Failed to get item", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"item": response.FromItem(item)})
}

func (h *Handler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	itemID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.items.DeleteItem(r.Context(), userID, itemID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			h.writeJSONError(w, "Item not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to delete item", "item_id", itemID, "error", err)
		h.writeJSONError(w, "Failed to delete item", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}

func (h *Handler) HandleCreateIngestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req request.CreateIngestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ListID == 0 || req.URL == "" {
		h.writeJSONError(w, "List ID and URL are required", http.StatusBadRequest)
		return
	}

	job, err := h.ingestions.CreateJob(r.Context(), userID, req.ListID, req.URL)
	if err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			h.writeJSONError(w, "List not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to create ingestion job", "list_id", req.ListID, "url", req.URL, "error", err)
		h.writeJSONError(w, "Failed to create ingestion job", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, response.FromJob(job))
}

func (h *Handler) HandleGetIngestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	jobID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	job, err := h.ingestions.GetJob(r.Context(), userID, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			h.writeJSONError(w, "Ingestion job not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to get ingestion job", "job_id", jobID, "error", err)
		h.writeJSONError(w, "Failed to fetch ingestion job", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, response.FromJob(job))
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		h.writeJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		h.writeJSONError(w, "Invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
