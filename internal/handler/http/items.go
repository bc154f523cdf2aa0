package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r).With().Str("func", "*Handler.createItem").Logger()

	user, kind, ok := h.userAndKind(w, r)
	if !ok {
		return
	}

	var request models.ItemRequest
	if err := utils.DecodeJSON(r, &request); err != nil {
		log.Err(err).Msg("error decoding item")
		h.writeError(w, errors.Join(ErrInvalidJSON, err))
		return
	}

	created, err := h.services.ItemService.Create(r.Context(), user, models.PlainItem{Kind: kind, Fields: request.Fields})
	if err != nil {
		log.Err(err).Msg("error creating item")
		h.writeError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r).With().Str("func", "*Handler.getItem").Logger()

	user, kind, ok := h.userAndKind(w, r)
	if !ok {
		return
	}
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	item, err := h.services.ItemService.Get(r.Context(), user, kind, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("error getting item")
		h.writeError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, item, http.StatusOK)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r).With().Str("func", "*Handler.listItems").Logger()

	user, kind, ok := h.userAndKind(w, r)
	if !ok {
		return
	}

	items, err := h.services.ItemService.List(r.Context(), user, kind)
	if err != nil {
		log.Err(err).Msg("error listing items")
		h.writeError(w, err)
		return
	}
	if items == nil {
		items = []models.PlainItem{}
	}

	_, _ = utils.WriteJSON(w, models.ItemListResponse{Items: items, Length: len(items)}, http.StatusOK)
}

func (h *Handler) replaceItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r).With().Str("func", "*Handler.replaceItem").Logger()

	user, kind, ok := h.userAndKind(w, r)
	if !ok {
		return
	}
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	var request models.ItemRequest
	if err := utils.DecodeJSON(r, &request); err != nil {
		log.Err(err).Msg("error decoding item")
		h.writeError(w, errors.Join(ErrInvalidJSON, err))
		return
	}

	replaced, err := h.services.ItemService.Replace(r.Context(), user, models.PlainItem{ID: id, Kind: kind, Fields: request.Fields})
	if err != nil {
		log.Err(err).Int64("id", id).Msg("error replacing item")
		h.writeError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, replaced, http.StatusOK)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r).With().Str("func", "*Handler.deleteItem").Logger()

	user, kind, ok := h.userAndKind(w, r)
	if !ok {
		return
	}
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	if err := h.services.ItemService.Delete(r.Context(), user, kind, id); err != nil {
		log.Err(err).Int64("id", id).Msg("error deleting item")
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// userAndKind reads the authenticated user and the {kind} path segment. On
// failure the error response is already written.
func (h *Handler) userAndKind(w http.ResponseWriter, r *http.Request) (models.User, models.ItemKind, bool) {
	user, ok := h.user(w, r)
	if !ok {
		return models.User{}, "", false
	}

	kind, ok := models.ParseItemKind(chi.URLParam(r, "kind"))
	if !ok {
		h.writeError(w, ErrUnknownKind)
		return models.User{}, "", false
	}

	return user, kind, true
}

func (h *Handler) itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, ErrInvalidItemID)
		return 0, false
	}
	return id, true
}

func (h *Handler) user(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		h.writeError(w, ErrNoUserInContext)
		return models.User{}, false
	}
	return user, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	utils.WriteError(w, messageFromError(err), statusFromError(err))
}
