package http

import (
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

func (h *Handler) mintVaultKey(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r).With().Str("func", "*Handler.mintVaultKey").Logger()

	user, ok := h.user(w, r)
	if !ok {
		return
	}

	if err := h.services.VaultService.MintKey(r.Context(), user); err != nil {
		log.Err(err).Msg("error minting vault key")
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) rotateVaultKey(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r).With().Str("func", "*Handler.rotateVaultKey").Logger()

	user, ok := h.user(w, r)
	if !ok {
		return
	}

	if err := h.services.VaultService.RotateKey(r.Context(), user); err != nil {
		log.Err(err).Msg("error rotating vault key")
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) sealSnapshot(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r).With().Str("func", "*Handler.sealSnapshot").Logger()

	user, ok := h.user(w, r)
	if !ok {
		return
	}

	report, err := h.services.VaultService.SealSnapshot(r.Context(), user)
	if err != nil {
		log.Err(err).Msg("error sealing snapshot")
		h.writeError(w, err)
		return
	}
	if len(report.Skipped) > 0 {
		log.Warn().Int("skipped", len(report.Skipped)).Msg("snapshot sealed without undecryptable items")
	}

	_, _ = utils.WriteJSON(w, models.SnapshotResponse{Items: report.Sealed, Skipped: report.Skipped}, http.StatusOK)
}

func (h *Handler) openSnapshot(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r).With().Str("func", "*Handler.openSnapshot").Logger()

	user, ok := h.user(w, r)
	if !ok {
		return
	}

	snapshot, err := h.services.VaultService.OpenSnapshot(r.Context(), user)
	if err != nil {
		log.Err(err).Msg("error opening snapshot")
		h.writeError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, snapshot, http.StatusOK)
}

func (h *Handler) importSnapshot(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r).With().Str("func", "*Handler.importSnapshot").Logger()

	user, ok := h.user(w, r)
	if !ok {
		return
	}

	imported, err := h.services.VaultService.ImportSnapshot(r.Context(), user)
	if err != nil {
		log.Err(err).Msg("error importing snapshot")
		h.writeError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.ImportResponse{Imported: imported}, http.StatusOK)
}
