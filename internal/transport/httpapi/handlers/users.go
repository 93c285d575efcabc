package handlers

import (
	"net/http"

	"github.com/dzvenyslavavovk/contacts-auth/internal/service"
	"github.com/dzvenyslavavovk/contacts-auth/internal/transport/httpapi/middleware"
)

// Me возвращает principal, разрешённый по bearer access-токену.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	raw, ok := middleware.BearerFromContext(r.Context())
	if !ok {
		h.errw.WriteError(w, r, service.ErrCouldNotValidate)
		return
	}

	user, err := h.svc.CurrentUser(r.Context(), raw)
	if err != nil {
		h.errw.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(user))
}
