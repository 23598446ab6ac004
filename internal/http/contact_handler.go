package httpapi

import (
	"net/http"

	"github.com/asadalimcj/zearsports/internal/domain"
)

const contactThanks = "Thank you for your message! We will get back to you soon."

func (h *Handler) SendContactMessage(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	err := h.contact.Send(r.Context(), domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: contactThanks})
}
