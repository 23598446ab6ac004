package httpapi

import (
	"fmt"
	"net/http"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/google/uuid"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.accounts.Register(r.Context(), domain.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.signIn(w, r, user.ID); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{Success: true, User: toUser(user)})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.accounts.Login(r.Context(), domain.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.signIn(w, r, user.ID); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{Success: true, User: toUser(user)})
}

// Logout ends the whole session, cart included.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Delete(r.Context(), sessionID(r)); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.setSessionCookie(w, "", -1)
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "signed out"})
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	account, err := h.accounts.Account(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccount(account))
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.accounts.UpdateProfile(r.Context(), userID, req.toInput())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{Success: true, User: toUser(user)})
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req passwordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	err = h.accounts.ChangePassword(r.Context(), userID, domain.PasswordChangeInput{
		CurrentPassword:    req.CurrentPassword,
		NewPassword:        req.NewPassword,
		ConfirmNewPassword: req.ConfirmNewPassword,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "password updated"})
}

func (h *Handler) currentUser(r *http.Request) (uuid.UUID, error) {
	userID, ok, err := h.users.CurrentUser(r.Context(), sessionID(r))
	if err != nil {
		return uuid.Nil, fmt.Errorf("users.CurrentUser: %w", err)
	}
	if !ok {
		return uuid.Nil, domain.ErrUnauthenticated
	}
	return userID, nil
}

// signIn moves the cart to a fresh session id bound to userID, so an id issued before sign-in stops working.
func (h *Handler) signIn(w http.ResponseWriter, r *http.Request, userID uuid.UUID) error {
	ctx := r.Context()
	oldID := sessionID(r)
	newID := uuid.NewString()

	cart, err := h.carts.Load(ctx, oldID)
	if err != nil {
		return fmt.Errorf("carts.Load: %w", err)
	}

	if !cart.IsEmpty() {
		_, err := h.carts.Update(ctx, newID, func(domain.Cart) (domain.Cart, error) {
			return cart, nil
		})
		if err != nil {
			return fmt.Errorf("carts.Update: %w", err)
		}
	}

	if err := h.users.SignIn(ctx, newID, userID); err != nil {
		return fmt.Errorf("users.SignIn: %w", err)
	}

	if err := h.carts.Delete(ctx, oldID); err != nil {
		return fmt.Errorf("carts.Delete: %w", err)
	}

	h.setSessionCookie(w, newID, int(h.opts.SessionTTL.Seconds()))
	return nil
}
