package handler

import (
	"net/http"

	"github.com/AlexZinkM/cryptovault/internal/logx"
	"github.com/AlexZinkM/cryptovault/internal/model"
	"github.com/AlexZinkM/cryptovault/wallet"

	"go.uber.org/zap"
)

// AuthHandler exposes the vault lifecycle
type AuthHandler struct {
	auth   *wallet.Auth
	logger *zap.Logger
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(auth *wallet.Auth, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logx.OrNop(logger).Named("http.auth")}
}

// State handles GET /auth/state
// @Summary      Entry screen
// @Description  Returns the screen to show after a restart and whether the vault is unlocked
// @Tags         auth
// @Produce      json
// @Success      200  {object}  model.StateResponse
// @Router       /auth/state [get]
func (h *AuthHandler) State(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	screen, err := h.auth.StartScreen()
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.StateResponse{Screen: screen, Unlocked: h.auth.Unlocked()})
}

// Signup handles POST /auth/signup
// @Summary      Create vault
// @Description  Creates the user, stores a new or imported seed phrase and derives the first SOL and ETH accounts
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      model.SignupRequest  true  "Credentials and optional mnemonic"
// @Success      201      {object}  model.WalletResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	password := []byte(req.Password)
	defer clear(password)

	wlt, err := h.auth.Signup(r.Context(), req.Username, password, req.Mnemonic)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, model.NewWalletResponse(wlt))
}

// Login handles POST /auth/login
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      model.LoginRequest  true  "Credentials"
// @Success      200      {object}  model.WalletResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	password := []byte(req.Password)
	defer clear(password)

	wlt, err := h.auth.Login(r.Context(), req.Username, password)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.NewWalletResponse(wlt))
}

// Unlock handles POST /auth/unlock
// @Summary      Unlock vault
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      model.PasswordRequest  true  "Password"
// @Success      200      {object}  model.WalletResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /auth/unlock [post]
func (h *AuthHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.PasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	password := []byte(req.Password)
	defer clear(password)

	wlt, err := h.auth.Unlock(r.Context(), password)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.NewWalletResponse(wlt))
}

// Lock handles POST /auth/lock
// @Summary      Lock vault
// @Tags         auth
// @Success      204
// @Router       /auth/lock [post]
func (h *AuthHandler) Lock(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	h.auth.Lock()
	w.WriteHeader(http.StatusNoContent)
}

// Logout handles POST /auth/logout
// @Summary      Log out
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	if err := h.auth.Logout(); err != nil {
		fail(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reset handles POST /auth/reset
// @Summary      Erase vault
// @Description  Removes the user, seed phrase and wallet from storage
// @Tags         auth
// @Success      204
// @Router       /auth/reset [post]
func (h *AuthHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	if err := h.auth.Reset(); err != nil {
		fail(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ChangePassword handles POST /auth/change-password
// @Summary      Change password
// @Description  Re-encrypts every stored record under the new password
// @Tags         auth
// @Accept       json
// @Param        request  body      changePasswordRequest  true  "Old and new password"
// @Success      204
// @Failure      401      {object}  model.ErrorResponse
// @Router       /auth/change-password [post]
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req changePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	oldPassword, newPassword := []byte(req.OldPassword), []byte(req.NewPassword)
	defer clear(oldPassword)
	defer clear(newPassword)

	if err := h.auth.ChangePassword(r.Context(), oldPassword, newPassword); err != nil {
		fail(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SeedPhrase handles POST /wallet/seed-phrase
// @Summary      Reveal seed phrase
// @Description  Re-verifies the password and returns the mnemonic
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.PasswordRequest  true  "Password"
// @Success      200      {object}  model.SecretResponse
// @Failure      401      {object}  model.ErrorResponse
// @Failure      423      {object}  model.ErrorResponse
// @Router       /wallet/seed-phrase [post]
func (h *AuthHandler) SeedPhrase(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.PasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	password := []byte(req.Password)
	defer clear(password)

	phrase, err := h.auth.RevealSeedPhrase(password)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SecretResponse{Secret: phrase})
}

// PrivateKey handles POST /wallet/private-key
// @Summary      Reveal private key
// @Description  Re-verifies the password and returns the private key of the selected account
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.PasswordRequest  true  "Password"
// @Success      200      {object}  model.SecretResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /wallet/private-key [post]
func (h *AuthHandler) PrivateKey(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.PasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	password := []byte(req.Password)
	defer clear(password)

	secret, err := h.auth.RevealPrivateKey(password)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SecretResponse{Secret: secret})
}
