package handler

import (
	"errors"
	"mime"
	"net/http"

	"github.com/AlexZinkM/cryptovault/internal/crypto"
	"github.com/AlexZinkM/cryptovault/internal/jsonx"
	"github.com/AlexZinkM/cryptovault/internal/mnemonic"
	"github.com/AlexZinkM/cryptovault/internal/model"
	"github.com/AlexZinkM/cryptovault/swap"
	"github.com/AlexZinkM/cryptovault/wallet"

	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies; the largest one is a 24-word import
const maxBodyBytes = 64 << 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsonx.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg, Code: code})
}

// allowMethod writes 405 and returns false when r does not use method
func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	http.Error(w, "Method not allowed. Should be "+method, http.StatusMethodNotAllowed)
	return false
}

// decodeBody reads a JSON request body into v, writing 400 on failure
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	// a JSON content type forces browsers to preflight cross-origin calls
	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt != "application/json" {
		writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := jsonx.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// errorStatus maps domain errors to an HTTP status and a stable code
func errorStatus(err error) (int, string) {
	var (
		subErr     *model.SubmissionError
		timeoutErr *model.ConfirmationTimeoutError
	)
	switch {
	case errors.Is(err, crypto.ErrLocked), errors.Is(err, wallet.ErrNoWallet):
		return http.StatusLocked, "locked"
	case errors.Is(err, crypto.ErrAuthentication):
		return http.StatusUnauthorized, "authentication_failed"
	case errors.Is(err, crypto.ErrDecryption):
		return http.StatusInternalServerError, "decryption_failed"
	case errors.Is(err, wallet.ErrUnknownAccount):
		return http.StatusNotFound, "unknown_account"
	case errors.Is(err, wallet.ErrNoSeedPhrase):
		return http.StatusConflict, "no_seed_phrase"
	case errors.Is(err, mnemonic.ErrInvalidMnemonic):
		return http.StatusBadRequest, "invalid_mnemonic"
	case errors.Is(err, model.ErrInvalidKey):
		return http.StatusBadRequest, "invalid_key"
	case errors.Is(err, model.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid_amount"
	case errors.Is(err, model.ErrInvalidRecipient):
		return http.StatusBadRequest, "invalid_recipient"
	case errors.Is(err, wallet.ErrInvalidName),
		errors.Is(err, wallet.ErrEmptyCredentials),
		errors.Is(err, swap.ErrUnsupportedToken):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, model.ErrNoRoute):
		return http.StatusUnprocessableEntity, "no_route"
	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout, "confirmation_timeout"
	case errors.As(err, &subErr):
		return http.StatusUnprocessableEntity, string(subErr.Kind)
	}
	return http.StatusInternalServerError, "internal"
}

// fail writes err as JSON. Unexpected errors are logged and hidden from the client.
func fail(w http.ResponseWriter, logger *zap.Logger, err error) {
	status, code := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
		msg = "Internal error"
	}
	writeError(w, status, code, msg)
}
