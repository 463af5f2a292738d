package handler

import (
	"net/http"

	"github.com/AlexZinkM/cryptovault/internal/logx"
	"github.com/AlexZinkM/cryptovault/internal/model"
	"github.com/AlexZinkM/cryptovault/wallet"

	"go.uber.org/zap"
)

// WalletHandler exposes account management of the unlocked wallet
type WalletHandler struct {
	registry *wallet.Registry
	logger   *zap.Logger
}

// NewWalletHandler creates a WalletHandler
func NewWalletHandler(registry *wallet.Registry, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{registry: registry, logger: logx.OrNop(logger).Named("http.wallet")}
}

// Get handles GET /wallet
// @Summary      Wallet accounts
// @Description  Lists accounts (addresses only) and the selected account id
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletResponse
// @Failure      423  {object}  model.ErrorResponse
// @Router       /wallet [get]
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	h.writeWallet(w)
}

// CreateAccount handles POST /wallet/accounts
// @Summary      Derive account
// @Description  Derives the next account on a chain from the seed phrase and selects it
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateAccountRequest  true  "Chain (SOL or ETH)"
// @Success      201      {object}  model.AccountView
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallet/accounts [post]
func (h *WalletHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.CreateAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}
	chain, err := model.ParseBlockchain(req.Blockchain)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	acc, err := h.registry.CreateAccount(r.Context(), chain)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, accountView(acc))
}

// Import handles POST /wallet/import
// @Summary      Import private key
// @Description  Adds an account from a raw private key. Importing a key already in the wallet changes nothing and reports added=false.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportAccountRequest  true  "Chain and private key"
// @Success      200      {object}  model.ImportAccountResponse
// @Success      201      {object}  model.ImportAccountResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallet/import [post]
func (h *WalletHandler) Import(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.ImportAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}
	chain, err := model.ParseBlockchain(req.Blockchain)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	acc, added, err := h.registry.ImportAccount(r.Context(), chain, req.PrivateKey)
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, model.ImportAccountResponse{Account: accountView(acc), Added: added})
}

// Select handles POST /wallet/select
// @Summary      Select account
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.SelectAccountRequest  true  "Account id"
// @Success      200      {object}  model.WalletResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /wallet/select [post]
func (h *WalletHandler) Select(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.SelectAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.registry.SelectAccount(r.Context(), req.AccountID); err != nil {
		fail(w, h.logger, err)
		return
	}
	h.writeWallet(w)
}

// Rename handles POST /wallet/rename
// @Summary      Rename account
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.RenameAccountRequest  true  "Account id and new name"
// @Success      200      {object}  model.WalletResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /wallet/rename [post]
func (h *WalletHandler) Rename(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.RenameAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.registry.RenameAccount(r.Context(), req.AccountID, req.Name); err != nil {
		fail(w, h.logger, err)
		return
	}
	h.writeWallet(w)
}

func (h *WalletHandler) writeWallet(w http.ResponseWriter) {
	wlt, err := h.registry.Wallet()
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.NewWalletResponse(wlt))
}

// Receive handles GET /wallet/receive
// @Summary      Receive QR code
// @Description  Returns the selected address and a base64 PNG QR code of it
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.ReceiveResponse
// @Failure      423  {object}  model.ErrorResponse
// @Router       /wallet/receive [get]
func (h *WalletHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	acc, err := h.registry.SelectedAccount()
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	resp, err := wallet.ReceiveQR(acc)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func accountView(acc model.Account) model.AccountView {
	return model.AccountView{
		ID:         acc.ID,
		Name:       acc.Name,
		Blockchain: acc.Blockchain(),
		Address:    acc.Address(),
	}
}
