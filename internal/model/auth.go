package model

// Screen is the entry screen chosen on restart
type Screen string

const (
	ScreenOnboarding Screen = "onboarding-choice"
	ScreenUnlock     Screen = "unlock"
	ScreenLogin      Screen = "login"
	ScreenHome       Screen = "home"
)

// SignupRequest represents request for POST /auth/signup
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	// Mnemonic is set when onboarding imports an existing seed phrase
	Mnemonic string `json:"mnemonic,omitempty"`
}

// LoginRequest represents request for POST /auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PasswordRequest represents request for POST /auth/unlock and POST /wallet/private-key
type PasswordRequest struct {
	Password string `json:"password"`
}

// StateResponse represents response for GET /auth/state
type StateResponse struct {
	Screen   Screen `json:"screen"`
	Unlocked bool   `json:"unlocked"`
}

// WalletResponse is the public view of the wallet (no private material)
type WalletResponse struct {
	Accounts          []AccountView `json:"accounts"`
	SelectedAccountID string        `json:"selectedAccountId"`
}

// AccountView is an account without its secret
type AccountView struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Blockchain Blockchain `json:"blockchain"`
	Address    string     `json:"address"`
}

// NewWalletResponse strips secrets from w
func NewWalletResponse(w *Wallet) WalletResponse {
	views := make([]AccountView, 0, len(w.Accounts))
	for _, acc := range w.Accounts {
		views = append(views, AccountView{
			ID:         acc.ID,
			Name:       acc.Name,
			Blockchain: acc.Blockchain(),
			Address:    acc.Address(),
		})
	}
	return WalletResponse{Accounts: views, SelectedAccountID: w.SelectedAccountID}
}

// CreateAccountRequest represents request for POST /wallet/accounts
type CreateAccountRequest struct {
	Blockchain string `json:"blockchain"`
}

// ImportAccountRequest represents request for POST /wallet/import
type ImportAccountRequest struct {
	Blockchain string `json:"blockchain"`
	PrivateKey string `json:"privateKey"`
}

// ImportAccountResponse represents response for POST /wallet/import
type ImportAccountResponse struct {
	Account AccountView `json:"account"`
	Added   bool        `json:"added"`
}

// SelectAccountRequest represents request for POST /wallet/select
type SelectAccountRequest struct {
	AccountID string `json:"accountId"`
}

// RenameAccountRequest represents request for POST /wallet/rename
type RenameAccountRequest struct {
	AccountID string `json:"accountId"`
	Name      string `json:"name"`
}

// SecretResponse carries a revealed seed phrase or private key
type SecretResponse struct {
	Secret string `json:"secret"`
}

// ReceiveResponse represents response for GET /wallet/receive
type ReceiveResponse struct {
	Address string `json:"address"`
	QR      string `json:"QR"` // base64 PNG
}
