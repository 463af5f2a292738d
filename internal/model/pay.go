package model

// PayRequest represents request for POST /send
type PayRequest struct {
	ToAddress string `json:"toAddress" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
}

// PayResponse represents response for POST /send
type PayResponse struct {
	TxID        string `json:"txId"`
	Blockchain  string `json:"blockchain"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}
