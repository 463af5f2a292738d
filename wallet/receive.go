package wallet

import (
	"encoding/base64"
	"fmt"

	"github.com/AlexZinkM/cryptovault/internal/model"

	"github.com/skip2/go-qrcode"
)

// ReceiveQR renders the address of acc as a base64 PNG QR code
func ReceiveQR(acc model.Account) (*model.ReceiveResponse, error) {
	address := acc.Address()
	if address == "" {
		return nil, fmt.Errorf("account %s has no address", acc.ID)
	}

	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return &model.ReceiveResponse{
		Address: address,
		QR:      base64.StdEncoding.EncodeToString(png),
	}, nil
}
