package model

import "expo-booth/common/currency"

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

type CreatePaymentRequest struct {
	OrderId int64  `json:"order_id" validate:"required"`
	Note    string `json:"note" validate:"max=500"`
}

type CreatePaymentResponse struct {
	Id            int64             `json:"id"`
	TransactionNo string            `json:"transaction_no"`
	QRCode        string            `json:"qr_code"`
	Md5           string            `json:"md5"`
	Amount        float64           `json:"amount"`
	Currency      currency.Currency `json:"currency"`
}

type PaymentStatusRequest struct {
	TransactionId int64 `json:"transaction_id" validate:"required"`
}

type PaymentStatusResponse struct {
	OrderId          int64             `json:"order_id"`
	TransactionNo    string            `json:"transaction_no"`
	Amount           float64           `json:"amount"`
	Currency         currency.Currency `json:"currency"`
	Status           TransactionStatus `json:"status"`
	PaymentTimestamp string            `json:"payment_timestamp,omitempty"`
}
