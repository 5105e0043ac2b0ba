package model

import "expo-booth/common/currency"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type OrderLineRequest struct {
	BoothId  int64 `json:"booth_id" validate:"required"`
	Quantity int32 `json:"quantity" validate:"required,min=1"`
}

type QuoteOrderRequest struct {
	EventId  int64              `json:"event_id" validate:"required"`
	Currency currency.Currency  `json:"currency" validate:"required,oneof=USD KHR"`
	Booths   []OrderLineRequest `json:"booths" validate:"required,min=1,dive"`
}

type QuoteLineResponse struct {
	BoothId        int64             `json:"booth_id"`
	BoothNumber    string            `json:"booth_number"`
	BoothTypeName  string            `json:"booth_type_name"`
	Size           string            `json:"size"`
	Quantity       int32             `json:"quantity"`
	UnitPrice      float64           `json:"unit_price"`
	TotalPrice     float64           `json:"total_price"`
	Currency       currency.Currency `json:"currency"`
	SourcePrice    float64           `json:"source_price"`
	SourceCurrency currency.Currency `json:"source_currency"`
}

type QuoteOrderResponse struct {
	TotalAmount float64             `json:"total_amount"`
	Currency    currency.Currency   `json:"currency"`
	Booths      []QuoteLineResponse `json:"booths"`
}

type CreateOrderRequest struct {
	EventId     int64              `json:"event_id" validate:"required"`
	Currency    currency.Currency  `json:"currency" validate:"required,oneof=USD KHR"`
	FirstName   string             `json:"first_name" validate:"required,max=100"`
	LastName    string             `json:"last_name" validate:"required,max=100"`
	Email       string             `json:"email" validate:"required,email"`
	PhoneNumber string             `json:"phone_number" validate:"required,max=30"`
	CompanyName string             `json:"company_name" validate:"max=200"`
	Nationality string             `json:"nationality" validate:"max=100"`
	Note        string             `json:"note" validate:"max=500"`
	Booths      []OrderLineRequest `json:"booths" validate:"required,min=1,dive"`
}

type CreateOrderResponse struct {
	Id          int64             `json:"id"`
	OrderNo     string            `json:"order_no"`
	ExternalId  string            `json:"external_id"`
	TotalAmount float64           `json:"total_amount"`
	Currency    currency.Currency `json:"currency"`
	Status      OrderStatus       `json:"status"`
}

type CreateOrderEventMessage struct {
	ID          int64   `json:"id"`
	OrderNo     string  `json:"order_no"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	TotalAmount float64 `json:"total_amount"`
	Currency    string  `json:"currency"`
	BoothNames  string  `json:"booth_names"`
}

type CompleteOrderEventMessage struct {
	OrderID          int64  `json:"order_id"`
	TransactionNo    string `json:"transaction_no"`
	PaymentTimestamp string `json:"payment_timestamp"`
}

type CancelOrderEventMessage struct {
	OrderNo     string  `json:"order_no"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	TotalAmount float64 `json:"total_amount"`
	Currency    string  `json:"currency"`
}

type SendEmailEventMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
