package model

import "expo-booth/common/currency"

type BoothResponse struct {
	Id            int64             `json:"id"`
	BoothNumber   string            `json:"booth_number"`
	Hall          string            `json:"hall"`
	Size          string            `json:"size"`
	BoothTypeName string            `json:"booth_type_name"`
	UnitPrice     float64           `json:"unit_price"`
	Currency      currency.Currency `json:"currency"`
	IsReserved    bool              `json:"is_reserved"`
}

type ListBoothsResponse struct {
	Booths []BoothResponse `json:"booths"`
}
