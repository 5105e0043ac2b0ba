package currency

import "fmt"

type Currency string

const (
	USD Currency = "USD"
	KHR Currency = "KHR"
)

// DefaultKhrRate is used when no rate is configured.
const DefaultKhrRate = 4096

func (c Currency) Valid() bool {
	return c == USD || c == KHR
}

// Converter converts amounts between USD and KHR at a fixed rate set at
// construction. Conversions between identical currencies are exact;
// cross-currency results are exact whenever the rate is a power of two
// (the default), otherwise subject to float64 rounding.
type Converter struct {
	khrPerUsd float64
}

func NewConverter(khrPerUsd float64) *Converter {
	if khrPerUsd <= 0 {
		khrPerUsd = DefaultKhrRate
	}
	return &Converter{khrPerUsd: khrPerUsd}
}

func (c *Converter) Rate(from, to Currency) (float64, error) {
	if from == to {
		return 1, nil
	}

	if from == USD && to == KHR {
		return c.khrPerUsd, nil
	}

	if from == KHR && to == USD {
		return 1 / c.khrPerUsd, nil
	}

	return 0, fmt.Errorf("exchange rate from %s to %s is not available", from, to)
}

func (c *Converter) Convert(amount float64, from, to Currency) (float64, error) {
	if from == to {
		return amount, nil
	}

	rate, err := c.Rate(from, to)
	if err != nil {
		return 0, err
	}

	return amount * rate, nil
}
