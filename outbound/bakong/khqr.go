package bakong

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"

	"expo-booth/common/currency"
)

// EMV QR tag ids used by KHQR payloads.
const (
	tagPayloadFormat       = "00"
	tagPointOfInitiation   = "01"
	tagMerchantAccount     = "29"
	tagMerchantCategory    = "52"
	tagTransactionCurrency = "53"
	tagTransactionAmount   = "54"
	tagCountryCode         = "58"
	tagMerchantName        = "59"
	tagMerchantCity        = "60"
	tagAdditionalData      = "62"
	tagCRC                 = "63"

	subTagAccountID     = "00"
	subTagBillNumber    = "01"
	subTagMobileNumber  = "02"
	subTagStoreLabel    = "03"
	subTagTerminalLabel = "07"
)

// ISO 4217 numeric codes for the two supported currencies.
var currencyNumericCode = map[currency.Currency]string{
	currency.USD: "840",
	currency.KHR: "116",
}

type KHQRRequest struct {
	TransactionNo string
	Amount        float64
	Currency      currency.Currency
}

type KHQR struct {
	QR  string
	Md5 string
}

// GenerateKHQR builds a scannable KHQR payload for an individual
// account and the md5 of the payload, which the gateway uses as the
// transaction lookup key.
func (c *Client) GenerateKHQR(req KHQRRequest) (KHQR, error) {
	if c.cfg.AccountID == "" {
		return KHQR{}, fmt.Errorf("missing bakong account id in configuration")
	}
	if c.cfg.AccountName == "" {
		return KHQR{}, fmt.Errorf("missing bakong account name in configuration")
	}
	if req.Amount <= 0 {
		return KHQR{}, fmt.Errorf("amount to pay must be greater than 0")
	}

	numericCode, ok := currencyNumericCode[req.Currency]
	if !ok {
		return KHQR{}, fmt.Errorf("unsupported currency %s", req.Currency)
	}

	payload := tlv(tagPayloadFormat, "01") +
		tlv(tagPointOfInitiation, "12") +
		tlv(tagMerchantAccount, tlv(subTagAccountID, c.cfg.AccountID)) +
		tlv(tagMerchantCategory, "0000") +
		tlv(tagTransactionCurrency, numericCode) +
		tlv(tagTransactionAmount, strconv.FormatFloat(req.Amount, 'f', -1, 64)) +
		tlv(tagCountryCode, "KH") +
		tlv(tagMerchantName, c.cfg.AccountName) +
		tlv(tagMerchantCity, "Phnom Penh") +
		tlv(tagAdditionalData,
			tlv(subTagBillNumber, req.TransactionNo)+
				tlv(subTagMobileNumber, c.cfg.PhoneNumber)+
				tlv(subTagStoreLabel, c.cfg.AccountName)+
				tlv(subTagTerminalLabel, c.cfg.AccountName),
		)

	payload += tagCRC + "04"
	payload += fmt.Sprintf("%04X", crc16(payload))

	sum := md5.Sum([]byte(payload))

	return KHQR{QR: payload, Md5: hex.EncodeToString(sum[:])}, nil
}

func tlv(tag, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, len(value), value)
}

// crc16 is CRC-16/CCITT-FALSE, the checksum EMV QR payloads carry in
// their final tag.
func crc16(s string) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range []byte(s) {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
