// Package bakong talks to the Bakong open API: it renews and caches the
// API token and checks whether a KHQR transfer has been acknowledged.
// The gateway answers from its own ledger, so an unacknowledged
// transfer is a normal transient state, not a failure.
package bakong

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"expo-booth/common/constant"
	"expo-booth/common/errs"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	BaseURL     string
	AccountID   string
	AccountName string
	PhoneNumber string
	RenewEmail  string
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	cache      *redis.Client
}

func NewClient(cfg Config, cache *redis.Client) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		cache: cache,
	}
}

type apiResponse struct {
	ResponseCode    int             `json:"responseCode"`
	ResponseMessage string          `json:"responseMessage"`
	ErrorCode       *int            `json:"errorCode"`
	Data            json.RawMessage `json:"data"`
}

type renewTokenData struct {
	Token string `json:"token"`
}

// AccountTransactionData is the gateway's acknowledgment record for a
// settled transfer.
type AccountTransactionData struct {
	Hash               string  `json:"hash"`
	FromAccountID      string  `json:"fromAccountId"`
	ToAccountID        string  `json:"toAccountId"`
	Currency           string  `json:"currency"`
	Amount             float64 `json:"amount"`
	Description        string  `json:"description"`
	CreatedDateMs      int64   `json:"createdDateMs"`
	AcknowledgedDateMs int64   `json:"acknowledgedDateMs"`
}

// CheckTransaction polls the gateway for the transfer matching md5.
// A nil record with a nil error means the transfer has not been
// acknowledged yet; the caller should retry later.
func (c *Client) CheckTransaction(ctx context.Context, md5 string) (*AccountTransactionData, error) {
	if md5 == "" {
		return nil, &errs.HttpError{Code: http.StatusBadRequest, Message: "Missing md5"}
	}

	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{"Authorization": "Bearer " + token}
	resp, err := c.post(ctx, "/v1/check_transaction_by_md5", map[string]string{"md5": md5}, headers)
	if err != nil {
		return nil, err
	}

	if resp.ResponseCode != 0 || len(resp.Data) == 0 {
		return nil, nil
	}

	var data AccountTransactionData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, &errs.UpstreamError{Op: "check_transaction_by_md5", Err: err}
	}

	return &data, nil
}

// token returns the cached API token, renewing it through the gateway
// when the cache is empty. Tokens stay valid for a week.
func (c *Client) token(ctx context.Context) (string, error) {
	cached, err := c.cache.Get(ctx, constant.BakongTokenKey).Result()
	if err == nil && cached != "" {
		return cached, nil
	}
	if err != nil && err != redis.Nil {
		return "", err
	}

	resp, err := c.post(ctx, "/v1/renew_token", map[string]string{"email": c.cfg.RenewEmail}, nil)
	if err != nil {
		return "", err
	}

	var data renewTokenData
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			return "", &errs.UpstreamError{Op: "renew_token", Err: err}
		}
	}

	if data.Token == "" {
		return "", &errs.UpstreamError{Op: "renew_token", Err: fmt.Errorf("%s", resp.ResponseMessage)}
	}

	if err := c.cache.Set(ctx, constant.BakongTokenKey, data.Token, constant.BakongTokenTTL).Err(); err != nil {
		return "", err
	}

	return data.Token, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, headers map[string]string) (*apiResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errs.UpstreamError{Op: path, Err: err}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= http.StatusInternalServerError {
		return nil, &errs.UpstreamError{Op: path, Err: fmt.Errorf("gateway returned status %d", httpResp.StatusCode)}
	}

	var resp apiResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, &errs.UpstreamError{Op: path, Err: err}
	}

	return &resp, nil
}
