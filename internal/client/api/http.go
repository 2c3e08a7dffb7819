package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/walletdash/walletdash/internal/client/models"
	"github.com/walletdash/walletdash/internal/logging"
)

// TokenSource yields the current access token, or "" when no session exists.
type TokenSource func() string

var _ Client = (*HTTPClient)(nil)

// HTTPClient implements Client over the service's REST/JSON interface.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	logger  logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, token TokenSource, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		token:   token,
		logger:  logger.With("component", "api"),
	}
}

// do runs one request. auth selects bearer-token injection; a missing token
// on an authenticated call short-circuits to ErrSessionExpired without
// touching the network. On success the body is decoded into out (skipped
// when out is nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, auth bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if auth {
		token := c.token()
		if token == "" {
			return ErrSessionExpired
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed", "method", method, "path", path, "error", err.Error())
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	c.logger.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode)

	if auth && resp.StatusCode == http.StatusUnauthorized {
		return ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: extractMessage(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, payload any, auth bool, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s %s request: %w", method, path, err)
	}
	return c.do(ctx, method, path, bytes.NewReader(b), "application/json", auth, out)
}

// extractMessage pulls a human-readable message out of an error body. The
// service reports either {"detail": ...} or {"message": ...}.
func extractMessage(raw []byte) string {
	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Detail != "" {
		return body.Detail
	}
	return body.Message
}

// checkStatus enforces the {"status": "success"} convention on endpoints
// that promise it.
func checkStatus(status, message string, httpStatus int) error {
	if status == "success" {
		return nil
	}
	return &Error{Status: httpStatus, Message: message}
}

func buildMultipart(fields map[string]string, fileField, fileName string, file []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if len(file) > 0 {
		part, err := w.CreateFormFile(fileField, fileName)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// Login authenticates with the OAuth2-style form endpoint; the username
// field carries the email address.
func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", string(password))

	var resp struct {
		AccessToken string      `json:"access_token"`
		User        models.User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", false, &resp)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, &Error{Status: http.StatusOK, Message: "login failed"}
	}
	return &models.Session{AccessToken: resp.AccessToken, User: resp.User}, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) error {
	fields := map[string]string{
		"name":     req.Name,
		"email":    req.Email,
		"password": string(req.Password),
	}
	body, contentType, err := buildMultipart(fields, "profile_image", req.ImageName, req.Image)
	if err != nil {
		return fmt.Errorf("encode register request: %w", err)
	}

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, contentType, false, &resp); err != nil {
		return err
	}
	return checkStatus(resp.Status, resp.Message, http.StatusOK)
}

func (c *HTTPClient) ChangeName(ctx context.Context, newName string) (*models.User, error) {
	payload := map[string]string{"new_name": newName}

	var resp struct {
		Status  string      `json:"status"`
		Message string      `json:"message"`
		User    models.User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPut, "/api/auth/change-name", payload, true, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus(resp.Status, resp.Message, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *HTTPClient) ChangeImage(ctx context.Context, fileName string, image []byte) (*models.User, error) {
	body, contentType, err := buildMultipart(nil, "profile_image", fileName, image)
	if err != nil {
		return nil, fmt.Errorf("encode image request: %w", err)
	}

	var resp struct {
		Status  string      `json:"status"`
		Message string      `json:"message"`
		User    models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/auth/change-image", body, contentType, true, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus(resp.Status, resp.Message, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// UserWallets accepts both response shapes the service has been observed to
// produce: {"status": ..., "wallets": [...]} and a bare array.
func (c *HTTPClient) UserWallets(ctx context.Context, userID int64) ([]models.Wallet, error) {
	var raw json.RawMessage
	path := fmt.Sprintf("/api/wallets/user/%d", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, "", true, &raw); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var wallets []models.Wallet
		if err := json.Unmarshal(trimmed, &wallets); err != nil {
			return nil, fmt.Errorf("decode wallet list: %w", err)
		}
		return wallets, nil
	}

	var resp struct {
		Wallets []models.Wallet `json:"wallets"`
	}
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, fmt.Errorf("decode wallet list: %w", err)
	}
	return resp.Wallets, nil
}

func (c *HTTPClient) CreateWallet(ctx context.Context, userID int64, label string) (*models.Wallet, error) {
	payload := struct {
		UserID int64  `json:"user_id"`
		Label  string `json:"label"`
	}{UserID: userID, Label: label}

	var wallet models.Wallet
	if err := c.doJSON(ctx, http.MethodPost, "/api/wallets/create", payload, true, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (c *HTTPClient) DeleteWallet(ctx context.Context, walletID int64) error {
	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	path := fmt.Sprintf("/api/wallets/%d", walletID)
	if err := c.do(ctx, http.MethodDelete, path, nil, "", true, &resp); err != nil {
		return err
	}
	return checkStatus(resp.Status, resp.Message, http.StatusOK)
}

// Deposit submits a deposit and returns the transaction hash. The amount is
// sent as a JSON number, exactly as the service expects.
func (c *HTTPClient) Deposit(ctx context.Context, walletAddress string, amount decimal.Decimal) (string, error) {
	payload := struct {
		WalletAddress string      `json:"wallet_address"`
		Amount        json.Number `json:"amount"`
	}{WalletAddress: walletAddress, Amount: json.Number(amount.String())}

	var resp struct {
		Status          string `json:"status"`
		Message         string `json:"message"`
		TransactionHash string `json:"transaction_hash"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/wallets/deposit", payload, true, &resp); err != nil {
		return "", err
	}
	if err := checkStatus(resp.Status, resp.Message, http.StatusOK); err != nil {
		return "", err
	}
	return resp.TransactionHash, nil
}

func (c *HTTPClient) Transfer(ctx context.Context, fromWallet, toWallet string, amount decimal.Decimal) (string, error) {
	payload := struct {
		FromWallet string      `json:"from_wallet"`
		ToWallet   string      `json:"to_wallet"`
		Amount     json.Number `json:"amount"`
		Confirm    bool        `json:"confirm"`
	}{FromWallet: fromWallet, ToWallet: toWallet, Amount: json.Number(amount.String()), Confirm: true}

	var resp struct {
		Status          string `json:"status"`
		Message         string `json:"message"`
		TransactionHash string `json:"transaction_hash"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/wallets/transfer", payload, true, &resp); err != nil {
		return "", err
	}
	if err := checkStatus(resp.Status, resp.Message, http.StatusOK); err != nil {
		return "", err
	}
	return resp.TransactionHash, nil
}

func (c *HTTPClient) WalletByAddress(ctx context.Context, address string) (*models.Wallet, error) {
	var resp struct {
		Wallet models.Wallet `json:"wallet"`
	}
	path := "/api/wallets/address/" + url.PathEscape(address)
	if err := c.do(ctx, http.MethodGet, path, nil, "", true, &resp); err != nil {
		return nil, err
	}
	return &resp.Wallet, nil
}

func (c *HTTPClient) RevealKey(ctx context.Context, walletAddress string) (string, error) {
	payload := map[string]string{"wallet_address": walletAddress}

	var resp struct {
		PrivateKey string `json:"private_key"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/wallets/reveal", payload, true, &resp); err != nil {
		return "", err
	}
	if resp.PrivateKey == "" {
		return "", &Error{Status: http.StatusOK, Message: "no private key in response"}
	}
	return resp.PrivateKey, nil
}

// ExportWallet returns the server-side path of the exported file.
func (c *HTTPClient) ExportWallet(ctx context.Context, walletAddress, format string) (string, error) {
	q := url.Values{}
	q.Set("wallet_address", walletAddress)
	q.Set("format", format)

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		File    string `json:"file"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/wallets/export?"+q.Encode(), nil, "", true, &resp); err != nil {
		return "", err
	}
	if err := checkStatus(resp.Status, resp.Message, http.StatusOK); err != nil {
		return "", err
	}
	return resp.File, nil
}

func (c *HTTPClient) WalletTransactions(ctx context.Context, address string) ([]models.Transaction, error) {
	var txs []models.Transaction
	path := "/api/transactions/" + url.PathEscape(address)
	if err := c.do(ctx, http.MethodGet, path, nil, "", true, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}
