// Package client implements the HTTP client the LedgerKeeper CLI uses to
// talk to the server API. A Client keeps the access token from the last
// successful login and attaches it as a bearer credential on later calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerkeeper/ledgerkeeper/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// apiError mirrors the server's error envelope.
type apiError struct {
	Detail string `json:"detail"`
}

// User is an account as returned by the API.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Transaction is a financial record as returned by the API. Date stays in
// its wire form (YYYY-MM-DD).
type Transaction struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// ReceiptUpload is the server's answer to an upload request: the presigned
// URL to PUT the file bytes to.
type ReceiptUpload struct {
	TransactionID string `json:"transaction_id"`
	UploadURL     string `json:"upload_url"`
}

// ReceiptDownload points at the stored receipt file.
type ReceiptDownload struct {
	TransactionID string `json:"transaction_id"`
	DownloadURL   string `json:"download_url"`
	UploadStatus  string `json:"upload_status"`
}

// ListFilter narrows ListTransactions results. Zero values mean no
// constraint.
type ListFilter struct {
	Query     string
	MinAmount *float64
	MaxAmount *float64
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Client talks to the LedgerKeeper HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New returns a Client for the API at baseURL. The timeout bounds every
// request.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Token returns the access token from the last successful login, or "".
func (c *Client) Token() string {
	return c.token
}

// Logout forgets the stored access token.
func (c *Client) Logout() {
	c.token = ""
}

// Login exchanges credentials for an access token and stores it for later
// calls. The caller owns the password slice and should wipe it afterwards.
func (c *Client) Login(ctx context.Context, email string, password []byte) error {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", string(password))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiErrorFrom(resp)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return err
	}

	c.token = tr.AccessToken
	return nil
}

// Whoami returns the account behind the stored token.
func (c *Client) Whoami(ctx context.Context) (*User, error) {
	var u User
	if err := c.doJSON(ctx, http.MethodGet, "/whoami", nil, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser registers an account. The server only allows this for admins.
func (c *Client) CreateUser(ctx context.Context, email string, password []byte, role string) (*User, error) {
	in := map[string]string{"email": email, "password": string(password), "role": role}
	var u User
	if err := c.doJSON(ctx, http.MethodPost, "/users", in, &u, http.StatusCreated); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListTransactions returns the caller's transactions, newest first. A nil
// filter lists everything visible to the caller.
func (c *Client) ListTransactions(ctx context.Context, filter *ListFilter) ([]Transaction, error) {
	path := "/transactions"
	if filter != nil {
		q := url.Values{}
		if filter.Query != "" {
			q.Set("q", filter.Query)
		}
		if filter.MinAmount != nil {
			q.Set("min_amount", strconv.FormatFloat(*filter.MinAmount, 'f', -1, 64))
		}
		if filter.MaxAmount != nil {
			q.Set("max_amount", strconv.FormatFloat(*filter.MaxAmount, 'f', -1, 64))
		}
		if len(q) > 0 {
			path += "?" + q.Encode()
		}
	}

	var list []Transaction
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateTransaction records a transaction. Date must be YYYY-MM-DD.
func (c *Client) CreateTransaction(ctx context.Context, amount float64, description, date string) (*Transaction, error) {
	in := map[string]any{"amount": amount, "description": description, "date": date}
	var tr Transaction
	if err := c.doJSON(ctx, http.MethodPost, "/transactions", in, &tr, http.StatusCreated); err != nil {
		return nil, err
	}
	return &tr, nil
}

// RequestReceiptUpload asks the server for a presigned upload URL for the
// transaction's receipt.
func (c *Client) RequestReceiptUpload(ctx context.Context, transactionID string) (*ReceiptUpload, error) {
	var up ReceiptUpload
	path := "/transactions/" + url.PathEscape(transactionID) + "/receipt"
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &up, http.StatusCreated); err != nil {
		return nil, err
	}
	return &up, nil
}

// CompleteReceiptUpload tells the server the file bytes were stored.
func (c *Client) CompleteReceiptUpload(ctx context.Context, transactionID string) error {
	path := "/transactions/" + url.PathEscape(transactionID) + "/receipt/complete"
	return c.doJSON(ctx, http.MethodPost, path, nil, nil, http.StatusOK)
}

// GetReceiptDownload asks the server for a presigned download URL for the
// transaction's receipt.
func (c *Client) GetReceiptDownload(ctx context.Context, transactionID string) (*ReceiptDownload, error) {
	var dl ReceiptDownload
	path := "/transactions/" + url.PathEscape(transactionID) + "/receipt"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &dl, http.StatusOK); err != nil {
		return nil, err
	}
	return &dl, nil
}

// doJSON performs one API request. A non-nil in is sent as a JSON body, a
// non-nil out receives the decoded response, and wantStatus is the expected
// success code.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any, wantStatus int) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return c.apiErrorFrom(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return err
		}
	}
	return nil
}

// apiErrorFrom turns a non-success response into an error, preferring the
// server's detail message over the bare status line.
func (c *Client) apiErrorFrom(resp *http.Response) error {
	var ae apiError
	b, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(b, &ae); err != nil || ae.Detail == "" {
		ae.Detail = resp.Status
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrUnauthorized, ae.Detail)
	}
	return errors.New(ae.Detail)
}
