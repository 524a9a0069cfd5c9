package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	ts := httptest.NewServer(handler)
	return New(ts.URL, 5*time.Second), ts
}

func TestLogin_StoresToken(t *testing.T) {
	var gotPath, gotCT, gotUser, gotPass string

	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCT = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotUser = r.PostFormValue("username")
		gotPass = r.PostFormValue("password")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok123", "token_type": "bearer"})
	}))
	defer ts.Close()

	err := c.Login(context.Background(), "alice@example.com", []byte("password1"))
	require.NoError(t, err)

	assert.Equal(t, "/token", gotPath)
	assert.Equal(t, "application/x-www-form-urlencoded", gotCT)
	assert.Equal(t, "alice@example.com", gotUser)
	assert.Equal(t, "password1", gotPass)
	assert.Equal(t, "tok123", c.Token())
}

func TestLogin_BadCredentials(t *testing.T) {
	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
	}))
	defer ts.Close()

	err := c.Login(context.Background(), "alice@example.com", []byte("wrong"))
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "Invalid credentials")
	assert.Empty(t, c.Token())
}

func TestLogin_ServerDown(t *testing.T) {
	c, ts := newTestClient(http.NotFoundHandler())
	ts.Close()

	err := c.Login(context.Background(), "alice@example.com", []byte("password1"))
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestWhoami_AttachesBearer(t *testing.T) {
	var gotAuth string

	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "u1", "email": "alice@example.com", "role": "user"})
	}))
	defer ts.Close()

	c.token = "tok123"

	u, err := c.Whoami(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "user", u.Role)
}

func TestCreateUser(t *testing.T) {
	var gotBody map[string]string

	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "u2", "email": gotBody["email"], "role": gotBody["role"]})
	}))
	defer ts.Close()

	u, err := c.CreateUser(context.Background(), "bob@example.com", []byte("password1"), "user")
	require.NoError(t, err)

	assert.Equal(t, "bob@example.com", gotBody["email"])
	assert.Equal(t, "password1", gotBody["password"])
	assert.Equal(t, "user", gotBody["role"])
	assert.Equal(t, "u2", u.ID)
}

func TestListTransactions_Filter(t *testing.T) {
	var gotQuery map[string][]string

	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "t1", "user_id": "u1", "amount": 25.5, "description": "groceries", "date": "2025-04-01"},
			{"id": "t2", "user_id": "u1", "amount": 10.0, "description": "coffee", "date": "2025-03-15"},
		})
	}))
	defer ts.Close()

	minAmount := 5.0
	maxAmount := 100.0
	list, err := c.ListTransactions(context.Background(), &ListFilter{
		Query:     "groceries",
		MinAmount: &minAmount,
		MaxAmount: &maxAmount,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"groceries"}, gotQuery["q"])
	assert.Equal(t, []string{"5"}, gotQuery["min_amount"])
	assert.Equal(t, []string{"100"}, gotQuery["max_amount"])

	require.Len(t, list, 2)
	assert.Equal(t, "t1", list[0].ID)
	assert.Equal(t, 25.5, list[0].Amount)
	assert.Equal(t, "2025-04-01", list[0].Date)
}

func TestListTransactions_NilFilter(t *testing.T) {
	var gotRawQuery string

	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRawQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	}))
	defer ts.Close()

	list, err := c.ListTransactions(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, gotRawQuery)
	assert.Empty(t, list)
}

func TestCreateTransaction(t *testing.T) {
	var gotBody map[string]any

	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "t9", "user_id": "u1",
			"amount": gotBody["amount"], "description": gotBody["description"], "date": gotBody["date"],
		})
	}))
	defer ts.Close()

	tr, err := c.CreateTransaction(context.Background(), 42.75, "utility bill", "2025-05-01")
	require.NoError(t, err)

	assert.Equal(t, 42.75, gotBody["amount"])
	assert.Equal(t, "utility bill", gotBody["description"])
	assert.Equal(t, "2025-05-01", gotBody["date"])
	assert.Equal(t, "t9", tr.ID)
	assert.Equal(t, 42.75, tr.Amount)
}

func TestReceiptCalls(t *testing.T) {
	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/transactions/t1/receipt":
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]string{"transaction_id": "t1", "upload_url": "http://s3/put"})
		case r.Method == http.MethodPost && r.URL.Path == "/transactions/t1/receipt/complete":
			_ = json.NewEncoder(w).Encode(map[string]string{"transaction_id": "t1", "upload_status": "uploaded"})
		case r.Method == http.MethodGet && r.URL.Path == "/transactions/t1/receipt":
			_ = json.NewEncoder(w).Encode(map[string]string{"transaction_id": "t1", "download_url": "http://s3/get", "upload_status": "uploaded"})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	up, err := c.RequestReceiptUpload(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", up.TransactionID)
	assert.Equal(t, "http://s3/put", up.UploadURL)

	require.NoError(t, c.CompleteReceiptUpload(context.Background(), "t1"))

	dl, err := c.GetReceiptDownload(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "http://s3/get", dl.DownloadURL)
	assert.Equal(t, "uploaded", dl.UploadStatus)
}

func TestAPIError_Fallbacks(t *testing.T) {
	t.Run("detail from envelope", func(t *testing.T) {
		c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Not found"})
		}))
		defer ts.Close()

		_, err := c.Whoami(context.Background())
		require.EqualError(t, err, "Not found")
	})

	t.Run("non-JSON body falls back to status", func(t *testing.T) {
		c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("<html>boom</html>"))
		}))
		defer ts.Close()

		_, err := c.Whoami(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("401 wraps ErrUnauthorized", func(t *testing.T) {
		c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
		}))
		defer ts.Close()

		_, err := c.Whoami(context.Background())
		require.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestLogout_ForgetsToken(t *testing.T) {
	c := New("http://localhost:8080", time.Second)
	c.token = "tok123"

	c.Logout()

	assert.Empty(t, c.Token())
}
