package netx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method      string
	contentType string
	body        []byte
}

func presignedStub(t *testing.T, status int, respond []byte) (*httptest.Server, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.contentType = r.Header.Get("Content-Type")
		rec.body, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
		_, _ = w.Write(respond)
	}))
	t.Cleanup(ts.Close)
	return ts, rec
}

func TestUploadToPresignedURL(t *testing.T) {
	payload := []byte("receipt bytes")

	t.Run("puts the bytes as octet-stream", func(t *testing.T) {
		ts, rec := presignedStub(t, http.StatusOK, nil)

		err := UploadToPresignedURL(context.Background(), ts.URL+"/r/1?X-Amz-Signature=abc", payload)
		require.NoError(t, err)
		require.Equal(t, http.MethodPut, rec.method)
		require.Equal(t, "application/octet-stream", rec.contentType)
		require.Equal(t, payload, rec.body)
	})

	t.Run("rejected signature surfaces status and body", func(t *testing.T) {
		ts, _ := presignedStub(t, http.StatusForbidden, []byte("SignatureDoesNotMatch"))

		err := UploadToPresignedURL(context.Background(), ts.URL, payload)
		require.ErrorContains(t, err, "upload failed: 403")
		require.ErrorContains(t, err, "SignatureDoesNotMatch")
	})

	t.Run("unreachable host is a transport error", func(t *testing.T) {
		ts, _ := presignedStub(t, http.StatusOK, nil)
		url := ts.URL
		ts.Close()

		err := UploadToPresignedURL(context.Background(), url, payload)
		require.Error(t, err)
		require.NotContains(t, err.Error(), "upload failed")
	})

	t.Run("cancelled context stops the request", func(t *testing.T) {
		ts, _ := presignedStub(t, http.StatusOK, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := UploadToPresignedURL(ctx, ts.URL, payload)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestDownloadFromPresignedURL(t *testing.T) {
	stored := []byte("stored receipt")

	t.Run("gets the object bytes", func(t *testing.T) {
		ts, rec := presignedStub(t, http.StatusOK, stored)

		got, err := DownloadFromPresignedURL(context.Background(), ts.URL+"/r/1?X-Amz-Signature=abc")
		require.NoError(t, err)
		require.Equal(t, http.MethodGet, rec.method)
		require.Equal(t, stored, got)
	})

	t.Run("missing object surfaces status and body", func(t *testing.T) {
		ts, _ := presignedStub(t, http.StatusNotFound, []byte("NoSuchKey"))

		_, err := DownloadFromPresignedURL(context.Background(), ts.URL)
		require.ErrorContains(t, err, "download failed: 404")
		require.ErrorContains(t, err, "NoSuchKey")
	})
}
