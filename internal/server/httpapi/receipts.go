package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/models"
)

type receiptUploadResponse struct {
	TransactionID string `json:"transaction_id"`
	UploadURL     string `json:"upload_url"`
}

type receiptStatusResponse struct {
	TransactionID string `json:"transaction_id"`
	UploadStatus  string `json:"upload_status"`
}

type receiptDownloadResponse struct {
	TransactionID string `json:"transaction_id"`
	DownloadURL   string `json:"download_url"`
	UploadStatus  string `json:"upload_status"`
}

// handleRequestReceiptUpload returns a presigned PUT URL for attaching a
// receipt file to the transaction.
func (s *Server) handleRequestReceiptUpload(w http.ResponseWriter, r *http.Request) {
	task, err := s.receipts.RequestUpload(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, receiptUploadResponse{
		TransactionID: task.TransactionID,
		UploadURL:     task.URL,
	})
}

// handleCompleteReceiptUpload acknowledges that the client finished its PUT.
func (s *Server) handleCompleteReceiptUpload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.receipts.MarkUploaded(r.Context(), userFromContext(r.Context()), id); err != nil {
		s.writeAPIError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, receiptStatusResponse{
		TransactionID: id,
		UploadStatus:  models.UploadStatusUploaded,
	})
}

// handleDownloadReceipt returns a presigned GET URL for the stored receipt.
func (s *Server) handleDownloadReceipt(w http.ResponseWriter, r *http.Request) {
	dl, err := s.receipts.Download(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, receiptDownloadResponse{
		TransactionID: dl.TransactionID,
		DownloadURL:   dl.URL,
		UploadStatus:  dl.UploadStatus,
	})
}
