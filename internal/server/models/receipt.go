package models

import "time"

// Receipt upload states.
const (
	UploadStatusPending  = "pending"
	UploadStatusUploaded = "uploaded"
)

// Receipt describes server-side metadata for a document attached to a
// transaction. The document bytes themselves live in object storage; only
// presigned URLs ever cross the API.
type Receipt struct {
	// TransactionID links the receipt to its transaction. One receipt per
	// transaction at most.
	TransactionID string
	// UserID is the owner of the receipt (same as the transaction owner).
	UserID string
	// StorageKey is the object-storage key (path) of the document.
	StorageKey string
	// UploadStatus tracks upload state ("pending", "uploaded").
	UploadStatus string
	CreatedAt    time.Time
}

// ReceiptUploadTask instructs the client to upload a document using a
// presigned URL.
type ReceiptUploadTask struct {
	TransactionID string
	// URL is a temporary presigned HTTP URL for the client to PUT the bytes.
	URL string
}

// ReceiptDownload is a temporary presigned GET URL for a stored document.
type ReceiptDownload struct {
	TransactionID string
	URL           string
	UploadStatus  string
}
