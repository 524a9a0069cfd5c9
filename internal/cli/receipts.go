package cli

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/ledgerkeeper/ledgerkeeper/internal/filex"
	"github.com/ledgerkeeper/ledgerkeeper/internal/netx"
)

// AttachReceipt uploads a local file as the receipt of a transaction:
//  1. prompt for the transaction id and the file path,
//  2. request a presigned upload URL from the server,
//  3. PUT the file bytes to the storage backend,
//  4. confirm the upload so the server marks the receipt stored.
func (a *App) AttachReceipt(ctx context.Context) error {
	id, err := promptLine(a.reader, "Enter transaction id", os.Stdout)
	if err != nil {
		return err
	}

	path, err := promptLine(a.reader, "Enter file path", os.Stdout)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	up, err := a.api.RequestReceiptUpload(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := netx.UploadToPresignedURL(ctx, up.UploadURL, data); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.api.CompleteReceiptUpload(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	log.Printf("Receipt attached to %s", up.TransactionID)
	return nil
}

// FetchReceipt downloads a transaction's receipt into ./receipts/<id>.
func (a *App) FetchReceipt(ctx context.Context) error {
	id, err := promptLine(a.reader, "Enter transaction id", os.Stdout)
	if err != nil {
		return err
	}

	dl, err := a.api.GetReceiptDownload(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	data, err := netx.DownloadFromPresignedURL(ctx, dl.DownloadURL)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	dir, err := filex.EnsureSubDir("receipts")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	outputFile := filepath.Join(dir, dl.TransactionID)
	if err := os.WriteFile(outputFile, data, 0o600); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	log.Printf("Receipt saved to: %s", outputFile)
	return nil
}
