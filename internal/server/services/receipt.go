package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerkeeper/ledgerkeeper/internal/common"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/auth"
	sc "github.com/ledgerkeeper/ledgerkeeper/internal/server/config"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/models"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/repositories/repomanager"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Seams over the AWS SDK. Tests swap these to presign without credentials
// or a reachable endpoint.
var (
	loadAWSConfig = config.LoadDefaultConfig

	newStorageClient = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newPresigner = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPut = func(ctx context.Context, pc *s3.PresignClient, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGet = func(ctx context.Context, pc *s3.PresignClient, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ReceiptService manages receipt attachments for transactions. Files never
// pass through the server: clients upload and download straight to the
// S3-compatible backend using short-lived presigned URLs.
type ReceiptService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewReceiptService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *ReceiptService {
	return &ReceiptService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

// newStorageKey builds an object key of the form
// receipts/<yyyy>/<mm>/<dd>/<uuid>, so bucket listings group by upload day.
func newStorageKey() string {
	return "receipts/" + time.Now().Format("2006/01/02") + "/" + uuid.NewString()
}

func (s *ReceiptService) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newStorageClient(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newPresigner(client), nil
}

func (s *ReceiptService) presignedPutURL(ctx context.Context) (string, string, error) {
	pc, err := s.presignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := newStorageKey()

	req, err := presignPut(ctx, pc, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

func (s *ReceiptService) presignedGetURL(ctx context.Context, key string) (string, error) {
	pc, err := s.presignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGet(ctx, pc, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// RequestUpload reserves a receipt slot for the transaction and returns a
// presigned PUT URL the client uploads the file to. Re-requesting replaces
// the previous slot (and its storage key). Requires modify access to the
// transaction.
func (s *ReceiptService) RequestUpload(ctx context.Context, actor *models.User, transactionID string) (*models.ReceiptUploadTask, error) {
	tr, err := fetchTransactionForAccess(ctx, s.repomanager.Transactions(s.db), actor, transactionID, auth.OpUpdate)
	if err != nil {
		return nil, err
	}

	storageKey, url, err := s.presignedPutURL(ctx)
	if err != nil {
		return nil, fmt.Errorf("error presigning upload: %w", err)
	}

	receiptRepo := s.repomanager.Receipts(s.db)
	err = receiptRepo.Upsert(ctx, &models.Receipt{
		TransactionID: tr.ID,
		UserID:        tr.UserID,
		StorageKey:    storageKey,
		UploadStatus:  models.UploadStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("error saving receipt: %w", err)
	}

	return &models.ReceiptUploadTask{TransactionID: tr.ID, URL: url}, nil
}

// MarkUploaded flips the receipt to uploaded after the client finished its
// PUT. A transaction without a requested upload yields ErrorNotFound.
func (s *ReceiptService) MarkUploaded(ctx context.Context, actor *models.User, transactionID string) error {
	tr, err := fetchTransactionForAccess(ctx, s.repomanager.Transactions(s.db), actor, transactionID, auth.OpUpdate)
	if err != nil {
		return err
	}

	receiptRepo := s.repomanager.Receipts(s.db)
	if err := receiptRepo.MarkUploaded(ctx, tr.ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error updating receipt: %w", err)
	}
	return nil
}

// Download returns a presigned GET URL for the stored receipt. Requires read
// access to the transaction; a missing receipt yields ErrorNotFound.
func (s *ReceiptService) Download(ctx context.Context, actor *models.User, transactionID string) (*models.ReceiptDownload, error) {
	tr, err := fetchTransactionForAccess(ctx, s.repomanager.Transactions(s.db), actor, transactionID, auth.OpRead)
	if err != nil {
		return nil, err
	}

	receiptRepo := s.repomanager.Receipts(s.db)
	receipt, err := receiptRepo.GetByTransactionID(ctx, tr.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error getting receipt: %w", err)
	}

	url, err := s.presignedGetURL(ctx, receipt.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("error presigning download: %w", err)
	}

	return &models.ReceiptDownload{
		TransactionID: receipt.TransactionID,
		URL:           url,
		UploadStatus:  receipt.UploadStatus,
	}, nil
}
