package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/dbx"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/repomanager"
)

// Upload describes one incoming profile file.
type Upload struct {
	FileName string
	Size     int64
	Mime     string
	Body     io.Reader
}

// FileService stores profile files in S3 and their metadata in the database.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	s3          S3Settings
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, store S3Settings) *FileService {
	return &FileService{db: db, repomanager: m, s3: store}
}

// Upload records the metadata and writes the object inside one transaction,
// so a failed write leaves no metadata behind. If the object was written but
// the transaction does not commit, the object is removed again.
func (s *FileService) Upload(ctx context.Context, userID string, up Upload) (*models.File, error) {
	if strings.TrimSpace(up.FileName) == "" {
		return nil, invalid("file name is required")
	}
	if up.Body == nil {
		return nil, invalid("file body is required")
	}

	client, err := s.s3.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}

	var (
		created *models.File
		written string
	)
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		f, err := s.repomanager.Files(tx).Create(ctx, &models.File{
			UserID:     userID,
			FileName:   up.FileName,
			Size:       up.Size,
			Mime:       up.Mime,
			StorageKey: StorageKey(up.FileName),
		})
		if err != nil {
			return err
		}

		bucket := s.s3.Bucket
		in := &s3.PutObjectInput{
			Bucket:        &bucket,
			Key:           aws.String(f.StorageKey),
			Body:          up.Body,
			ContentLength: aws.Int64(up.Size),
		}
		if up.Mime != "" {
			in.ContentType = aws.String(up.Mime)
		}
		if _, err := putObject(client, ctx, in); err != nil {
			return fmt.Errorf("put object: %w", err)
		}
		written = f.StorageKey

		created = f
		return nil
	})
	if err != nil {
		if written != "" {
			err = errors.Join(err, s.removeObject(context.WithoutCancel(ctx), client, written))
		}
		return nil, err
	}
	return created, nil
}

func (s *FileService) removeObject(ctx context.Context, client *s3.Client, key string) error {
	bucket := s.s3.Bucket
	if _, err := deleteObject(client, ctx, &s3.DeleteObjectInput{Bucket: &bucket, Key: aws.String(key)}); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (s *FileService) List(ctx context.Context) ([]*models.File, error) {
	files, err := s.repomanager.Files(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return files, nil
}

// DownloadURL returns a presigned GET URL for the file, valid for
// PresignExpiry.
func (s *FileService) DownloadURL(ctx context.Context, id string) (string, error) {
	if !validID(id) {
		return "", common.ErrorNotFound
	}

	f, err := s.repomanager.Files(s.db).GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	client, err := s.s3.client(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 client: %w", err)
	}

	bucket := s.s3.Bucket
	req, err := presignGetObject(client, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &f.StorageKey,
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	return req.URL, nil
}
