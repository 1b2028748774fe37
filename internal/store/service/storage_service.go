package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/Srinu-likitha/store-management-mvp/internal/store/apperr"
)

// AttachmentStore uploads a document attachment and returns its public URL.
type AttachmentStore interface {
	Upload(ctx context.Context, content []byte, filename, contentType string) (string, error)
}

const attachmentPrefix = "material-invoices"

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9.\-]`)

// MinioStore stores PDF attachments in a MinIO bucket.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinioStore(client *minio.Client, bucket, publicURL string) *MinioStore {
	return &MinioStore{client: client, bucket: bucket, publicURL: publicURL}
}

// Upload writes a PDF to the bucket under a unique object name. Only
// application/pdf is accepted; upload failures keep the upstream status.
func (s *MinioStore) Upload(ctx context.Context, content []byte, filename, contentType string) (string, error) {
	if len(content) == 0 {
		return "", apperr.Validation("Invoice attachment is required")
	}
	if contentType != "application/pdf" {
		return "", apperr.Validation("Only PDF invoice attachments are allowed")
	}

	safeName := unsafeFileChars.ReplaceAllString(filename, "_")
	if safeName == "" {
		safeName = "invoice.pdf"
	}
	objectName := fmt.Sprintf("%s/%s/%s-%s",
		attachmentPrefix, time.Now().Format("2006/01/02"), uuid.New().String()[:8], safeName)

	_, err := s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		status := http.StatusBadGateway
		if resp := minio.ToErrorResponse(err); resp.StatusCode != 0 {
			status = resp.StatusCode
		}
		return "", apperr.Upstream(status, "Failed to upload invoice attachment", err)
	}

	base := s.publicURL
	if base == "" {
		base = s.client.EndpointURL().String()
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), s.bucket, objectName), nil
}
