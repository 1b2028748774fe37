package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Srinu-likitha/store-management-mvp/internal/config"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/repository"
)

// Services is the business-logic layer, wired once in main.
type Services struct {
	Auth    *AuthService
	Invoice *InvoiceService
	Dc      *DcService
	Export  *ExportService
	Stats   *StatsService
	Storage AttachmentStore
}

// NewServices creates the service set. MinIO is optional: without an
// endpoint configured the attachment store is nil and invoice creation
// rejects attachments with a configuration error.
func NewServices(db *gorm.DB, repos *repository.Repositories, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *Services {
	var storage AttachmentStore
	if cfg.MinIO.Endpoint != "" {
		client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			logger.Warn("MinIO client init failed, attachments disabled", zap.Error(err))
		} else {
			storage = NewMinioStore(client, cfg.MinIO.Bucket, cfg.MinIO.PublicURL)
		}
	}

	return &Services{
		Auth:    NewAuthService(repos.User, rdb, cfg),
		Invoice: NewInvoiceService(db, repos.Invoice, repos.Counter, storage, logger),
		Dc:      NewDcService(repos.Dc),
		Export:  NewExportService(repos.Invoice),
		Stats:   NewStatsService(repos.Invoice, repos.Dc, rdb),
		Storage: storage,
	}
}
