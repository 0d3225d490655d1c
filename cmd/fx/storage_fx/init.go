package storage_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"lumijob/internal/config"
	"lumijob/pkg/storage"
)

var Module = fx.Provide(provideObjectStore)

// provideObjectStore returns a nil store when MinIO is not configured;
// uploads then fail with a storage error.
func provideObjectStore(cfg config.Config, logger *zap.Logger) (storage.ObjectStore, error) {
	if cfg.MinioEndpoint == "" {
		logger.Info("object storage not configured")
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := storage.NewMinioStore(ctx, storage.MinioOptions{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
		BaseURL:   cfg.MediaBaseURL,
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}
