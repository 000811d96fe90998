package cloud

import (
	"github.com/elatovg/gce-snapshots/pkg/config/cloud/aws"
	"github.com/elatovg/gce-snapshots/pkg/config/cloud/gcp"

	"github.com/elatovg/gce-snapshots/pkg/errors"
	"github.com/elatovg/gce-snapshots/pkg/logger"
	"go.uber.org/zap"
)

type ProviderConfig interface {
	Validate() error
	GetCredentials() interface{}
	GetRegion() string
}

type ProviderType string

const (
	AWS ProviderType = "aws"
	GCP ProviderType = "gcp"
)

func NewProviderConfig(provider ProviderType) (ProviderConfig, error) {
	switch provider {
	case GCP:
		cfg := gcp.LoadConfig()
		logger.GetLogger().Debug("Loaded GCP configuration",
			zap.Bool("application_default_credentials", cfg.CredentialsFile == ""),
			zap.String("endpoint", cfg.Endpoint))

		if err := cfg.Validate(); err != nil {
			logger.GetLogger().Error("GCP configuration validation failed", zap.Error(err))
			return nil, errors.NewGCPConfigValidation(err)
		}
		return cfg, nil

	case AWS:
		cfg := aws.LoadConfig()
		if cfg.HasStaticCredentials() && len(cfg.AccessKey) >= 4 {
			logger.GetLogger().Debug("Loaded AWS configuration",
				zap.String("access_key", cfg.AccessKey[:4]+"****"),
				zap.String("region", cfg.Region))
		}

		if err := cfg.Validate(); err != nil {
			logger.GetLogger().Error("AWS configuration validation failed", zap.Error(err))
			return nil, errors.NewAWSConfigValidation(err)
		}
		return cfg, nil

	default:
		return nil, errors.NewUnsupportedProvider(string(provider))
	}
}
