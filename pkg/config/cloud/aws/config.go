package aws

import (
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/elatovg/gce-snapshots/pkg/errors"
	"github.com/elatovg/gce-snapshots/pkg/logger"
	"go.uber.org/zap"
)

type Config struct {
	AccessKey    string
	SecretKey    string
	Region       string
	SessionToken string
}

func LoadConfig() *Config {
	return &Config{
		AccessKey:    os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretKey:    os.Getenv("AWS_SECRET_ACCESS_KEY"),
		Region:       os.Getenv("AWS_REGION"),
		SessionToken: os.Getenv("AWS_SESSION_TOKEN"),
	}
}

// Validate requires a region. Static keys are optional but must come as a
// pair; without them the SDK default credential chain is used.
func (c *Config) Validate() error {
	var missing []string
	if c.Region == "" {
		missing = append(missing, "AWS_REGION")
	}
	if c.AccessKey != "" && c.SecretKey == "" {
		missing = append(missing, "AWS_SECRET_ACCESS_KEY")
	}
	if c.SecretKey != "" && c.AccessKey == "" {
		missing = append(missing, "AWS_ACCESS_KEY_ID")
	}

	if len(missing) > 0 {
		logger.GetLogger().Error("AWS config validation failed", zap.Strings("missing", missing))
		return errors.NewErrMissingCredentials(missing)
	}
	return nil
}

// HasStaticCredentials reports whether an access key pair was configured.
func (c *Config) HasStaticCredentials() bool {
	return c.AccessKey != "" && c.SecretKey != ""
}

func (c *Config) GetCredentials() interface{} {
	return aws.Credentials{
		AccessKeyID:     c.AccessKey,
		SecretAccessKey: c.SecretKey,
		SessionToken:    c.SessionToken,
	}
}

func (c *Config) GetRegion() string {
	return c.Region
}
