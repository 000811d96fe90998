package env

import (
	"os"
	"strconv"

	"github.com/elatovg/gce-snapshots/internal/retention"
	"github.com/elatovg/gce-snapshots/pkg/config/cloud"
	"github.com/elatovg/gce-snapshots/pkg/errors"
	"github.com/elatovg/gce-snapshots/pkg/logger"
	"go.uber.org/zap"
)

const (
	DefaultHTTPPort     = 8080
	DefaultProviderType = cloud.GCP
)

type Config interface {
	PortToString() string
	InitiateLogger()
}

type Configurations struct {
	DebugMode         bool
	LogLevel          string
	CloudProviderType cloud.ProviderType
	HttpPort          int
	TimestampOffset   string
	WaitForOperations bool
	CloudConfig       cloud.ProviderConfig
	CloudProvider     CloudConfigProvider
}

type CloudConfigProvider interface {
	NewProviderConfig(cloud.ProviderType) (cloud.ProviderConfig, error)
}

type DefaultCloudProvider struct{}

func (d *DefaultCloudProvider) NewProviderConfig(p cloud.ProviderType) (cloud.ProviderConfig, error) {
	return cloud.NewProviderConfig(p)
}

func NewConfiguration() *Configurations {
	return &Configurations{
		HttpPort:          DefaultHTTPPort,
		CloudProviderType: DefaultProviderType,
		CloudProvider:     &DefaultCloudProvider{},
	}
}

func (c *Configurations) LoadGeneralConfig() error {
	debug, err := parseBool("DEBUG")
	if err != nil {
		logger.GetLogger().Error("failed to set up configuration", zap.Error(err))
		logger.GetLogger().Info("Ensure that DEBUG is set to true or false")
		return err
	}
	c.DebugMode = debug
	c.LogLevel = os.Getenv("LOG_LEVEL")

	if err := c.ValidateAndSetPort(); err != nil {
		logger.GetLogger().Error("Invalid port configuration", zap.Error(err))
		return err
	}

	if provider := os.Getenv("CLOUD_PROVIDER"); provider != "" {
		c.CloudProviderType = cloud.ProviderType(provider)
	}

	c.TimestampOffset = os.Getenv("TIMESTAMP_OFFSET")
	if c.TimestampOffset != "" && !retention.ValidOffset(c.TimestampOffset) {
		err := errors.NewInputValidation("TIMESTAMP_OFFSET", c.TimestampOffset, errors.ErrOffsetFormat)
		logger.GetLogger().Error("failed to set up configuration", zap.Error(err))
		return err
	}

	wait, err := parseBool("WAIT_FOR_OPERATIONS")
	if err != nil {
		logger.GetLogger().Error("failed to set up configuration", zap.Error(err))
		return err
	}
	c.WaitForOperations = wait

	return nil
}

// parseBool treats an unset variable as false.
func parseBool(name string) (bool, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.NewErrBoolParse(name, raw, err)
	}
	return v, nil
}

func (c *Configurations) LoadCloudConfig() error {
	cloudCfg, err := c.CloudProvider.NewProviderConfig(c.CloudProviderType)
	if err != nil {
		return err
	}
	c.CloudConfig = cloudCfg
	return nil
}

func (c *Configurations) ValidateGeneralConfig() error {
	if c.CloudConfig == nil {
		return errors.NewErrCloudConfigNotInit()
	}
	return c.CloudConfig.Validate()
}

func (c *Configurations) ValidateAndSetPort() error {
	portStr := os.Getenv("HTTP_PORT")
	if portStr == "" {
		return nil
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return errors.NewErrPortParse(portStr, err)
	}

	if port < 1 || port > 65535 {
		return errors.NewErrPortOutOfRange(port)
	}

	c.HttpPort = port
	return nil
}

func (c *Configurations) PortToString() string {
	return strconv.Itoa(c.HttpPort)
}

func (c *Configurations) InitiateLogger() {
	logger.Init(c.DebugMode, c.LogLevel)
}

func SetupConfigurations() (*Configurations, error) {
	configurations := NewConfiguration()

	if err := configurations.LoadGeneralConfig(); err != nil {
		return nil, err
	}

	configurations.InitiateLogger()

	if err := configurations.LoadCloudConfig(); err != nil {
		return nil, err
	}

	if err := configurations.ValidateGeneralConfig(); err != nil {
		return nil, err
	}

	return configurations, nil
}
