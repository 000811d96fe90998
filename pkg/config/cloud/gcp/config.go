package gcp

import (
	"os"

	"github.com/elatovg/gce-snapshots/pkg/errors"
)

type Config struct {
	// CredentialsFile is a service account key. Empty means application
	// default credentials.
	CredentialsFile string
	// Endpoint overrides the Compute Engine base URL, e.g. for an emulator.
	Endpoint string
}

func LoadConfig() *Config {
	return &Config{
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		Endpoint:        os.Getenv("COMPUTE_ENDPOINT"),
	}
}

func (c *Config) Validate() error {
	if c.CredentialsFile == "" {
		return nil
	}
	info, err := os.Stat(c.CredentialsFile)
	if err != nil {
		return errors.NewErrCredentialsFile(c.CredentialsFile, err)
	}
	if info.IsDir() {
		return errors.NewErrCredentialsFile(c.CredentialsFile, os.ErrInvalid)
	}
	return nil
}

func (c *Config) GetCredentials() interface{} {
	return c.CredentialsFile
}

// GetRegion is empty: every Compute Engine call names its zone explicitly.
func (c *Config) GetRegion() string {
	return ""
}
