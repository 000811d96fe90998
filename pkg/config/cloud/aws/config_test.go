package aws_test

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/elatovg/gce-snapshots/pkg/config/cloud/aws"
	cerrors "github.com/elatovg/gce-snapshots/pkg/errors"
	"github.com/elatovg/gce-snapshots/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	logger.SetLogger(zap.NewNop())
	m.Run()
}

func TestLoadConfig(t *testing.T) {
	t.Run("all fields set", func(t *testing.T) {
		t.Setenv("AWS_ACCESS_KEY_ID", "test-access")
		t.Setenv("AWS_SECRET_ACCESS_KEY", "test-secret")
		t.Setenv("AWS_REGION", "test-region")
		t.Setenv("AWS_SESSION_TOKEN", "test-token")

		cfg := awsConfig.LoadConfig()

		assert.Equal(t, "test-access", cfg.AccessKey)
		assert.Equal(t, "test-secret", cfg.SecretKey)
		assert.Equal(t, "test-region", cfg.Region)
		assert.Equal(t, "test-token", cfg.SessionToken)
	})

	t.Run("region only", func(t *testing.T) {
		t.Setenv("AWS_ACCESS_KEY_ID", "")
		t.Setenv("AWS_SECRET_ACCESS_KEY", "")
		t.Setenv("AWS_REGION", "eu-west-1")
		t.Setenv("AWS_SESSION_TOKEN", "")

		cfg := awsConfig.LoadConfig()

		assert.Equal(t, "eu-west-1", cfg.GetRegion())
		assert.False(t, cfg.HasStaticCredentials())
	})
}

func TestGetCredentials(t *testing.T) {
	cfg := &awsConfig.Config{
		AccessKey:    "AKIAEXAMPLE",
		SecretKey:    "SecretKeyExample",
		SessionToken: "SessionTokenExample",
	}

	creds, ok := cfg.GetCredentials().(aws.Credentials)
	require.True(t, ok, "Should return aws.Credentials type")

	assert.Equal(t, "AKIAEXAMPLE", creds.AccessKeyID)
	assert.Equal(t, "SecretKeyExample", creds.SecretAccessKey)
	assert.Equal(t, "SessionTokenExample", creds.SessionToken)
	assert.True(t, cfg.HasStaticCredentials())
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name        string
		config      awsConfig.Config
		wantMissing []string
	}{
		{
			name:   "static credentials",
			config: awsConfig.Config{AccessKey: "a", SecretKey: "s", Region: "us-east-1"},
		},
		{
			name:   "default credential chain",
			config: awsConfig.Config{Region: "us-east-1"},
		},
		{
			name:        "missing region",
			config:      awsConfig.Config{AccessKey: "a", SecretKey: "s"},
			wantMissing: []string{"AWS_REGION"},
		},
		{
			name:        "access key without secret",
			config:      awsConfig.Config{AccessKey: "a", Region: "us-east-1"},
			wantMissing: []string{"AWS_SECRET_ACCESS_KEY"},
		},
		{
			name:        "secret without access key",
			config:      awsConfig.Config{SecretKey: "s"},
			wantMissing: []string{"AWS_REGION", "AWS_ACCESS_KEY_ID"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.wantMissing == nil {
				assert.NoError(t, err)
				return
			}
			var missing cerrors.ErrMissingCredentials
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tc.wantMissing, missing.Missing)
		})
	}
}

func TestValidateLogsMissingFields(t *testing.T) {
	original := logger.Log
	defer logger.SetLogger(original)

	core, recorded := observer.New(zap.ErrorLevel)
	logger.SetLogger(zap.New(core))

	_ = (&awsConfig.Config{}).Validate()

	entries := recorded.FilterMessage("AWS config validation failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, []interface{}{"AWS_REGION"}, entries[0].ContextMap()["missing"])
}
