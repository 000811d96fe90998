package cli_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/elatovg/gce-snapshots/internal/app"
	"github.com/elatovg/gce-snapshots/internal/retention"
	"github.com/elatovg/gce-snapshots/pkg/config/env"
	customErr "github.com/elatovg/gce-snapshots/pkg/errors"
	"github.com/elatovg/gce-snapshots/pkg/logger"
	"github.com/elatovg/gce-snapshots/pkg/parser"
	"github.com/elatovg/gce-snapshots/pkg/ports"
	"github.com/elatovg/gce-snapshots/pkg/ports/cli"
	"github.com/elatovg/gce-snapshots/pkg/utils/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.SetLogger(zap.NewNop())
	os.Exit(m.Run())
}

type MockAppRunner struct {
	mock.Mock
}

func (m *MockAppRunner) Run(ctx context.Context, opts app.RunOptions, runtype ports.Runtype) (*retention.Result, error) {
	args := m.Called(ctx, opts, runtype)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*retention.Result), args.Error(1)
}

type MockServer struct {
	mock.Mock
}

func (m *MockServer) Start(port string) error {
	args := m.Called(port)
	return args.Error(0)
}

type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) ValidateProject(project string) error {
	return m.Called(project).Error(0)
}

func (m *MockValidator) ValidateInstanceName(name string) error {
	return m.Called(name).Error(0)
}

func (m *MockValidator) ValidateZone(zone string) error {
	return m.Called(zone).Error(0)
}

func (m *MockValidator) ValidateRetentionDays(raw string) (int, error) {
	args := m.Called(raw)
	return args.Int(0), args.Error(1)
}

func (m *MockValidator) ValidateOffset(offset string) error {
	return m.Called(offset).Error(0)
}

func (m *MockValidator) ValidateFormat(format string) (parser.ParserType, error) {
	args := m.Called(format)
	return args.Get(0).(parser.ParserType), args.Error(1)
}

func newRoot(a app.AppRunner, v validator.Validator, s cli.Server) *cobraRoot {
	return &cobraRoot{cli.NewCommand(a, v, s, env.NewConfiguration())}
}

type cobraRoot struct {
	*cli.Command
}

func (r *cobraRoot) execute(args ...string) error {
	if args == nil {
		args = []string{}
	}
	root := r.InitiateCommands()
	root.SetArgs(args)
	return root.Execute()
}

func writeProfile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestInitiateCommands(t *testing.T) {
	cmd := cli.NewCommand(new(MockAppRunner), validator.NewValidator(), new(MockServer), env.NewConfiguration())

	root := cmd.InitiateCommands()

	assert.Equal(t, "gce-snapshots <project_id>", root.Use)
	require.Len(t, root.Commands(), 1)
	assert.Equal(t, "serve", root.Commands()[0].Use)

	for flag, def := range map[string]string{
		"zone":   "us-central1-f",
		"name":   "demo-instance",
		"days":   "7",
		"offset": "",
		"wait":   "false",
	} {
		f := root.Flags().Lookup(flag)
		require.NotNil(t, f, flag)
		assert.Equal(t, def, f.DefValue, flag)
	}
}

func TestRunDefaults(t *testing.T) {
	mockApp := new(MockAppRunner)
	mockApp.On("Run", mock.Anything, app.RunOptions{
		Project:  "my-project",
		Zone:     "us-central1-f",
		Instance: "demo-instance",
		Days:     7,
	}, ports.CLI).Return(&retention.Result{}, nil)

	err := newRoot(mockApp, validator.NewValidator(), new(MockServer)).execute("my-project")

	assert.NoError(t, err)
	mockApp.AssertExpectations(t)
}

func TestRunFlags(t *testing.T) {
	mockApp := new(MockAppRunner)
	mockApp.On("Run", mock.Anything, app.RunOptions{
		Project:         "my-project",
		Zone:            "europe-west4-a",
		Instance:        "db-1",
		Days:            30,
		TimestampOffset: "-08:00",
		Wait:            true,
	}, ports.CLI).Return(&retention.Result{}, nil)

	err := newRoot(mockApp, validator.NewValidator(), new(MockServer)).execute(
		"my-project",
		"--zone", "europe-west4-a",
		"--name", "db-1",
		"--days", "30",
		"--offset", "-08:00",
		"--wait",
	)

	assert.NoError(t, err)
	mockApp.AssertExpectations(t)
}

func TestRunArgs(t *testing.T) {
	mockApp := new(MockAppRunner)
	root := newRoot(mockApp, validator.NewValidator(), new(MockServer))

	assert.Error(t, root.execute())
	assert.Error(t, root.execute("p1", "p2"))
	mockApp.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunInvalidDays(t *testing.T) {
	for _, days := range []string{"seven", "-1", "2.5"} {
		t.Run(days, func(t *testing.T) {
			mockApp := new(MockAppRunner)

			err := newRoot(mockApp, validator.NewValidator(), new(MockServer)).execute("p1", "--days="+days)

			var inputErr customErr.ErrInputValidation
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, "days", inputErr.Field)
			mockApp.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRunValidationStopsBeforeRun(t *testing.T) {
	mockApp := new(MockAppRunner)
	mockValidator := new(MockValidator)
	zoneErr := customErr.NewInputValidation("zone", "Nowhere", customErr.ErrZoneFormat)
	mockValidator.On("ValidateProject", "p1").Return(nil)
	mockValidator.On("ValidateZone", "Nowhere").Return(zoneErr)

	err := newRoot(mockApp, mockValidator, new(MockServer)).execute("p1", "--zone", "Nowhere")

	assert.ErrorIs(t, err, customErr.ErrZoneFormat)
	mockValidator.AssertExpectations(t)
	mockApp.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunAppError(t *testing.T) {
	mockApp := new(MockAppRunner)
	runErr := customErr.NewNoDisksFound("demo-instance")
	mockApp.On("Run", mock.Anything, mock.Anything, ports.CLI).Return(&retention.Result{}, runErr)

	err := newRoot(mockApp, validator.NewValidator(), new(MockServer)).execute("p1")

	assert.Equal(t, runErr, err)
}

func TestRunProfile(t *testing.T) {
	hcl := writeProfile(t, "profile.hcl", `
zone             = "us-east1-b"
instance         = "build-agent"
retention_days   = 14
timestamp_offset = "-07:00"
wait             = true
`)

	t.Run("profile supplies defaults", func(t *testing.T) {
		mockApp := new(MockAppRunner)
		mockApp.On("Run", mock.Anything, app.RunOptions{
			Project:         "p1",
			Zone:            "us-east1-b",
			Instance:        "build-agent",
			Days:            14,
			TimestampOffset: "-07:00",
			Wait:            true,
		}, ports.CLI).Return(&retention.Result{}, nil)

		err := newRoot(mockApp, validator.NewValidator(), new(MockServer)).execute("p1", "--profile", hcl)

		assert.NoError(t, err)
		mockApp.AssertExpectations(t)
	})

	t.Run("explicit flags win over profile", func(t *testing.T) {
		mockApp := new(MockAppRunner)
		mockApp.On("Run", mock.Anything, app.RunOptions{
			Project:         "p1",
			Zone:            "us-east1-b",
			Instance:        "other",
			Days:            7,
			TimestampOffset: "-07:00",
			Wait:            false,
		}, ports.CLI).Return(&retention.Result{}, nil)

		err := newRoot(mockApp, validator.NewValidator(), new(MockServer)).execute(
			"p1", "--profile", hcl, "--name", "other", "--days", "7", "--wait=false")

		assert.NoError(t, err)
		mockApp.AssertExpectations(t)
	})

	t.Run("json profile with explicit format", func(t *testing.T) {
		path := writeProfile(t, "profile.conf", `{"instance": "from-json"}`)
		mockApp := new(MockAppRunner)
		mockApp.On("Run", mock.Anything, app.RunOptions{
			Project:  "p1",
			Zone:     "us-central1-f",
			Instance: "from-json",
			Days:     7,
		}, ports.CLI).Return(&retention.Result{}, nil)

		err := newRoot(mockApp, validator.NewValidator(), new(MockServer)).execute(
			"p1", "--profile", path, "--format", "json")

		assert.NoError(t, err)
		mockApp.AssertExpectations(t)
	})

	t.Run("unsupported format", func(t *testing.T) {
		mockApp := new(MockAppRunner)

		err := newRoot(mockApp, validator.NewValidator(), new(MockServer)).execute(
			"p1", "--profile", hcl, "--format", "yaml")

		assert.ErrorIs(t, err, customErr.ErrFormatFlag)
		mockApp.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing profile", func(t *testing.T) {
		mockApp := new(MockAppRunner)

		err := newRoot(mockApp, validator.NewValidator(), new(MockServer)).execute(
			"p1", "--profile", filepath.Join(t.TempDir(), "nope.hcl"))

		var readErr customErr.ErrReadFile
		assert.ErrorAs(t, err, &readErr)
	})
}

func TestServeCommand(t *testing.T) {
	t.Run("default port from configuration", func(t *testing.T) {
		mockServer := new(MockServer)
		mockServer.On("Start", "8080").Return(nil)
		mockApp := new(MockAppRunner)

		err := newRoot(mockApp, validator.NewValidator(), mockServer).execute("serve")

		assert.NoError(t, err)
		mockServer.AssertNumberOfCalls(t, "Start", 1)
		mockApp.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("explicit port", func(t *testing.T) {
		mockServer := new(MockServer)
		mockServer.On("Start", "9090").Return(nil)

		err := newRoot(new(MockAppRunner), validator.NewValidator(), mockServer).execute("serve", "--port", "9090")

		assert.NoError(t, err)
		mockServer.AssertExpectations(t)
	})

	t.Run("server error", func(t *testing.T) {
		mockServer := new(MockServer)
		startErr := errors.New("port 8080 already in use")
		mockServer.On("Start", "8080").Return(startErr)

		err := newRoot(new(MockAppRunner), validator.NewValidator(), mockServer).execute("serve")

		assert.EqualError(t, err, startErr.Error())
	})

	t.Run("invalid port", func(t *testing.T) {
		mockServer := new(MockServer)
		root := newRoot(new(MockAppRunner), validator.NewValidator(), mockServer)

		var parseErr customErr.ErrPortParse
		assert.ErrorAs(t, root.execute("serve", "--port", "http"), &parseErr)

		var rangeErr customErr.ErrPortOutOfRange
		assert.ErrorAs(t, root.execute("serve", "--port", "70000"), &rangeErr)

		mockServer.AssertNotCalled(t, "Start", mock.Anything)
	})
}
