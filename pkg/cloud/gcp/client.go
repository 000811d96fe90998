package gcp

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/elatovg/gce-snapshots/pkg/cloud"
	config "github.com/elatovg/gce-snapshots/pkg/config/cloud"
	gcpConfig "github.com/elatovg/gce-snapshots/pkg/config/cloud/gcp"
	"github.com/elatovg/gce-snapshots/pkg/errors"
	"github.com/elatovg/gce-snapshots/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/compute/v1"
	"google.golang.org/api/option"
)

const operationDone = "DONE"

// Provider implements cloud.SnapshotProvider on Compute Engine persistent
// disks. Disks are identified by their device name on the instance.
type Provider struct {
	api  ComputeAPI
	wait bool
	log  *zap.Logger
}

var _ cloud.SnapshotProvider = (*Provider)(nil)

func NewProvider(ctx context.Context, providerCfg config.ProviderConfig) (*Provider, error) {
	cfg, ok := providerCfg.(*gcpConfig.Config)
	if !ok {
		return nil, errors.NewWrongConfigType(providerCfg, "*gcp.Config")
	}

	opts, err := clientOptions(ctx, cfg)
	if err != nil {
		return nil, errors.NewGCPClientInit(err)
	}

	api, err := NewComputeAPI(ctx, opts...)
	if err != nil {
		return nil, errors.NewGCPClientInit(err)
	}

	p := &Provider{log: logger.WithField("provider", "gcp")}
	p.SetComputeAPI(api)
	return p, nil
}

func clientOptions(ctx context.Context, cfg *gcpConfig.Config) ([]option.ClientOption, error) {
	var credentials *google.Credentials
	if cfg.CredentialsFile != "" {
		raw, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		credentials, err = google.CredentialsFromJSON(ctx, raw, compute.ComputeScope)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		credentials, err = google.FindDefaultCredentials(ctx, compute.ComputeScope)
		if err != nil {
			return nil, err
		}
	}

	opts := []option.ClientOption{option.WithHTTPClient(oauth2.NewClient(ctx, credentials.TokenSource))}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	return opts, nil
}

func (p *Provider) SetComputeAPI(api ComputeAPI) {
	p.api = api
	if p.log == nil {
		p.log = logger.WithField("provider", "gcp")
	}
}

// SetWaitForOperations makes create and delete block until the
// long-running operation is DONE and report its errors.
func (p *Provider) SetWaitForOperations(wait bool) {
	p.wait = wait
}

func (p *Provider) GetInstance(ctx context.Context, project, zone, name string) (*cloud.Instance, error) {
	inst, err := p.api.GetInstance(ctx, project, zone, name)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, fmt.Errorf("instance %s: %w", name, cloud.ErrNotFound)
		}
		return nil, err
	}
	if inst == nil || inst.Name == "" {
		return nil, fmt.Errorf("instance %s has no name: %w", name, cloud.ErrNotFound)
	}

	out := &cloud.Instance{Name: inst.Name, Zone: zone}
	for _, d := range inst.Disks {
		out.Disks = append(out.Disks, cloud.Disk{ID: d.DeviceName, Source: d.Source})
	}
	return out, nil
}

func (p *Provider) ListAttachedDisks(ctx context.Context, project, zone, instance string) ([]cloud.Disk, error) {
	inst, err := p.GetInstance(ctx, project, zone, instance)
	if err != nil {
		return nil, err
	}
	p.log.Debug("Attached disks", zap.String("instance", instance), zap.Strings("disks", inst.DiskIDs()))
	return inst.Disks, nil
}

// CreateSnapshot snapshots the disk behind the attachment. The disk
// resource name comes from the attachment source and falls back to the
// device name when the source is empty.
func (p *Provider) CreateSnapshot(ctx context.Context, project, zone string, disk cloud.Disk, name, storageLocation string) error {
	diskName := parseResourceName(disk.Source)
	if diskName == "" {
		diskName = disk.ID
	}

	body := &compute.Snapshot{Name: name}
	if storageLocation != "" {
		body.StorageLocations = []string{storageLocation}
	}

	op, err := p.api.CreateSnapshot(ctx, project, zone, diskName, body)
	if err != nil {
		if IsErrorCode(err, http.StatusConflict) {
			return fmt.Errorf("snapshot %s: %w: %w", name, cloud.ErrAlreadyExists, err)
		}
		return err
	}
	if op == nil {
		return nil
	}
	p.log.Debug("Snapshot requested",
		zap.String("disk", diskName),
		zap.String("snapshot", name),
		zap.String("operation", op.Name))

	if !p.wait {
		return operationError(op)
	}
	return p.waitOperation(op, func(name string) (*compute.Operation, error) {
		return p.api.WaitZoneOperation(ctx, project, zone, name)
	})
}

func (p *Provider) ListSnapshots(ctx context.Context, project string, filter cloud.SnapshotFilter) ([]cloud.Snapshot, error) {
	var snapshots []cloud.Snapshot
	err := p.api.ListSnapshots(ctx, project, filter.Expression(), func(page *compute.SnapshotList) error {
		for _, s := range page.Items {
			snapshots = append(snapshots, cloud.Snapshot{
				Name:              s.Name,
				ID:                strconv.FormatUint(s.Id, 10),
				CreationTimestamp: s.CreationTimestamp,
				StorageLocations:  s.StorageLocations,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (p *Provider) DeleteSnapshot(ctx context.Context, project string, snapshot cloud.Snapshot) error {
	op, err := p.api.DeleteSnapshot(ctx, project, snapshot.Name)
	if err != nil {
		if IsNotFoundError(err) {
			return fmt.Errorf("snapshot %s: %w", snapshot.Name, cloud.ErrNotFound)
		}
		return err
	}
	if op == nil {
		return nil
	}
	p.log.Debug("Snapshot deletion requested",
		zap.String("snapshot", snapshot.Name),
		zap.String("operation", op.Name))

	if !p.wait {
		return operationError(op)
	}
	return p.waitOperation(op, func(name string) (*compute.Operation, error) {
		return p.api.WaitGlobalOperation(ctx, project, name)
	})
}

// waitOperation polls until the operation is DONE. The Wait endpoints
// return early after a server-side deadline, so one call is not enough.
func (p *Provider) waitOperation(op *compute.Operation, wait func(name string) (*compute.Operation, error)) error {
	for op.Status != operationDone {
		next, err := wait(op.Name)
		if err != nil {
			return fmt.Errorf("failed to query operation [Name=%s]: %w", op.Name, err)
		}
		if next == nil {
			return nil
		}
		op = next
	}
	return operationError(op)
}

func operationError(op *compute.Operation) error {
	if op == nil || op.Error == nil || len(op.Error.Errors) == 0 {
		return nil
	}
	messages := make([]string, 0, len(op.Error.Errors))
	for _, e := range op.Error.Errors {
		messages = append(messages, e.Message)
	}
	return errors.NewOperationFailed(op.Name, messages)
}
