package gcp

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/compute/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ComputeAPI is the slice of the Compute Engine API the provider needs.
type ComputeAPI interface {
	GetInstance(ctx context.Context, project, zone, name string) (*compute.Instance, error)
	CreateSnapshot(ctx context.Context, project, zone, disk string, snapshot *compute.Snapshot) (*compute.Operation, error)
	ListSnapshots(ctx context.Context, project, filter string, fn func(*compute.SnapshotList) error) error
	DeleteSnapshot(ctx context.Context, project, name string) (*compute.Operation, error)
	WaitZoneOperation(ctx context.Context, project, zone, name string) (*compute.Operation, error)
	WaitGlobalOperation(ctx context.Context, project, name string) (*compute.Operation, error)
}

type serviceAPI struct {
	service *compute.Service
}

// NewComputeAPI builds a ComputeAPI backed by the generated compute/v1
// client.
func NewComputeAPI(ctx context.Context, opts ...option.ClientOption) (ComputeAPI, error) {
	service, err := compute.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &serviceAPI{service: service}, nil
}

func (s *serviceAPI) GetInstance(ctx context.Context, project, zone, name string) (*compute.Instance, error) {
	return s.service.Instances.Get(project, zone, name).Context(ctx).Do()
}

func (s *serviceAPI) CreateSnapshot(ctx context.Context, project, zone, disk string, snapshot *compute.Snapshot) (*compute.Operation, error) {
	return s.service.Disks.CreateSnapshot(project, zone, disk, snapshot).Context(ctx).Do()
}

func (s *serviceAPI) ListSnapshots(ctx context.Context, project, filter string, fn func(*compute.SnapshotList) error) error {
	return s.service.Snapshots.List(project).Filter(filter).Pages(ctx, fn)
}

func (s *serviceAPI) DeleteSnapshot(ctx context.Context, project, name string) (*compute.Operation, error) {
	return s.service.Snapshots.Delete(project, name).Context(ctx).Do()
}

func (s *serviceAPI) WaitZoneOperation(ctx context.Context, project, zone, name string) (*compute.Operation, error) {
	return s.service.ZoneOperations.Wait(project, zone, name).Context(ctx).Do()
}

func (s *serviceAPI) WaitGlobalOperation(ctx context.Context, project, name string) (*compute.Operation, error) {
	return s.service.GlobalOperations.Wait(project, name).Context(ctx).Do()
}

// IsErrorCode checks if the error is a googleapi.Error with one of the
// given HTTP status codes.
func IsErrorCode(err error, codes ...int) bool {
	var ae *googleapi.Error
	if !errors.As(err, &ae) {
		return false
	}
	for _, code := range codes {
		if ae.Code == code {
			return true
		}
	}
	return false
}

func IsNotFoundError(err error) bool {
	return IsErrorCode(err, http.StatusNotFound)
}

// parseResourceName returns the last path segment of a resource URL.
func parseResourceName(url string) string {
	if url == "" {
		return ""
	}
	segments := strings.Split(url, "/")
	return segments[len(segments)-1]
}
