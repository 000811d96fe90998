package cloud

import (
	"context"
	"errors"
)

// ErrNotFound is returned (wrapped) by providers when the requested
// resource does not exist.
var ErrNotFound = errors.New("resource not found")

// ErrAlreadyExists is returned (wrapped) when a snapshot name is taken.
var ErrAlreadyExists = errors.New("resource already exists")

type Instance struct {
	Name  string `json:"name"`
	Zone  string `json:"zone"`
	Disks []Disk `json:"disks"`
}

// DiskIDs returns the identifiers of the attached disks in provider order.
func (i Instance) DiskIDs() []string {
	ids := make([]string, 0, len(i.Disks))
	for _, d := range i.Disks {
		ids = append(ids, d.ID)
	}
	return ids
}

type Disk struct {
	ID     string `json:"id"`
	Source string `json:"source,omitempty"`
}

type Snapshot struct {
	Name              string   `json:"name"`
	ID                string   `json:"id,omitempty"`
	CreationTimestamp string   `json:"creation_timestamp"`
	StorageLocations  []string `json:"storage_locations,omitempty"`
}

// SnapshotFilter narrows a snapshot listing. Providers render it into
// their own query language.
type SnapshotFilter struct {
	NamePrefix string
}

// Expression renders the filter in Compute Engine list-filter syntax.
func (f SnapshotFilter) Expression() string {
	return "name:" + f.NamePrefix + "*"
}

type SnapshotProvider interface {
	GetInstance(ctx context.Context, project, zone, name string) (*Instance, error)
	ListAttachedDisks(ctx context.Context, project, zone, instance string) ([]Disk, error)
	CreateSnapshot(ctx context.Context, project, zone string, disk Disk, name, storageLocation string) error
	ListSnapshots(ctx context.Context, project string, filter SnapshotFilter) ([]Snapshot, error)
	DeleteSnapshot(ctx context.Context, project string, snapshot Snapshot) error
}
