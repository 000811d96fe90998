package errors

import (
	"fmt"
	"strings"
)

// ErrInstanceNotFound is returned when the provider has no instance with
// the requested name in the requested zone.
type ErrInstanceNotFound struct {
	Project  string
	Zone     string
	Instance string
	Err      error
}

func (e ErrInstanceNotFound) Error() string {
	return fmt.Sprintf("instance %s not found in zone %s in project %s", e.Instance, e.Zone, e.Project)
}

func (e ErrInstanceNotFound) Unwrap() error {
	return e.Err
}

func NewInstanceNotFound(project, zone, instance string, err error) error {
	return ErrInstanceNotFound{Project: project, Zone: zone, Instance: instance, Err: err}
}

// ErrNoDisksFound is returned when the instance has no attached disks.
type ErrNoDisksFound struct {
	Instance string
}

func (e ErrNoDisksFound) Error() string {
	return fmt.Sprintf("no disks found for vm %s", e.Instance)
}

func NewNoDisksFound(instance string) error {
	return ErrNoDisksFound{Instance: instance}
}

// ErrSnapshotCreateFailed wraps a provider failure while creating a snapshot.
type ErrSnapshotCreateFailed struct {
	Disk     string
	Snapshot string
	Err      error
}

func (e ErrSnapshotCreateFailed) Error() string {
	return fmt.Sprintf("failed to take snapshot %s of disk %s: %v", e.Snapshot, e.Disk, e.Err)
}

func (e ErrSnapshotCreateFailed) Unwrap() error {
	return e.Err
}

func NewSnapshotCreateFailed(disk, snapshot string, err error) error {
	return ErrSnapshotCreateFailed{Disk: disk, Snapshot: snapshot, Err: err}
}

// ErrSnapshotDeleteFailed wraps a provider failure while deleting a snapshot.
type ErrSnapshotDeleteFailed struct {
	Snapshot string
	Err      error
}

func (e ErrSnapshotDeleteFailed) Error() string {
	return fmt.Sprintf("failed to delete snapshot %s: %v", e.Snapshot, e.Err)
}

func (e ErrSnapshotDeleteFailed) Unwrap() error {
	return e.Err
}

func NewSnapshotDeleteFailed(snapshot string, err error) error {
	return ErrSnapshotDeleteFailed{Snapshot: snapshot, Err: err}
}

// ErrSnapshotList wraps a provider failure while listing snapshots of a disk.
type ErrSnapshotList struct {
	Disk   string
	Filter string
	Err    error
}

func (e ErrSnapshotList) Error() string {
	return fmt.Sprintf("failed to list snapshots for disk %s (filter %q): %v", e.Disk, e.Filter, e.Err)
}

func (e ErrSnapshotList) Unwrap() error {
	return e.Err
}

func NewSnapshotList(disk, filter string, err error) error {
	return ErrSnapshotList{Disk: disk, Filter: filter, Err: err}
}

// ErrTimestampParse is returned when a snapshot creation timestamp does not
// match the expected fixed-offset format.
type ErrTimestampParse struct {
	Snapshot string
	Raw      string
	Reason   string
	Err      error
}

func (e ErrTimestampParse) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cannot parse creation timestamp %q", e.Raw)
	if e.Snapshot != "" {
		fmt.Fprintf(&b, " of snapshot %s", e.Snapshot)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e ErrTimestampParse) Unwrap() error {
	return e.Err
}

func NewTimestampParse(raw, reason string, err error) error {
	return ErrTimestampParse{Raw: raw, Reason: reason, Err: err}
}

// ErrInvalidRetention is returned for a negative retention window.
type ErrInvalidRetention struct {
	Days int
}

func (e ErrInvalidRetention) Error() string {
	return fmt.Sprintf("retention days must be non-negative, got %d", e.Days)
}

func NewInvalidRetention(days int) error {
	return ErrInvalidRetention{Days: days}
}

// ErrProviderCall wraps an unexpected provider failure outside the
// create/list/delete taxonomy.
type ErrProviderCall struct {
	Op  string
	Err error
}

func (e ErrProviderCall) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e ErrProviderCall) Unwrap() error {
	return e.Err
}

func NewProviderCall(op string, err error) error {
	return ErrProviderCall{Op: op, Err: err}
}
