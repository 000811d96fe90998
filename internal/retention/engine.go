package retention

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/elatovg/gce-snapshots/pkg/cloud"
	cerrors "github.com/elatovg/gce-snapshots/pkg/errors"
	"github.com/elatovg/gce-snapshots/pkg/logger"
	"go.uber.org/zap"
)

// Policy keeps snapshots created within the last Days days and deletes
// anything strictly older.
type Policy struct {
	Days int
}

func (p Policy) Validate() error {
	if p.Days < 0 {
		return cerrors.NewInvalidRetention(p.Days)
	}
	return nil
}

// maxWindowDays is the largest window a time.Duration can hold.
const maxWindowDays = int(math.MaxInt64 / int64(24*time.Hour))

// Cutoff is now minus Days whole 24h periods. Windows too long for a
// time.Duration reach back to the zero time, so nothing expires.
func (p Policy) Cutoff(now time.Time) time.Time {
	if p.Days > maxWindowDays {
		return time.Time{}
	}
	return now.Add(-time.Duration(p.Days) * 24 * time.Hour)
}

// Expired reports whether a snapshot created at createdAt is due for
// deletion. A snapshot created exactly at the cutoff is kept.
func (p Policy) Expired(createdAt, cutoff time.Time) bool {
	return createdAt.Before(cutoff)
}

type Request struct {
	Project  string
	Zone     string
	Instance string
	Policy   Policy
}

type Candidate struct {
	Snapshot  cloud.Snapshot
	CreatedAt time.Time
}

// DiskResult records what happened to one disk, as far as the run got.
type DiskResult struct {
	Disk       cloud.Disk
	Created    string
	Cutoff     time.Time
	Candidates []Candidate
	Deleted    []string
}

// Result is returned alongside any error so callers can tell how far a
// failed run progressed.
type Result struct {
	Instance *cloud.Instance
	Disks    []DiskResult
}

func (r *Result) CreatedCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, d := range r.Disks {
		if d.Created != "" {
			n++
		}
	}
	return n
}

func (r *Result) DeletedCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, d := range r.Disks {
		n += len(d.Deleted)
	}
	return n
}

type Clock func() time.Time

// Engine snapshots every disk of one instance and prunes expired snapshots.
// Every step is sequential and the first failure ends the run.
type Engine struct {
	provider cloud.SnapshotProvider
	reporter Reporter
	parser   TimestampParser
	now      Clock
	log      *zap.Logger
}

func NewEngine(provider cloud.SnapshotProvider, reporter Reporter) *Engine {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Engine{
		provider: provider,
		reporter: reporter,
		now:      time.Now,
		log:      logger.WithField("component", "retention"),
	}
}

func (e *Engine) SetClock(c Clock) {
	e.now = c
}

func (e *Engine) SetTimestampParser(p TimestampParser) {
	e.parser = p
}

func (e *Engine) SetLogger(l *zap.Logger) {
	e.log = l
}

// Run resolves the instance, then for each attached disk creates today's
// snapshot, selects expired ones and deletes them.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Policy.Validate(); err != nil {
		return nil, err
	}

	log := e.log.With(
		zap.String("project", req.Project),
		zap.String("zone", req.Zone),
		zap.String("instance", req.Instance),
		zap.Int("retention_days", req.Policy.Days),
	)
	e.reporter.RunStarted(req.Instance)

	instance, err := e.resolveInstance(ctx, req)
	if err != nil {
		log.Error("Instance lookup failed", zap.Error(err))
		return nil, err
	}
	result := &Result{Instance: instance}
	e.reporter.InstanceFound(instance.Name, req.Zone, req.Project)

	disks, err := e.provider.ListAttachedDisks(ctx, req.Project, req.Zone, instance.Name)
	if err != nil {
		log.Error("Disk enumeration failed", zap.Error(err))
		return result, cerrors.NewProviderCall("list attached disks", err)
	}
	if len(disks) == 0 {
		log.Error("Instance has no attached disks")
		return result, cerrors.NewNoDisksFound(instance.Name)
	}
	e.reporter.DisksFound(instance.Name, disks)
	e.reporter.RetentionWindow(req.Policy.Days)
	log.Info("Rotating snapshots", zap.Int("disk_count", len(disks)))

	for _, disk := range disks {
		dr := DiskResult{Disk: disk}

		name, err := e.CreateSnapshot(ctx, req.Project, req.Zone, disk)
		if err != nil {
			log.Error("Snapshot creation failed", zap.String("disk", disk.ID), zap.Error(err))
			return result, err
		}
		dr.Created = name

		candidates, cutoff, err := e.ListCandidates(ctx, req.Project, disk, req.Policy)
		dr.Cutoff = cutoff
		if err != nil {
			result.Disks = append(result.Disks, dr)
			log.Error("Listing deletion candidates failed", zap.String("disk", disk.ID), zap.Error(err))
			return result, err
		}
		dr.Candidates = candidates

		if len(candidates) == 0 {
			e.reporter.NoCandidates(disk.ID)
		} else {
			e.reporter.CandidatesFound(disk.ID, candidates)
		}

		deleted, err := e.DeleteEach(ctx, req.Project, candidates)
		dr.Deleted = deleted
		result.Disks = append(result.Disks, dr)
		if err != nil {
			log.Error("Snapshot deletion failed", zap.String("disk", disk.ID), zap.Error(err))
			return result, err
		}

		log.Debug("Disk rotated",
			zap.String("disk", disk.ID),
			zap.String("created", name),
			zap.Strings("deleted", deleted))
	}

	log.Info("Snapshot rotation finished",
		zap.Int("created", result.CreatedCount()),
		zap.Int("deleted", result.DeletedCount()))
	return result, nil
}

func (e *Engine) resolveInstance(ctx context.Context, req Request) (*cloud.Instance, error) {
	instance, err := e.provider.GetInstance(ctx, req.Project, req.Zone, req.Instance)
	if err != nil {
		if errors.Is(err, cloud.ErrNotFound) {
			return nil, cerrors.NewInstanceNotFound(req.Project, req.Zone, req.Instance, err)
		}
		return nil, cerrors.NewProviderCall("get instance", err)
	}
	if instance == nil || instance.Name == "" {
		return nil, cerrors.NewInstanceNotFound(req.Project, req.Zone, req.Instance, nil)
	}
	return instance, nil
}

// CreateSnapshot takes today's snapshot of disk, stored in zone. A name
// collision with an earlier run on the same day is a provider failure like
// any other.
func (e *Engine) CreateSnapshot(ctx context.Context, project, zone string, disk cloud.Disk) (string, error) {
	name := SnapshotName(disk.ID, e.now())
	e.reporter.SnapshotCreating(disk.ID, name)

	if err := e.provider.CreateSnapshot(ctx, project, zone, disk, name, zone); err != nil {
		return "", cerrors.NewSnapshotCreateFailed(disk.ID, name, err)
	}
	return name, nil
}

// ListCandidates returns the snapshots of disk created strictly before
// now - policy.Days, in provider order, along with the cutoff used.
func (e *Engine) ListCandidates(ctx context.Context, project string, disk cloud.Disk, policy Policy) ([]Candidate, time.Time, error) {
	filter := FilterForDisk(disk.ID)
	cutoff := policy.Cutoff(e.now())

	snapshots, err := e.provider.ListSnapshots(ctx, project, filter)
	if err != nil {
		return nil, cutoff, cerrors.NewSnapshotList(disk.ID, filter.Expression(), err)
	}

	var candidates []Candidate
	for _, s := range snapshots {
		if !OwnedBy(disk.ID, s.Name) {
			e.log.Debug("Ignoring snapshot not owned by disk",
				zap.String("disk", disk.ID),
				zap.String("snapshot", s.Name))
			continue
		}

		createdAt, err := e.parser.Parse(s.CreationTimestamp)
		if err != nil {
			var tsErr cerrors.ErrTimestampParse
			if errors.As(err, &tsErr) {
				tsErr.Snapshot = s.Name
				err = tsErr
			}
			return nil, cutoff, err
		}

		if policy.Expired(createdAt, cutoff) {
			e.reporter.CandidateSelected(s, cutoff)
			candidates = append(candidates, Candidate{Snapshot: s, CreatedAt: createdAt})
		}
	}
	return candidates, cutoff, nil
}

// DeleteEach deletes candidates in order and stops at the first failure.
// It returns the names deleted before that point.
func (e *Engine) DeleteEach(ctx context.Context, project string, candidates []Candidate) ([]string, error) {
	var deleted []string
	for _, c := range candidates {
		e.reporter.SnapshotDeleting(c.Snapshot.Name)
		if err := e.provider.DeleteSnapshot(ctx, project, c.Snapshot); err != nil {
			return deleted, cerrors.NewSnapshotDeleteFailed(c.Snapshot.Name, err)
		}
		deleted = append(deleted, c.Snapshot.Name)
	}
	return deleted, nil
}
