package retention

import (
	"time"

	"github.com/elatovg/gce-snapshots/pkg/cloud"
)

// Reporter receives the human-facing progress of a run. It is the audit
// trail of what was created and deleted.
type Reporter interface {
	RunStarted(instance string)
	InstanceFound(instance, zone, project string)
	DisksFound(instance string, disks []cloud.Disk)
	RetentionWindow(days int)
	SnapshotCreating(disk, snapshot string)
	CandidateSelected(snapshot cloud.Snapshot, cutoff time.Time)
	NoCandidates(disk string)
	CandidatesFound(disk string, candidates []Candidate)
	SnapshotDeleting(snapshot string)
}

// NopReporter discards all progress.
type NopReporter struct{}

func (NopReporter) RunStarted(string)                           {}
func (NopReporter) InstanceFound(string, string, string)        {}
func (NopReporter) DisksFound(string, []cloud.Disk)             {}
func (NopReporter) RetentionWindow(int)                         {}
func (NopReporter) SnapshotCreating(string, string)             {}
func (NopReporter) CandidateSelected(cloud.Snapshot, time.Time) {}
func (NopReporter) NoCandidates(string)                         {}
func (NopReporter) CandidatesFound(string, []Candidate)         {}
func (NopReporter) SnapshotDeleting(string)                     {}
