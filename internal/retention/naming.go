package retention

import (
	"strings"
	"time"

	"github.com/elatovg/gce-snapshots/pkg/cloud"
)

// DateLayout is the date suffix of every snapshot this tool creates.
const DateLayout = "2006-01-02"

// SnapshotName returns <disk>-<YYYY-MM-DD> for the calendar date of t in
// t's own location.
func SnapshotName(disk string, t time.Time) string {
	return disk + "-" + t.Format(DateLayout)
}

// FilterForDisk is the only place that knows how a disk's snapshots are
// found. Swap this for a label-based filter if the provider supports one.
func FilterForDisk(disk string) cloud.SnapshotFilter {
	return cloud.SnapshotFilter{NamePrefix: disk + "-"}
}

// OwnedBy reports whether name is exactly <disk>-<YYYY-MM-DD>. Prefix
// filters alone would let disk "data" claim "data-2-2024-01-01".
//
// Unlike a plain name:<disk>-* prefix match, hand-named snapshots such as
// "data-manual" or "data-before-upgrade" are never pruned. Delete those
// yourself.
func OwnedBy(disk, name string) bool {
	rest, ok := strings.CutPrefix(name, disk+"-")
	if !ok || len(rest) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, rest)
	return err == nil
}
