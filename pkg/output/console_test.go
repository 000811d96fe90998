package output_test

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/elatovg/gce-snapshots/internal/retention"
	"github.com/elatovg/gce-snapshots/pkg/cloud"
	"github.com/elatovg/gce-snapshots/pkg/output"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestConsoleAuditTrail(t *testing.T) {
	var buf bytes.Buffer
	c := output.NewConsole(&buf)
	cutoff := time.Date(2026, 10, 12, 12, 0, 0, 0, time.UTC)

	c.RunStarted("demo-instance")
	c.InstanceFound("demo-instance", "us-central1-f", "p1")
	c.DisksFound("demo-instance", []cloud.Disk{{ID: "boot"}, {ID: "data"}})
	c.RetentionWindow(7)
	c.SnapshotCreating("boot", "boot-2026-10-19")
	c.NoCandidates("boot")
	c.CandidateSelected(cloud.Snapshot{
		Name:              "data-2026-10-01",
		CreationTimestamp: "2026-10-01T03:00:00.000-07:00",
	}, cutoff)
	c.SnapshotDeleting("data-2026-10-01")

	got := buf.String()
	for _, line := range []string{
		"snapshot the following instance demo-instance\n",
		"Instance demo-instance found in zone us-central1-f in project p1\n",
		"Found the following disks [boot, data] attached to vm demo-instance\n",
		"Will keep 7 days worth of snapshots\n",
		"Taking Snapshot of disk boot called boot-2026-10-19\n",
		"Didn't find any snapshots to delete\n",
		"Will delete snapshot data-2026-10-01 since it's creation time 2026-10-01T03:00:00.000-07:00 is older than deletion time 2026-10-12T12:00:00Z\n",
		"Deleting Snapshot data-2026-10-01\n",
	} {
		assert.Contains(t, got, line)
	}
}

func TestConsoleCandidatesFound(t *testing.T) {
	var buf bytes.Buffer
	c := output.NewConsole(&buf)

	c.CandidatesFound("data", []retention.Candidate{
		{
			Snapshot:  cloud.Snapshot{Name: "data-2026-10-01", ID: "111"},
			CreatedAt: time.Date(2026, 10, 1, 3, 0, 0, 0, time.UTC),
		},
		{
			Snapshot:  cloud.Snapshot{Name: "data-2026-10-02", ID: "222"},
			CreatedAt: time.Date(2026, 10, 2, 3, 0, 0, 0, time.UTC),
		},
	})

	got := buf.String()
	assert.Contains(t, got, "Found snapshots [data-2026-10-01, data-2026-10-02] for disk data to delete\n")
	assert.Contains(t, got, "SNAPSHOT")
	assert.Contains(t, got, "111")
	assert.Contains(t, got, "2026-10-02T03:00:00Z")
}

func TestConsolePrintSummary(t *testing.T) {
	t.Run("nil result prints nothing", func(t *testing.T) {
		var buf bytes.Buffer
		output.NewConsole(&buf).PrintSummary(nil)
		assert.Empty(t, buf.String())
	})

	t.Run("one row per disk", func(t *testing.T) {
		var buf bytes.Buffer
		output.NewConsole(&buf).PrintSummary(&retention.Result{
			Disks: []retention.DiskResult{
				{Disk: cloud.Disk{ID: "boot"}, Created: "boot-2026-10-19"},
				{Disk: cloud.Disk{ID: "data"}, Created: "data-2026-10-19", Deleted: []string{"data-2026-10-01"}},
			},
		})

		got := buf.String()
		assert.Contains(t, got, "DISK")
		assert.Contains(t, got, "boot-2026-10-19")
		assert.Contains(t, got, "data-2026-10-01")
	})
}
