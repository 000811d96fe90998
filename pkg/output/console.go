package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/elatovg/gce-snapshots/internal/retention"
	"github.com/elatovg/gce-snapshots/pkg/cloud"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// Console writes the run's audit trail. It is the only record of what was
// created and deleted.
type Console struct {
	w      io.Writer
	info   *color.Color
	create *color.Color
	remove *color.Color
	muted  *color.Color
}

var _ retention.Reporter = (*Console)(nil)

func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{
		w:      w,
		info:   color.New(color.FgCyan),
		create: color.New(color.FgGreen),
		remove: color.New(color.FgRed),
		muted:  color.New(color.FgYellow),
	}
}

func (c *Console) RunStarted(instance string) {
	c.info.Fprintf(c.w, "snapshot the following instance %s\n", instance)
}

func (c *Console) InstanceFound(instance, zone, project string) {
	fmt.Fprintf(c.w, "Instance %s found in zone %s in project %s\n", instance, zone, project)
}

func (c *Console) DisksFound(instance string, disks []cloud.Disk) {
	ids := make([]string, 0, len(disks))
	for _, d := range disks {
		ids = append(ids, d.ID)
	}
	fmt.Fprintf(c.w, "Found the following disks [%s] attached to vm %s\n", strings.Join(ids, ", "), instance)
}

func (c *Console) RetentionWindow(days int) {
	fmt.Fprintf(c.w, "Will keep %d days worth of snapshots\n", days)
}

func (c *Console) SnapshotCreating(disk, snapshot string) {
	c.create.Fprintf(c.w, "Taking Snapshot of disk %s called %s\n", disk, snapshot)
}

func (c *Console) CandidateSelected(snapshot cloud.Snapshot, cutoff time.Time) {
	fmt.Fprintf(c.w, "Will delete snapshot %s since it's creation time %s is older than deletion time %s\n",
		snapshot.Name, snapshot.CreationTimestamp, cutoff.Format(time.RFC3339))
}

func (c *Console) NoCandidates(disk string) {
	c.muted.Fprintln(c.w, "Didn't find any snapshots to delete")
}

func (c *Console) CandidatesFound(disk string, candidates []retention.Candidate) {
	names := make([]string, 0, len(candidates))
	for _, cand := range candidates {
		names = append(names, cand.Snapshot.Name)
	}
	fmt.Fprintf(c.w, "Found snapshots [%s] for disk %s to delete\n", strings.Join(names, ", "), disk)

	table := newTable(c.w, []string{"Snapshot", "ID", "Created"})
	for _, cand := range candidates {
		table.Append([]string{
			cand.Snapshot.Name,
			cand.Snapshot.ID,
			cand.CreatedAt.Format(time.RFC3339),
		})
	}
	table.Render()
}

func (c *Console) SnapshotDeleting(snapshot string) {
	c.remove.Fprintf(c.w, "Deleting Snapshot %s\n", snapshot)
}

// PrintSummary renders one row per disk the run reached. It works on the
// partial result of a failed run too.
func (c *Console) PrintSummary(result *retention.Result) {
	if result == nil || len(result.Disks) == 0 {
		return
	}
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	table := newTable(c.w, []string{"Disk", "Created", "Cutoff", "Deleted"})
	for _, d := range result.Disks {
		deleted := "-"
		if len(d.Deleted) > 0 {
			deleted = red(strings.Join(d.Deleted, ", "))
		}
		table.Append([]string{
			d.Disk.ID,
			green(d.Created),
			d.Cutoff.Format(time.RFC3339),
			deleted,
		})
	}
	table.Render()
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	return table
}
