package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsPkgConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/elatovg/gce-snapshots/pkg/cloud"
	config "github.com/elatovg/gce-snapshots/pkg/config/cloud"
	awsConfig "github.com/elatovg/gce-snapshots/pkg/config/cloud/aws"
	"github.com/elatovg/gce-snapshots/pkg/errors"
	"github.com/elatovg/gce-snapshots/pkg/logger"
	"go.uber.org/zap"
)

// TimestampLayout renders EBS start times in the same shape Compute Engine
// uses for creationTimestamp.
const TimestampLayout = "2006-01-02T15:04:05.000-07:00"

const (
	nameTag      = "Name"
	managedByTag = "managed-by"
	managedBy    = "gce-snapshots"
)

// DefaultSnapshotWait bounds SetWaitForOperations on EBS.
var DefaultSnapshotWait = 30 * time.Minute

type EC2Client interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	CreateSnapshot(ctx context.Context, params *ec2.CreateSnapshotInput, optFns ...func(*ec2.Options)) (*ec2.CreateSnapshotOutput, error)
	DescribeSnapshots(ctx context.Context, params *ec2.DescribeSnapshotsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error)
	DeleteSnapshot(ctx context.Context, params *ec2.DeleteSnapshotInput, optFns ...func(*ec2.Options)) (*ec2.DeleteSnapshotOutput, error)
}

// Provider implements cloud.SnapshotProvider on EBS. Instances are found
// by their Name tag, disks are volume IDs and snapshot names live in the
// snapshot's Name tag. The project argument is ignored; the account is
// whatever the credentials resolve to.
type Provider struct {
	EC2Client EC2Client
	wait      bool
	log       *zap.Logger
}

var _ cloud.SnapshotProvider = (*Provider)(nil)

func NewProvider(ctx context.Context, providerCfg config.ProviderConfig) (*Provider, error) {
	cfg, ok := providerCfg.(*awsConfig.Config)
	if !ok {
		return nil, errors.NewWrongConfigType(providerCfg, "*aws.Config")
	}

	opts := []func(*awsPkgConfig.LoadOptions) error{awsPkgConfig.WithRegion(cfg.GetRegion())}
	if cfg.HasStaticCredentials() {
		opts = append(opts, awsPkgConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken),
		))
	}

	awsCfg, err := awsPkgConfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.NewAWSConfigLoad(err)
	}

	p := &Provider{log: logger.WithField("provider", "aws")}
	p.SetEC2Client(ec2.NewFromConfig(awsCfg))
	return p, nil
}

func (p *Provider) SetEC2Client(c EC2Client) {
	p.EC2Client = c
	if p.log == nil {
		p.log = logger.WithField("provider", "aws")
	}
}

// SetWaitForOperations makes CreateSnapshot block until the snapshot is
// completed.
func (p *Provider) SetWaitForOperations(wait bool) {
	p.wait = wait
}

func (p *Provider) GetInstance(ctx context.Context, project, zone, name string) (*cloud.Instance, error) {
	input := &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{Name: aws.String("tag:" + nameTag), Values: []string{name}},
			{Name: aws.String("availability-zone"), Values: []string{zone}},
			{Name: aws.String("instance-state-name"), Values: []string{"pending", "running", "stopping", "stopped"}},
		},
	}

	paginator := ec2.NewDescribeInstancesPaginator(p.EC2Client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.NewDescribeInstances(err)
		}
		for _, reservation := range page.Reservations {
			if len(reservation.Instances) > 0 {
				return mapInstance(name, zone, reservation.Instances[0]), nil
			}
		}
	}
	return nil, fmt.Errorf("instance %s: %w", name, cloud.ErrNotFound)
}

func mapInstance(name, zone string, instance types.Instance) *cloud.Instance {
	out := &cloud.Instance{Name: name, Zone: zone}
	for _, bd := range instance.BlockDeviceMappings {
		if bd.Ebs == nil {
			continue
		}
		out.Disks = append(out.Disks, cloud.Disk{
			ID:     aws.ToString(bd.Ebs.VolumeId),
			Source: aws.ToString(bd.DeviceName),
		})
	}
	return out
}

func (p *Provider) ListAttachedDisks(ctx context.Context, project, zone, instance string) ([]cloud.Disk, error) {
	inst, err := p.GetInstance(ctx, project, zone, instance)
	if err != nil {
		return nil, err
	}
	p.log.Debug("Attached volumes", zap.String("instance", instance), zap.Strings("volumes", inst.DiskIDs()))
	return inst.Disks, nil
}

// CreateSnapshot fails with cloud.ErrAlreadyExists when a snapshot with the
// same Name tag exists, matching Compute Engine's unique names. EBS
// snapshots are regional, so storageLocation is not used.
func (p *Provider) CreateSnapshot(ctx context.Context, project, zone string, disk cloud.Disk, name, storageLocation string) error {
	existing, err := p.describeSnapshots(ctx, &ec2.DescribeSnapshotsInput{
		OwnerIds: []string{"self"},
		Filters:  []types.Filter{{Name: aws.String("tag:" + nameTag), Values: []string{name}}},
	})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return fmt.Errorf("snapshot %s: %w", name, cloud.ErrAlreadyExists)
	}

	out, err := p.EC2Client.CreateSnapshot(ctx, &ec2.CreateSnapshotInput{
		VolumeId:    aws.String(disk.ID),
		Description: aws.String(fmt.Sprintf("%s from %s", name, disk.ID)),
		TagSpecifications: []types.TagSpecification{{
			ResourceType: types.ResourceTypeSnapshot,
			Tags: []types.Tag{
				{Key: aws.String(nameTag), Value: aws.String(name)},
				{Key: aws.String(managedByTag), Value: aws.String(managedBy)},
			},
		}},
	})
	if err != nil {
		return err
	}
	snapshotID := aws.ToString(out.SnapshotId)
	p.log.Debug("Snapshot requested",
		zap.String("volume", disk.ID),
		zap.String("snapshot", name),
		zap.String("snapshot_id", snapshotID))

	if !p.wait {
		return nil
	}
	waiter := ec2.NewSnapshotCompletedWaiter(p.EC2Client)
	return waiter.Wait(ctx, &ec2.DescribeSnapshotsInput{SnapshotIds: []string{snapshotID}}, DefaultSnapshotWait)
}

func (p *Provider) ListSnapshots(ctx context.Context, project string, filter cloud.SnapshotFilter) ([]cloud.Snapshot, error) {
	found, err := p.describeSnapshots(ctx, &ec2.DescribeSnapshotsInput{
		OwnerIds: []string{"self"},
		Filters:  []types.Filter{{Name: aws.String("tag:" + nameTag), Values: []string{filter.NamePrefix + "*"}}},
	})
	if err != nil {
		return nil, err
	}

	snapshots := make([]cloud.Snapshot, 0, len(found))
	for _, s := range found {
		snapshots = append(snapshots, mapSnapshot(s))
	}
	return snapshots, nil
}

func (p *Provider) describeSnapshots(ctx context.Context, input *ec2.DescribeSnapshotsInput) ([]types.Snapshot, error) {
	var out []types.Snapshot
	paginator := ec2.NewDescribeSnapshotsPaginator(p.EC2Client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Snapshots...)
	}
	return out, nil
}

func mapSnapshot(s types.Snapshot) cloud.Snapshot {
	snap := cloud.Snapshot{ID: aws.ToString(s.SnapshotId)}
	for _, tag := range s.Tags {
		if aws.ToString(tag.Key) == nameTag {
			snap.Name = aws.ToString(tag.Value)
		}
	}
	if s.StartTime != nil {
		snap.CreationTimestamp = s.StartTime.UTC().Format(TimestampLayout)
	}
	return snap
}

func (p *Provider) DeleteSnapshot(ctx context.Context, project string, snapshot cloud.Snapshot) error {
	if snapshot.ID == "" {
		return fmt.Errorf("snapshot %s has no id: %w", snapshot.Name, cloud.ErrNotFound)
	}
	_, err := p.EC2Client.DeleteSnapshot(ctx, &ec2.DeleteSnapshotInput{SnapshotId: aws.String(snapshot.ID)})
	if err != nil {
		return err
	}
	p.log.Debug("Snapshot deleted", zap.String("snapshot", snapshot.Name), zap.String("snapshot_id", snapshot.ID))
	return nil
}
