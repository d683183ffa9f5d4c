package providers

import (
	"context"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/metric"
)

const (
	cloudWatchWindow = 2 * time.Hour
	cloudWatchPeriod = 300
)

// CloudWatchMetrics reads EC2 utilisation from CloudWatch
type CloudWatchMetrics struct {
	client CloudWatchAPI
}

// NewCloudWatchMetrics creates the reader. A nil client reports ErrOffline.
func NewCloudWatchMetrics(client CloudWatchAPI) *CloudWatchMetrics {
	return &CloudWatchMetrics{client: client}
}

type ec2Metric struct {
	name string
	stat cwtypes.Statistic
	set  func(p *metric.Point, v float64)
}

var ec2Metrics = []ec2Metric{
	{"CPUUtilization", cwtypes.StatisticAverage, func(p *metric.Point, v float64) { p.CPU = v }},
	{"NetworkIn", cwtypes.StatisticSum, func(p *metric.Point, v float64) { p.NetworkIn = v }},
	{"NetworkOut", cwtypes.StatisticSum, func(p *metric.Point, v float64) { p.NetworkOut = v }},
}

// EC2Utilisation returns CPU and network samples of the two hours before end
// from the instance's region, merged by timestamp and sorted. Memory is
// derived from CPU since EC2 does not publish it. Logical instances have no
// samples.
func (c *CloudWatchMetrics) EC2Utilisation(ctx context.Context, instanceID, region string, end time.Time) ([]metric.Point, error) {
	if instanceID == "" || IsLogicalEC2ID(instanceID) {
		return nil, nil
	}
	if c.client == nil {
		return nil, awsError("GetMetricStatistics", ErrOffline)
	}

	start := end.Add(-cloudWatchWindow)
	byTime := make(map[time.Time]*metric.Point)

	for _, m := range ec2Metrics {
		out, err := c.client.GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
			Namespace:  aws.String("AWS/EC2"),
			MetricName: aws.String(m.name),
			Dimensions: []cwtypes.Dimension{
				{Name: aws.String("InstanceId"), Value: aws.String(instanceID)},
			},
			StartTime:  aws.Time(start),
			EndTime:    aws.Time(end),
			Period:     aws.Int32(cloudWatchPeriod),
			Statistics: []cwtypes.Statistic{m.stat},
		}, func(o *cloudwatch.Options) {
			if region != "" {
				o.Region = region
			}
		})
		if err != nil {
			return nil, awsError("GetMetricStatistics", err)
		}

		for _, dp := range out.Datapoints {
			if dp.Timestamp == nil {
				continue
			}
			ts := dp.Timestamp.UTC()
			p, ok := byTime[ts]
			if !ok {
				p = &metric.Point{Time: ts}
				byTime[ts] = p
			}
			m.set(p, datapointValue(dp, m.stat))
		}
	}

	points := make([]metric.Point, 0, len(byTime))
	for _, p := range byTime {
		p.Memory = metric.DerivedMemory(p.CPU)
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	return points, nil
}

func datapointValue(dp cwtypes.Datapoint, stat cwtypes.Statistic) float64 {
	var v *float64
	switch stat {
	case cwtypes.StatisticAverage:
		v = dp.Average
	case cwtypes.StatisticSum:
		v = dp.Sum
	}
	if v == nil {
		return 0
	}
	return *v
}
