package compute

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/kcstack/internal/provisioning"
	"github.com/imamik/kcstack/internal/util/naming"
)

var retentionDays = map[int]awslogs.RetentionDays{
	1:    awslogs.RetentionDays_ONE_DAY,
	3:    awslogs.RetentionDays_THREE_DAYS,
	5:    awslogs.RetentionDays_FIVE_DAYS,
	7:    awslogs.RetentionDays_ONE_WEEK,
	14:   awslogs.RetentionDays_TWO_WEEKS,
	30:   awslogs.RetentionDays_ONE_MONTH,
	60:   awslogs.RetentionDays_TWO_MONTHS,
	90:   awslogs.RetentionDays_THREE_MONTHS,
	120:  awslogs.RetentionDays_FOUR_MONTHS,
	150:  awslogs.RetentionDays_FIVE_MONTHS,
	180:  awslogs.RetentionDays_SIX_MONTHS,
	365:  awslogs.RetentionDays_ONE_YEAR,
	400:  awslogs.RetentionDays_THIRTEEN_MONTHS,
	545:  awslogs.RetentionDays_EIGHTEEN_MONTHS,
	731:  awslogs.RetentionDays_TWO_YEARS,
	1096: awslogs.RetentionDays_THREE_YEARS,
	1827: awslogs.RetentionDays_FIVE_YEARS,
	2192: awslogs.RetentionDays_SIX_YEARS,
	2557: awslogs.RetentionDays_SEVEN_YEARS,
	2922: awslogs.RetentionDays_EIGHT_YEARS,
	3288: awslogs.RetentionDays_NINE_YEARS,
	3653: awslogs.RetentionDays_TEN_YEARS,
}

// RetentionDays maps a retention in days to the CloudWatch Logs value.
func RetentionDays(days int) (awslogs.RetentionDays, error) {
	r, ok := retentionDays[days]
	if !ok {
		return "", fmt.Errorf("log retention of %d days is not supported by CloudWatch Logs", days)
	}
	return r, nil
}

func (p *Provisioner) provisionCluster(ctx *provisioning.Context) error {
	c := ctx.Topology.Compute
	if ctx.State.VPC == nil {
		return fmt.Errorf("cluster needs the VPC from the %s phase", provisioning.PhaseNetwork)
	}

	cluster := awsecs.NewCluster(ctx.Stack, jsii.String(naming.ClusterID), &awsecs.ClusterProps{
		Vpc:               ctx.State.VPC,
		ClusterName:       jsii.String(naming.Cluster(c.Name)),
		ContainerInsights: jsii.Bool(true),
	})
	ctx.State.Cluster = cluster
	ctx.Tag(cluster, phase)
	ctx.Declared(phase, "ecs-cluster", naming.ClusterID)

	retention, err := RetentionDays(c.Logs.RetentionDays)
	if err != nil {
		return err
	}
	logGroup := awslogs.NewLogGroup(ctx.Stack, jsii.String(naming.LogGroupID), &awslogs.LogGroupProps{
		LogGroupName:  jsii.String(c.Logs.Group),
		Retention:     retention,
		RemovalPolicy: awscdk.RemovalPolicy_DESTROY,
	})
	ctx.State.LogGroup = logGroup
	ctx.Tag(logGroup, phase)
	ctx.Declared(phase, "log-group", naming.LogGroupID)
	return nil
}
