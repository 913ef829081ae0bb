package wizard

import "github.com/charmbracelet/huh"

// Option is a selectable value with a label.
type Option struct {
	Value       string
	Label       string
	Description string
}

// TaskSize is a Fargate CPU/memory pair offered by the wizard.
type TaskSize struct {
	CPU    int
	Memory int
}

// Regions lists the AWS regions offered by default. Any region can be set
// in the file afterwards.
var Regions = []Option{
	{Value: "ap-northeast-1", Label: "ap-northeast-1", Description: "Tokyo"},
	{Value: "us-east-1", Label: "us-east-1", Description: "N. Virginia"},
	{Value: "us-west-2", Label: "us-west-2", Description: "Oregon"},
	{Value: "eu-central-1", Label: "eu-central-1", Description: "Frankfurt"},
	{Value: "eu-west-1", Label: "eu-west-1", Description: "Ireland"},
}

// TaskSizes maps wizard choices to Fargate task sizes.
var TaskSizes = map[string]TaskSize{
	"small":  {CPU: 512, Memory: 2048},
	"medium": {CPU: 1024, Memory: 4096},
	"large":  {CPU: 2048, Memory: 8192},
}

// TaskSizeOptions is the display order of TaskSizes.
var TaskSizeOptions = []Option{
	{Value: "small", Label: "small", Description: "0.5 vCPU, 2 GB"},
	{Value: "medium", Label: "medium", Description: "1 vCPU, 4 GB (recommended)"},
	{Value: "large", Label: "large", Description: "2 vCPU, 8 GB"},
}

// DBClasses lists Aurora instance classes offered by the wizard.
var DBClasses = []Option{
	{Value: "t3.medium", Label: "t3.medium", Description: "burstable, dev and test"},
	{Value: "t4g.medium", Label: "t4g.medium", Description: "burstable, Graviton"},
	{Value: "r6g.large", Label: "r6g.large", Description: "memory optimized, production"},
}

// DiscoveryModes lists cache discovery choices.
var DiscoveryModes = []Option{
	{Value: "dns", Label: "dns", Description: "Cloud Map service discovery"},
	{Value: "s3", Label: "s3", Description: "S3 bucket ping"},
}

// ImageSources lists where the Keycloak image comes from.
var ImageSources = []Option{
	{Value: "registry", Label: "registry", Description: "public image such as quay.io/keycloak/keycloak"},
	{Value: "ecr", Label: "ecr", Description: "an ECR repository in this account"},
}

// ToHuhOptions converts options to huh select options.
func ToHuhOptions(opts []Option) []huh.Option[string] {
	out := make([]huh.Option[string], len(opts))
	for i, o := range opts {
		label := o.Label
		if o.Description != "" {
			label = o.Label + " - " + o.Description
		}
		out[i] = huh.NewOption(label, o.Value)
	}
	return out
}
