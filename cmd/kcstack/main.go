// Package main is the entry point for the kcstack CLI.
//
// kcstack declares a Keycloak deployment on AWS as CDK stacks: a VPC
// without NAT, an Aurora MySQL cluster, ECS Fargate tasks behind an
// application load balancer, and target-tracking autoscaling. The CDK CLI
// runs it through cdk.json; it also validates, plans and publishes
// assemblies on its own.
//
// Commands: synth, validate, plan, init, publish, doctor.
//
// For detailed usage information, run:
//
//	kcstack --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/kcstack/cmd/kcstack/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
