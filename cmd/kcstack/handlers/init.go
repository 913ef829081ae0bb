package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/kcstack/internal/config"
	"github.com/imamik/kcstack/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive questionnaire.
	runWizard = wizard.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = wizard.WriteConfig
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := wizard.BuildConfig(result)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("wizard produced an invalid configuration: %w", err)
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

func printWelcome() {
	fmt.Println()
	fmt.Println("kcstack - Keycloak on AWS")
	fmt.Println("=========================")
	fmt.Println()
	fmt.Println("This wizard creates a configuration with production defaults:")
	fmt.Println("a NAT-less VPC, Aurora MySQL and autoscaled Fargate tasks.")
	fmt.Println()
}

func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Deployment Summary")
	fmt.Println("------------------")
	fmt.Printf("  Stack:     %s\n", cfg.StackName())
	if cfg.Region != "" {
		fmt.Printf("  Region:    %s\n", cfg.Region)
	}
	fmt.Printf("  Hostname:  %s\n", cfg.Keycloak.Hostname)
	fmt.Printf("  Tasks:     %d x %d CPU / %d MiB (scales %d..%d)\n",
		cfg.Service.DesiredCount, cfg.Service.CPU, cfg.Service.Memory, cfg.Scaling.Min, cfg.Scaling.Max)
	fmt.Printf("  Database:  %d x %s\n", cfg.Database.Instances, cfg.Database.InstanceType)
	if cfg.LoadBalancer.HTTPS {
		fmt.Println("  Entry:     HTTPS with HTTP redirect")
	} else {
		fmt.Println("  Entry:     HTTP only")
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Review %s if needed\n", outputPath)
	fmt.Println("  2. Check your setup:     kcstack doctor")
	fmt.Println("  3. Inspect the topology: kcstack plan")
	fmt.Println("  4. Deploy:               cdk deploy --all")
	fmt.Println()
}
