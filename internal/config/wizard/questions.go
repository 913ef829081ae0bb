package wizard

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

var (
	nameRegex     = regexp.MustCompile(`^[a-z][a-z0-9-]{0,30}[a-z0-9]$`)
	hostnameRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?)*\.[a-zA-Z]{2,}$`)
)

// runIdentityGroup prompts for deployment name, stage, region and hostname.
func runIdentityGroup(ctx context.Context, result *WizardResult) error {
	result.Name = "keycloak"
	result.Environment = "dev"
	result.Region = Regions[0].Value

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Description("Used for the stack and resource names").
				Placeholder("keycloak").
				Value(&result.Name).
				Validate(validateName),
			huh.NewInput().
				Title("Environment").
				Description("Stage label appended to the stack name").
				Value(&result.Environment),
			huh.NewSelect[string]().
				Title("Region").
				Options(ToHuhOptions(Regions)...).
				Value(&result.Region),
			huh.NewInput().
				Title("Hostname").
				Description("Public hostname Keycloak serves (KC_HOSTNAME)").
				Placeholder("auth.example.com").
				Value(&result.Hostname).
				Validate(validateHostname),
		).Title("Deployment"),
	).RunWithContext(ctx)
}

// runImageGroup prompts for the container image source.
func runImageGroup(ctx context.Context, result *WizardResult) error {
	result.ImageSource = "registry"
	result.DiscoveryMode = "dns"

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Image source").
				Options(ToHuhOptions(ImageSources)...).
				Value(&result.ImageSource),
			huh.NewSelect[string]().
				Title("Cache discovery").
				Description("How Keycloak nodes find each other").
				Options(ToHuhOptions(DiscoveryModes)...).
				Value(&result.DiscoveryMode),
		).Title("Keycloak"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	if result.ImageSource == "ecr" {
		result.Repository = "keycloak"
		result.CreateRepo = true
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Repository name").
					Value(&result.Repository),
				huh.NewConfirm().
					Title("Create the repository in a separate stack?").
					Value(&result.CreateRepo),
			).Title("ECR"),
		).RunWithContext(ctx)
	}

	result.Image = "quay.io/keycloak/keycloak:latest"
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Image").
				Value(&result.Image),
		).Title("Registry"),
	).RunWithContext(ctx)
}

// runSizingGroup prompts for task size, replica bounds and database class.
func runSizingGroup(ctx context.Context, result *WizardResult) error {
	result.TaskSize = "medium"
	result.DBClass = DBClasses[0].Value
	desired, maxCount, instances := "2", "10", "2"

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Task size").
				Options(ToHuhOptions(TaskSizeOptions)...).
				Value(&result.TaskSize),
			huh.NewInput().
				Title("Minimum tasks").
				Value(&desired).
				Validate(validateCount),
			huh.NewInput().
				Title("Maximum tasks").
				Value(&maxCount).
				Validate(validateCount),
		).Title("Service"),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Database instance class").
				Options(ToHuhOptions(DBClasses)...).
				Value(&result.DBClass),
			huh.NewInput().
				Title("Database instances").
				Description("One writer plus readers; at least 2").
				Value(&instances).
				Validate(validateCount),
		).Title("Database"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	result.DesiredCount, _ = strconv.Atoi(desired)
	result.MaxCount, _ = strconv.Atoi(maxCount)
	result.DBInstances, _ = strconv.Atoi(instances)
	return nil
}

// runEntryPointGroup prompts for HTTPS settings.
func runEntryPointGroup(ctx context.Context, result *WizardResult) error {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable HTTPS on the load balancer?").
				Value(&result.EnableHTTPS),
		).Title("Entry point"),
	).RunWithContext(ctx)
	if err != nil || !result.EnableHTTPS {
		return err
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("ACM certificate ARN").
				Value(&result.CertificateARN).
				Validate(validateCertificateARN),
		),
	).RunWithContext(ctx)
}

func validateName(s string) error {
	if s == "" {
		return errNameRequired
	}
	if !nameRegex.MatchString(s) {
		return errNameInvalid
	}
	return nil
}

func validateHostname(s string) error {
	if s == "" {
		return errHostnameRequired
	}
	if !hostnameRegex.MatchString(s) {
		return errHostnameInvalid
	}
	return nil
}

func validateCertificateARN(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errCertARNRequired
	}
	if !strings.HasPrefix(s, "arn:aws:acm:") {
		return errCertARNInvalid
	}
	return nil
}

func validateCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 2 {
		return errCountInvalid
	}
	return nil
}
