package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/imamik/kcstack/internal/platform/sts"
	"github.com/imamik/kcstack/internal/util/prerequisites"
)

// DoctorStatus is the outcome of every doctor check.
type DoctorStatus struct {
	Tools    []ToolStatus    `json:"tools"`
	Config   ConfigStatus    `json:"config"`
	Identity *IdentityStatus `json:"identity,omitempty"`
}

// ToolStatus is one local tool.
type ToolStatus struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Found    bool   `json:"found"`
	Version  string `json:"version,omitempty"`
	Outdated bool   `json:"outdated,omitempty"`
}

// ConfigStatus is the configuration check.
type ConfigStatus struct {
	Path    string `json:"path,omitempty"`
	Valid   bool   `json:"valid"`
	Stack   string `json:"stack,omitempty"`
	Account string `json:"account,omitempty"`
	Region  string `json:"region,omitempty"`
	Message string `json:"message,omitempty"`
}

// IdentityStatus is the AWS credential check.
type IdentityStatus struct {
	Account string `json:"account,omitempty"`
	ARN     string `json:"arn,omitempty"`
	Region  string `json:"region,omitempty"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// identityResolver returns the caller identity of the active credentials.
type identityResolver interface {
	CallerIdentity(ctx context.Context) (*sts.Identity, error)
}

// Factory function variables for doctor - can be replaced in tests.
var (
	// checkTools looks up every tool kcstack uses.
	checkTools = prerequisites.CheckAll

	// newIdentityResolver creates the STS client.
	newIdentityResolver = func(ctx context.Context, region string) (identityResolver, error) {
		return sts.NewClient(ctx, region, "")
	}
)

// Doctor diagnoses tools, configuration and credentials.
func Doctor(ctx context.Context, configPath string, jsonOutput bool) error {
	status := &DoctorStatus{}

	tools := checkTools()
	for _, r := range tools.Results {
		status.Tools = append(status.Tools, ToolStatus{
			Name:     r.Tool.Name,
			Required: r.Tool.Required,
			Found:    r.Found,
			Version:  r.Version,
			Outdated: r.Outdated,
		})
	}

	status.Config = checkConfig(configPath)
	status.Identity = checkIdentity(ctx, status.Config.Region, status.Config.Account)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			return err
		}
	} else {
		printDoctor(status)
	}

	return doctorError(tools, status)
}

func checkConfig(configPath string) ConfigStatus {
	path, err := resolveConfigPath(configPath)
	if err != nil {
		return ConfigStatus{Message: "no kcstack.yaml found"}
	}

	st := ConfigStatus{Path: path}
	cfg, err := loadConfigFile(path)
	if err != nil {
		st.Message = err.Error()
		return st
	}
	st.Valid = true
	st.Stack = cfg.StackName()
	st.Account = cfg.Account
	st.Region = cfg.Region
	return st
}

func checkIdentity(ctx context.Context, region, account string) *IdentityStatus {
	resolver, err := newIdentityResolver(ctx, region)
	if err != nil {
		return &IdentityStatus{Message: err.Error()}
	}
	id, err := resolver.CallerIdentity(ctx)
	if err != nil {
		return &IdentityStatus{Message: err.Error()}
	}

	st := &IdentityStatus{Account: id.Account, ARN: id.ARN, Region: id.Region, OK: true}
	if err := id.CheckAccount(account); err != nil {
		st.OK = false
		st.Message = err.Error()
	}
	return st
}

func doctorError(tools *prerequisites.CheckResults, status *DoctorStatus) error {
	var errs []error
	if err := tools.Error(); err != nil {
		errs = append(errs, err)
	}
	if !status.Config.Valid && status.Config.Path != "" {
		errs = append(errs, fmt.Errorf("configuration %s is invalid", status.Config.Path))
	}
	if status.Identity != nil && !status.Identity.OK && status.Identity.Account != "" {
		errs = append(errs, errors.New(status.Identity.Message))
	}
	return errors.Join(errs...)
}

func printDoctor(status *DoctorStatus) {
	fmt.Println()
	fmt.Println(titleStyle.Render("  kcstack doctor"))
	fmt.Println(dimStyle.Render("  " + strings.Repeat("=", 30)))

	fmt.Println()
	fmt.Println(sectionStyle.Render("  Tools"))
	for _, t := range status.Tools {
		detail := t.Version
		switch {
		case !t.Found:
			detail = "not found"
		case t.Outdated:
			detail += " (too old)"
		}
		fmt.Printf("  %s %-8s %s\n", statusIndicator(t.Found && !t.Outdated, !t.Required), t.Name, dimStyle.Render(detail))
	}

	fmt.Println()
	fmt.Println(sectionStyle.Render("  Configuration"))
	c := status.Config
	switch {
	case c.Valid:
		fmt.Printf("  %s %s (stack %s)\n", statusIndicator(true, false), c.Path, c.Stack)
	case c.Path == "":
		fmt.Printf("  %s %s\n", statusIndicator(false, true), c.Message)
	default:
		fmt.Printf("  %s %s\n", statusIndicator(false, false), c.Path)
		for _, l := range strings.Split(c.Message, "\n") {
			fmt.Printf("     %s\n", dimStyle.Render(l))
		}
	}

	fmt.Println()
	fmt.Println(sectionStyle.Render("  AWS credentials"))
	id := status.Identity
	switch {
	case id.OK:
		fmt.Printf("  %s %s in %s\n", statusIndicator(true, false), id.ARN, orDash(id.Region))
	case id.Account != "":
		fmt.Printf("  %s %s\n", statusIndicator(false, false), id.Message)
	default:
		fmt.Printf("  %s %s\n", statusIndicator(false, true), dimStyle.Render(id.Message))
	}
	fmt.Println()
}
