package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorAmber = lipgloss.Color("#f59e0b")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	okStyle      = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle    = lipgloss.NewStyle().Foreground(colorAmber)
	failStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// planStyles renders one element kind of a plan.
type planStyles struct {
	title   func(string) string
	section func(string) string
	dim     func(string) string
	secret  func(string) string
}

func plainStyles() planStyles {
	id := func(s string) string { return s }
	return planStyles{title: id, section: id, dim: id, secret: id}
}

func richStyles() planStyles {
	return planStyles{
		title:   func(s string) string { return titleStyle.Render(s) },
		section: func(s string) string { return sectionStyle.Render(s) },
		dim:     func(s string) string { return dimStyle.Render(s) },
		secret:  func(s string) string { return warnStyle.Render(s) },
	}
}

// renderPlan renders a plan as plain text.
func renderPlan(s *PlanSummary) string {
	return renderPlanWith(s, plainStyles())
}

// renderPlanStyled renders a plan with terminal colors.
func renderPlanStyled(s *PlanSummary) string {
	return renderPlanWith(s, richStyles())
}

func renderPlanWith(s *PlanSummary, st planStyles) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}
	section := func(name string) {
		line("")
		line("%s", st.section("  "+name))
		line("%s", st.dim("  "+strings.Repeat("-", 40)))
	}

	line("")
	line("%s", st.title("  kcstack plan: "+s.Stack))
	line("%s", st.dim("  "+strings.Repeat("=", 40)))
	if s.Account != "" || s.Region != "" {
		line("  Account: %s  Region: %s", orDash(s.Account), orDash(s.Region))
	}

	section("Declaration order")
	for i, node := range s.Order {
		line("  %2d. %s", i+1, node)
	}

	section("Subnets")
	for _, sn := range s.Subnets {
		line("  %-24s %-9s az%d  %s", sn.Group, sn.Tier, sn.AZ, sn.CIDR)
	}

	section("Access policies")
	for _, p := range s.Policies {
		line("  %s", p.Name)
		for _, r := range p.Ingress {
			line("    tcp/%-5d from %s", r.Port, r.Source)
		}
	}

	section("Data tier")
	line("  Aurora MySQL %s, %d x %s on port %d", s.Database.Engine, s.Database.Instances, s.Database.InstanceType, s.Database.Port)

	section("Compute tier")
	line("  Image:     %s", s.Service.Image)
	line("  Task:      %d CPU units, %d MiB", s.Service.CPU, s.Service.MemoryMiB)
	line("  Replicas:  %d desired, %d..%d at %d%% CPU", s.Service.DesiredCount, s.Service.MinReplicas, s.Service.MaxReplicas, s.Service.CPUTarget)
	line("  Discovery: %s", s.Service.Discovery)

	section("Load balancer")
	scheme := "internal"
	if s.Entry.Public {
		scheme = "internet-facing"
	}
	ports := make([]string, 0, len(s.Entry.Ports))
	for _, p := range s.Entry.Ports {
		ports = append(ports, fmt.Sprint(p))
	}
	line("  %s, listeners %s", scheme, strings.Join(ports, ", "))

	section("Container environment")
	for _, v := range s.Environment {
		source := v.Source
		if v.Secret {
			source = st.secret(source + " (secret)")
		}
		line("  %-32s %s", v.Name, source)
	}

	if s.Registry != "" {
		section("Registry")
		line("  ECR repository %s", s.Registry)
	}

	if len(s.Tags) > 0 {
		section("Tags")
		for _, t := range s.Tags {
			line("  %s=%s", t.Key, t.Value)
		}
	}

	line("")
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// statusIndicator returns the marker of a check outcome.
func statusIndicator(ok, optional bool) string {
	switch {
	case ok:
		return okStyle.Render("ok")
	case optional:
		return warnStyle.Render("--")
	default:
		return failStyle.Render("!!")
	}
}
