// Package prerequisites checks the client tools a stack synthesis needs.
// The CDK runs its construct library on node through jsii, so node is
// mandatory; the cdk CLI is only needed to deploy the synthesized assembly.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/mod/semver"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// MinVersion is the lowest accepted semver, if any.
	MinVersion string

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// DefaultTools returns the tools synthesis cannot run without.
func DefaultTools() []Tool {
	return []Tool{
		{
			Name:        "node",
			Required:    true,
			MinVersion:  "v18.0.0",
			Description: "Runs the CDK construct library through jsii",
			InstallURL:  "https://nodejs.org/en/download",
		},
	}
}

// OptionalTools returns tools that are useful but not required.
func OptionalTools() []Tool {
	return []Tool{
		{
			Name:        "cdk",
			Required:    false,
			Description: "Deploys the synthesized cloud assembly",
			InstallURL:  "https://docs.aws.amazon.com/cdk/v2/guide/cli.html",
		},
		{
			Name:        "aws",
			Required:    false,
			Description: "Useful for inspecting the deployed stack",
			InstallURL:  "https://docs.aws.amazon.com/cli/latest/userguide/getting-started-install.html",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool     Tool
	Found    bool
	Path     string
	Version  string
	Outdated bool
}

// OK reports whether the tool is usable.
func (r CheckResult) OK() bool {
	return r.Found && !r.Outdated
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tool is missing or too old.
func (r *CheckResults) HasErrors() bool {
	return r.Error() != nil
}

// Error returns an error naming every unusable required tool.
func (r *CheckResults) Error() error {
	var problems []string
	for _, res := range r.Results {
		if !res.Tool.Required || res.OK() {
			continue
		}
		if !res.Found {
			problems = append(problems, fmt.Sprintf("%s (%s)", res.Tool.Name, res.Tool.InstallURL))
		} else {
			problems = append(problems, fmt.Sprintf("%s %s is older than %s", res.Tool.Name, res.Version, res.Tool.MinVersion))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(problems, ", "))
}

// Checker looks tools up. The zero value uses PATH and runs the binary.
type Checker struct {
	LookPath func(name string) (string, error)
	Version  func(name string) string
}

// Check verifies that the specified tools are available.
func (c Checker) Check(tools []Tool) *CheckResults {
	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	version := c.Version
	if version == nil {
		version = toolVersion
	}

	results := &CheckResults{}
	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := lookPath(tool.Name)
		if err != nil {
			results.Missing = append(results.Missing, tool)
			results.Results = append(results.Results, result)
			continue
		}

		result.Found = true
		result.Path = path
		result.Version = version(tool.Name)
		if tool.MinVersion != "" {
			result.Outdated = Older(result.Version, tool.MinVersion)
		}
		results.Results = append(results.Results, result)
	}
	return results
}

// Check verifies tools with the default checker.
func Check(tools []Tool) *CheckResults {
	return Checker{}.Check(tools)
}

// CheckDefault checks the default required tools.
func CheckDefault() *CheckResults {
	return Check(DefaultTools())
}

// CheckAll checks all tools (default + optional).
func CheckAll() *CheckResults {
	return Check(append(DefaultTools(), OptionalTools()...))
}

// Older reports whether version is a valid semver below minimum. Versions
// that cannot be parsed are not considered older.
func Older(version, minimum string) bool {
	v := canonical(version)
	if !semver.IsValid(v) {
		return false
	}
	return semver.Compare(v, canonical(minimum)) < 0
}

// canonical extracts "v1.2.3" from tool output such as "2.170.0 (build 1a2b3c)".
func canonical(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	v := fields[0]
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// toolVersion returns the first line of "<name> --version", or "".
func toolVersion(name string) string {
	// #nosec G204 - name comes from trusted Tool definitions, not user input
	output, err := exec.Command(name, "--version").Output()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(output), "\n")
	return strings.TrimSpace(line)
}
