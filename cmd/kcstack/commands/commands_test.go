package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "kcstack", cmd.Use)
	assert.Equal(t, "Declare Keycloak on AWS with the CDK", cmd.Short)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-json"))
}

func TestRoot_HasSubcommands(t *testing.T) {
	cmd := Root()

	expected := []string{"synth", "validate", "plan", "init", "publish", "doctor", "version", "completion"}

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, subcommands[name], "Expected subcommand %s not found", name)
	}
	assert.Len(t, cmd.Commands(), len(expected))
}

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		name      string
		command   string
		flag      string
		shorthand string
		defValue  string
	}{
		{"synth config", "synth", "config", "c", "[]"},
		{"synth output", "synth", "output", "o", ""},
		{"synth metrics", "synth", "metrics-file", "", ""},
		{"validate config", "validate", "config", "c", ""},
		{"plan config", "plan", "config", "c", ""},
		{"plan json", "plan", "json", "", "false"},
		{"init output", "init", "output", "o", "kcstack.yaml"},
		{"publish bucket", "publish", "bucket", "", ""},
		{"publish prefix", "publish", "prefix", "", ""},
		{"publish prune", "publish", "prune", "", "false"},
		{"publish create", "publish", "create-bucket", "", "false"},
		{"doctor json", "doctor", "json", "", "false"},
	}

	root := Root()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, err := root.Find([]string{tt.command})
			require.NoError(t, err)

			flag := cmd.Flags().Lookup(tt.flag)
			require.NotNil(t, flag, "flag %s missing on %s", tt.flag, tt.command)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestPublish_RequiresBucket(t *testing.T) {
	cmd := Publish()
	flag := cmd.Flags().Lookup("bucket")
	require.NotNil(t, flag)
	assert.Equal(t, []string{"true"}, flag.Annotations["cobra_annotation_bash_completion_one_required_flag"])
}

func TestPublish_PruneNeedsPrefix(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "prune without prefix", args: []string{"--bucket", "b", "--prune"}, wantErr: true},
		{name: "prune with slash prefix", args: []string{"--bucket", "b", "--prefix", "/", "--prune"}, wantErr: true},
		{name: "prune with prefix", args: []string{"--bucket", "b", "--prefix", "keycloak/dev", "--prune"}},
		{name: "no prune", args: []string{"--bucket", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Publish()
			require.NoError(t, cmd.ParseFlags(tt.args))

			err := cmd.PreRunE(cmd, nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "--prune requires --prefix")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestVersion_Output(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	defer func() { version, commit, date = origVersion, origCommit, origDate }()

	SetVersionInfo("1.2.3", "abc123", "2026-01-01")

	var out bytes.Buffer
	cmd := Version()
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	assert.Equal(t, "kcstack 1.2.3\n  commit: abc123\n  built:  2026-01-01\n", out.String())
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			root := Root()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})

			require.NoError(t, root.Execute())
			assert.Contains(t, out.String(), "kcstack")
		})
	}
}

func TestCompletion_InvalidShell(t *testing.T) {
	root := Root()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"completion", "tcsh"})

	assert.Error(t, root.Execute())
}
