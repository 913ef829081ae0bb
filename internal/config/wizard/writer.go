package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/imamik/kcstack/internal/config"
)

// WriteConfig writes the config with a descriptive header. A .toml path
// gets TOML, anything else YAML.
func WriteConfig(cfg *config.Config, outputPath string) error {
	data, err := config.Encode(cfg, config.FormatFromPath(outputPath))
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(cfg))
	sb.WriteString("\n")
	sb.Write(data)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func generateHeader(cfg *config.Config) string {
	var sb strings.Builder
	sb.WriteString("# kcstack configuration\n")
	sb.WriteString(fmt.Sprintf("# Generated: %s\n", time.Now().Format(time.RFC3339)))
	sb.WriteString("#\n")
	sb.WriteString(fmt.Sprintf("# Stack: %s\n", cfg.StackName()))
	sb.WriteString("# Next steps:\n")
	sb.WriteString("#   kcstack validate\n")
	sb.WriteString("#   kcstack plan\n")
	sb.WriteString("#   cdk deploy --all\n")
	return sb.String()
}
