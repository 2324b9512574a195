package version

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/axe-sarif/internal/sarif"
	"github.com/scan-io-git/axe-sarif/pkg/shared"
	"github.com/scan-io-git/axe-sarif/pkg/shared/config"
)

var (
	AppConfig     *config.Config
	CoreVersion   = "unknown"
	GolangVersion = "unknown"
	BuildTime     = "unknown"

	outputJSON bool
)

// CoreVersions holds the build information and the tool metadata written into
// every converted run.
type CoreVersions struct {
	Versions shared.Versions `json:"versions"`
	Tool     ToolMeta        `json:"tool"`
}

// ToolMeta describes the scanner the converted results are attributed to.
type ToolMeta struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Version  string `json:"version"`
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// NewVersionCmd creates a new cobra.Command for the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "version",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Print the version of the application and the reported tool",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printVersionInfo(cmd.OutOrStdout(), collectVersions(AppConfig), outputJSON)
		},
	}
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Print version information as JSON")
	return cmd
}

// ToolProperties returns the tool metadata provider honouring config overrides.
func ToolProperties(cfg *config.Config) sarif.ToolPropertyProvider {
	if cfg == nil {
		return sarif.AxeToolProperties
	}
	base := sarif.ToolPropertiesWith(cfg.Tool.Name, cfg.Tool.Version)
	return func() sarif.Tool {
		tool := base()
		if cfg.Tool.FullName != "" {
			tool.FullName = cfg.Tool.FullName
		}
		if cfg.Tool.DownloadURI != "" {
			tool.Properties["downloadUri"] = cfg.Tool.DownloadURI
		}
		return tool
	}
}

func collectVersions(cfg *config.Config) *CoreVersions {
	tool := ToolProperties(cfg)()
	return &CoreVersions{
		Versions: shared.Versions{
			Version:       CoreVersion,
			GolangVersion: GolangVersion,
			BuildTime:     BuildTime,
		},
		Tool: ToolMeta{
			Name:     tool.Name,
			FullName: tool.FullName,
			Version:  tool.Version,
		},
	}
}

// printVersionInfo prints the version information as text or JSON.
func printVersionInfo(w io.Writer, versions *CoreVersions, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(versions)
	}
	fmt.Fprintf(w, "Core Version: v%s\n", versions.Versions.Version)
	fmt.Fprintf(w, "Reported Tool: %s (%s) v%s\n", versions.Tool.Name, versions.Tool.FullName, versions.Tool.Version)
	fmt.Fprintf(w, "Go Version: %s\n", versions.Versions.GolangVersion)
	fmt.Fprintf(w, "Build Time: %s\n", versions.Versions.BuildTime)
	return nil
}
