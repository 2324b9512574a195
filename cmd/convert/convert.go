package convert

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/axe-sarif/cmd/version"
	"github.com/scan-io-git/axe-sarif/internal/axe"
	"github.com/scan-io-git/axe-sarif/internal/sarif"
	"github.com/scan-io-git/axe-sarif/pkg/shared"
	"github.com/scan-io-git/axe-sarif/pkg/shared/config"
	"github.com/scan-io-git/axe-sarif/pkg/shared/errors"
)

// RunOptionsConvert holds the arguments of the convert command.
type RunOptionsConvert struct {
	Inputs         []string `flag:"FILE" validate:"min=1,dive,required"`
	Format         string   `flag:"format" validate:"omitempty,oneof=auto standard raw"`
	URL            string   `flag:"url" validate:"omitempty,url"`
	Title          string   `flag:"title"`
	Timestamp      string   `flag:"timestamp" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	OutputPath     string   `flag:"output"`
	SarifVersion   string   `flag:"sarif-version" validate:"omitempty,oneof=2.0.0 2.1.0"`
	ViolationLevel string   `flag:"violation-level" validate:"omitempty,oneof=error warning note"`
	ImpactLevels   bool     `flag:"impact-levels"`
	Pretty         bool     `flag:"pretty"`
	Threads        int      `flag:"threads" validate:"min=1,max=64"`
}

// Global variables for configuration and command arguments
var (
	AppConfig      *config.Config
	logger         hclog.Logger
	convertOptions RunOptionsConvert

	exampleConvertUsage = `  # Convert a standard axe result file and print SARIF 2.0.0 to stdout
  axe-sarif convert axe-results.json

  # Convert raw reporter output, naming the scanned page
  axe-sarif convert --format raw --url https://example.com/ --title "Example" raw-results.json

  # Convert several scans into a folder as SARIF 2.1.0 for code scanning upload
  axe-sarif convert --sarif-version 2.1.0 -o reports/ -j 4 home.json checkout.json`

	ConvertCmd = &cobra.Command{
		Use:                   "convert [--format auto|standard|raw] [--url URL] [--title TITLE] [--timestamp TIME] [-o PATH] [--sarif-version VERSION] [--violation-level LEVEL] [--impact-levels] [-j N] FILE...",
		Short:                 "Convert axe-core accessibility results into SARIF",
		Long:                  "Convert axe-core accessibility results, in the standard or the raw reporter shape, into a SARIF log with one run per input file.",
		Example:               exampleConvertUsage,
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		RunE:                  runConvertCommand,
	}
)

// Init wires config and logger into the command package.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runConvertCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	convertOptions.Inputs = args
	applyConfigDefaults(&convertOptions, AppConfig, cmd.Flags().Changed)

	if err := validateConvertArgs(&convertOptions); err != nil {
		logger.Error("invalid command arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid arguments: %w", err), errors.ExitCodeInvalidInput)
	}

	targets, err := prepareConvertTargets(&convertOptions)
	if err != nil {
		logger.Error("failed to prepare conversion targets", "error", err)
		return errors.NewCommandError(err, errors.ExitCodeInvalidInput)
	}

	converter := sarif.NewConverter(
		version.ToolProperties(AppConfig),
		sarif.Invocations,
		sarif.WithLogger(logger.Named("converter")),
	)

	results, err := runBatch(cmd.Context(), converter, targets, &convertOptions, cmd.OutOrStdout())
	if err != nil {
		logger.Error("conversion failed", "error", err)
		return errors.NewCommandError(err, exitCodeFor(err))
	}

	for _, result := range results {
		logger.Info("axe results converted",
			"input", result.Target.Input,
			"output", displayOutput(result.Target.Output),
			"sarif_version", config.SetThen(convertOptions.SarifVersion, sarif.Version200),
			"summary", sarif.LevelSummary(result.LevelInfo),
		)
	}
	return nil
}

func init() {
	ConvertCmd.Flags().StringVar(&convertOptions.Format, "format", string(axe.FormatAuto), "Shape of the input: "+formatNames())
	ConvertCmd.Flags().StringVar(&convertOptions.URL, "url", "", "URL of the scanned page, overriding the URL recorded in the results")
	ConvertCmd.Flags().StringVar(&convertOptions.Title, "title", "", "Title of the scanned page")
	ConvertCmd.Flags().StringVar(&convertOptions.Timestamp, "timestamp", "", "Scan time in RFC 3339 format, overriding the recorded timestamp")
	ConvertCmd.Flags().StringVarP(&convertOptions.OutputPath, "output", "o", "", "Output file or folder; stdout when omitted and a single file is converted")
	ConvertCmd.Flags().StringVar(&convertOptions.SarifVersion, "sarif-version", "", "SARIF version to write: 2.0.0 or 2.1.0 (default 2.0.0)")
	ConvertCmd.Flags().StringVar(&convertOptions.ViolationLevel, "violation-level", "", "Level reported for violations: error, warning or note (default error)")
	ConvertCmd.Flags().BoolVar(&convertOptions.ImpactLevels, "impact-levels", false, "Derive violation levels from the axe impact of every node")
	ConvertCmd.Flags().BoolVar(&convertOptions.Pretty, "pretty", false, "Indent the SARIF output")
	ConvertCmd.Flags().IntVarP(&convertOptions.Threads, "threads", "j", 1, "Number of files converted concurrently")
	ConvertCmd.Flags().BoolP("help", "h", false, "Show help for convert command.")
}
