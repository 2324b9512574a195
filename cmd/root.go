package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/axe-sarif/cmd/convert"
	"github.com/scan-io-git/axe-sarif/cmd/version"
	"github.com/scan-io-git/axe-sarif/pkg/shared/config"
	sharederrors "github.com/scan-io-git/axe-sarif/pkg/shared/errors"
	"github.com/scan-io-git/axe-sarif/pkg/shared/logger"
)

var (
	cfgFile   string
	AppConfig *config.Config
	Logger    hclog.Logger
	rootCmd   = &cobra.Command{
		Use:                   "axe-sarif [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "axe-sarif converts axe-core accessibility results into SARIF.",
		Long: `axe-sarif converts the results of the axe-core accessibility engine,
	in the standard or the raw reporter shape, into SARIF logs that
	code scanning services and SARIF viewers understand.
	`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", fmt.Sprintf("config file (default is $%s or %s)", config.ConfigPathEnv, config.DefaultConfigPath))
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(convert.ConvertCmd)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)

		var cmdErr *sharederrors.CommandError
		if errors.As(err, &cmdErr) {
			return cmdErr.ExitCode
		}
		return sharederrors.ExitCodeFailure
	}
	return sharederrors.ExitCodeOK
}

func initConfig() error {
	var err error

	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		return sharederrors.NewCommandError(fmt.Errorf("initializing config file function is crashed - %w", err), sharederrors.ExitCodeInvalidInput)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		return sharederrors.NewCommandError(err, sharederrors.ExitCodeInvalidInput)
	}

	Logger = logger.NewLogger(AppConfig, "core")

	version.Init(AppConfig)
	convert.Init(AppConfig, Logger.Named("convert"))
	return nil
}
