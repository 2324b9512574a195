package convert

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/scan-io-git/axe-sarif/internal/axe"
	"github.com/scan-io-git/axe-sarif/internal/sarif"
	"github.com/scan-io-git/axe-sarif/pkg/shared/config"
	"github.com/scan-io-git/axe-sarif/pkg/shared/errors"
	"github.com/scan-io-git/axe-sarif/pkg/shared/files"
)

const (
	sarifExt     = ".sarif"
	stdoutOutput = "-"
)

// Target pairs an input file with the place its SARIF log is written to.
// Output is empty when the log goes to stdout.
type Target struct {
	Input  string
	Output string
}

// Result describes one finished conversion.
type Result struct {
	Target    Target
	LevelInfo map[string]int
}

// applyConfigDefaults fills options the user did not pass on the command line
// from the configuration file.
func applyConfigDefaults(options *RunOptionsConvert, cfg *config.Config, changed func(string) bool) {
	if cfg == nil {
		return
	}
	if !changed("sarif-version") {
		options.SarifVersion = config.SetThen(options.SarifVersion, cfg.Output.SarifVersion)
	}
	if !changed("violation-level") {
		options.ViolationLevel = config.SetThen(options.ViolationLevel, cfg.Converter.ViolationLevel)
	}
	if !changed("impact-levels") {
		options.ImpactLevels = config.GetBoolValue(cfg, "Converter.ImpactLevels", options.ImpactLevels)
	}
	if !changed("pretty") {
		options.Pretty = config.GetBoolValue(cfg, "Output.Pretty", options.Pretty)
	}
}

// prepareConvertTargets resolves the output location of every input.
func prepareConvertTargets(options *RunOptionsConvert) ([]Target, error) {
	targets := make([]Target, 0, len(options.Inputs))
	seen := make(map[string]string, len(options.Inputs))

	inputs := make(map[string]string, len(options.Inputs))
	for _, input := range options.Inputs {
		inputs[filepath.Clean(input)] = input
	}

	for _, input := range options.Inputs {
		target := Target{Input: input}

		switch {
		case options.OutputPath == "" && len(options.Inputs) == 1, options.OutputPath == stdoutOutput:
		case options.OutputPath == "":
			target.Output = filepath.Join(filepath.Dir(input), files.ReplaceExt(input, sarifExt))
		default:
			output, err := resolveOutputPath(options.OutputPath, input, len(options.Inputs) > 1)
			if err != nil {
				return nil, err
			}
			target.Output = output
		}

		if target.Output != "" {
			if source, ok := inputs[filepath.Clean(target.Output)]; ok {
				return nil, fmt.Errorf("output %q of input %q would overwrite input %q", target.Output, input, source)
			}
			if previous, ok := seen[target.Output]; ok {
				return nil, fmt.Errorf("inputs %q and %q would both be written to %q", previous, input, target.Output)
			}
			seen[target.Output] = input
		}
		targets = append(targets, target)
	}
	return targets, nil
}

// resolveOutputPath treats the output flag as a folder for batches and as a
// file or folder, whichever it looks like, for a single input.
func resolveOutputPath(outputPath, input string, batch bool) (string, error) {
	name := files.ReplaceExt(input, sarifExt)
	if batch {
		expanded, err := files.ExpandPath(outputPath)
		if err != nil {
			return "", fmt.Errorf("failed to expand path %q: %w", outputPath, err)
		}
		return filepath.Join(expanded, name), nil
	}

	fullPath, _, err := files.DetermineFileFullPath(outputPath, name)
	if err != nil {
		return "", err
	}
	return fullPath, nil
}

// runBatch converts the targets with at most options.Threads conversions in
// flight. Stdout output is serialised through out. The first failure cancels
// the conversions that have not started yet.
func runBatch(ctx context.Context, converter *sarif.Converter, targets []Target, options *RunOptionsConvert, out io.Writer) ([]Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]Result, len(targets))
	var outMu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(options.Threads)

	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			log, err := convertTarget(converter, target.Input, options)
			if err != nil {
				return err
			}

			data, err := encodeLog(log, options)
			if err != nil {
				return fmt.Errorf("failed to encode SARIF for %q: %w", target.Input, err)
			}

			if target.Output == "" {
				outMu.Lock()
				_, err = out.Write(data)
				outMu.Unlock()
				if err != nil {
					return fmt.Errorf("failed to write SARIF to stdout: %w", err)
				}
			} else if err := files.WriteJsonFile(target.Output, data); err != nil {
				return fmt.Errorf("failed to write SARIF for %q: %w", target.Input, err)
			}

			results[i] = Result{Target: target, LevelInfo: log.CollectLevelInfo()}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// convertTarget loads one axe result file and converts it into a SARIF 2.0.0 log.
func convertTarget(converter *sarif.Converter, input string, options *RunOptionsConvert) (*sarif.Log, error) {
	doc, err := axe.Load(input, axe.Format(options.Format))
	if err != nil {
		return nil, err
	}

	converterOptions := sarif.ConverterOptions{
		ViolationLevel: options.ViolationLevel,
		ImpactLevels:   options.ImpactLevels,
	}

	var env sarif.EnvironmentData
	if doc.Format == axe.FormatStandard {
		env = sarif.EnvironmentFromResults(doc.Standard)
	}
	env = overrideEnvironment(env, options)

	var log *sarif.Log
	if doc.Format == axe.FormatRaw {
		log, err = converter.ConvertRaw(doc.Raw, converterOptions, env)
	} else {
		log, err = converter.ConvertFindings(doc.Findings(), converterOptions, env)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to convert %q: %w", input, err)
	}
	return log, nil
}

// overrideEnvironment applies the page description flags over env.
func overrideEnvironment(env sarif.EnvironmentData, options *RunOptionsConvert) sarif.EnvironmentData {
	env.TargetPageURL = config.SetThen(options.URL, env.TargetPageURL)
	env.TargetPageTitle = config.SetThen(options.Title, env.TargetPageTitle)
	env.Timestamp = config.SetThen(options.Timestamp, env.Timestamp)
	return env
}

// encodeLog serialises log in the requested SARIF version.
func encodeLog(log *sarif.Log, options *RunOptionsConvert) ([]byte, error) {
	var buf bytes.Buffer

	if options.SarifVersion != sarif.Version210 {
		if err := log.Write(&buf, options.Pretty); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	report, err := sarif.ToSarif210(log, sarif.WcagTaxa())
	if err != nil {
		return nil, err
	}
	if options.Pretty {
		err = report.PrettyWrite(&buf)
	} else {
		err = report.Write(&buf)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// exitCodeFor maps a conversion failure to the process exit code.
func exitCodeFor(err error) int {
	var formatErr *errors.InputFormatError
	var ruleErr *errors.RuleIndexError
	switch {
	case stderrors.As(err, &formatErr):
		return errors.ExitCodeInvalidInput
	case stderrors.As(err, &ruleErr):
		return errors.ExitCodeInternalFault
	default:
		return errors.ExitCodeFailure
	}
}

// formatNames lists the accepted --format values.
func formatNames() string {
	names := make([]string, 0, len(axe.Formats))
	for _, format := range axe.Formats {
		names = append(names, string(format))
	}
	return strings.Join(names, ", ")
}

func displayOutput(output string) string {
	if output == "" {
		return "stdout"
	}
	return output
}
