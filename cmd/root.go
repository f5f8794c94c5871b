// Package cmd provides the root command and CLI setup for mockscan.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"mockscan.dev/pkg/mockscan/internal/adapter"
	"mockscan.dev/pkg/mockscan/internal/controller"
	"mockscan.dev/pkg/mockscan/internal/domain"
	m "mockscan.dev/pkg/mockscan/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var scanner domain.Scanner

func init() {
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	scanner = domain.NewScanner(fsAdapter)
}

const patternsHelp = `Suite and test patterns are regular expressions whose first capture group
is the display name. The mock pattern needs no capture group; every line it
matches counts as one mock.

Mocks created in a suite body before its first test are counted against
every test in that suite, so results are approximate when helpers are used.

Averages are printed in shortest form (4, 1.8) and file names are shown as
the cleaned --path joined with the relative file path (src/a.test.ts, not
./src/a.test.ts).`

const rootLongDescription = `mockscan scans a directory tree for test files, finds suites and tests by
line patterns, and reports how many mocks each test creates so that
over-mocked test suites stand out.

` + patternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mockscan",
		Short:         "Report mock usage per test",
		Long:          rootLongDescription,
		Version:       toolVersion,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(cmd)
		},
	}

	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.Flags().String(pathFlagName, domain.DefaultRoot, "directory to scan")
	bindFlagToConfig(cmd.Flags().Lookup(pathFlagName), pathFlagName)

	cmd.Flags().String(suffixFlagName, domain.DefaultSuffix, "file extension to restrict to; only the part after the last dot is used, so ts, .ts and .test.ts all select *.ts")
	bindFlagToConfig(cmd.Flags().Lookup(suffixFlagName), suffixFlagName)

	cmd.Flags().String(suitePatFlagName, domain.DefaultSuitePattern, "pattern detecting the start of a suite and capturing its name")
	bindFlagToConfig(cmd.Flags().Lookup(suitePatFlagName), suitePatFlagName)

	cmd.Flags().String(testPatFlagName, domain.DefaultTestPattern, "pattern detecting the start of a test and capturing its name")
	bindFlagToConfig(cmd.Flags().Lookup(testPatFlagName), testPatFlagName)

	cmd.Flags().String(mockPatFlagName, domain.DefaultMockPattern, "pattern detecting the creation of a mock")
	bindFlagToConfig(cmd.Flags().Lookup(mockPatFlagName), mockPatFlagName)

	cmd.Flags().String(formatFlagName, string(controller.FormatText), "report format: text, table or yaml")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), formatFlagName)

	cmd.PersistentFlags().Bool(verboseFlagName, defaultLogVerbose, "write debug logs to the log file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// reportConfigError warns about an unreadable config file. The scan still runs
// with flags, environment and defaults.
func reportConfigError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}

	slog.Warn("ignoring config file", "error", err)
	cmd.PrintErrln("Warning: ignoring", err)
}

func runScan(cmd *cobra.Command) error {
	ui, err := controller.NewUI(cmd, controller.Format(viper.GetString(formatFlagName)))
	if err != nil {
		return err
	}

	workflow := domain.NewWorkflow(fsAdapter, ui, scanner)

	return workflow.Scan(cmd.Context(), domain.ScanArgs{Options: optionsFromConfig()})
}

func optionsFromConfig() m.Options {
	root := viper.GetString(pathFlagName)
	if strings.TrimSpace(root) == "" {
		root = domain.DefaultRoot
	}

	return m.Options{
		Root:         m.Path(root),
		Suffix:       viper.GetString(suffixFlagName),
		SuitePattern: viper.GetString(suitePatFlagName),
		TestPattern:  viper.GetString(testPatFlagName),
		MockPattern:  viper.GetString(mockPatFlagName),
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		// Pattern errors were already printed with the scan output.
		var patternErr *domain.InvalidPatternError
		if !errors.As(err, &patternErr) {
			rootCmd.PrintErrln("Error:", err)
		}

		os.Exit(1)
	}
}
