// Package main provides the CLI entrypoint for rosterdiff.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/rosterdiff/internal/config"
	"github.com/verte-zerg/rosterdiff/internal/logging"
	"github.com/verte-zerg/rosterdiff/internal/model"
	"github.com/verte-zerg/rosterdiff/internal/pipeline"
	"github.com/verte-zerg/rosterdiff/internal/report"
	"github.com/verte-zerg/rosterdiff/internal/source"
)

const (
	defaultAPIPath        = "alfon-api-response.txt"
	defaultSheetPath      = "alfon-manual.xlsx"
	defaultAttendancePath = "attendance-api-response.txt"
	defaultOutputPath     = "comparison_results.json"
	defaultLogLevel       = "info"
)

var (
	configPath     string
	apiPath        string
	sheetPath      string
	sheetName      string
	attendancePath string
	idField        string
	outputPath     string
	logLevel       string
	logJSON        bool
	quiet          bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rosterdiff",
		Short:         "Reconcile the API employee export with the manual roster",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runCompareCmd,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "config file path")
	rootCmd.Flags().StringVar(&apiPath, "api", defaultAPIPath, "API export JSON")
	rootCmd.Flags().StringVar(&sheetPath, "sheet", defaultSheetPath, "manual roster spreadsheet (.xlsx)")
	rootCmd.Flags().StringVar(&sheetName, "sheet-name", "", "worksheet name (default: first sheet)")
	rootCmd.Flags().StringVar(&attendancePath, "attendance", defaultAttendancePath, "attendance feed JSON")
	rootCmd.Flags().StringVar(&idField, "id-field", source.DefaultIDField, "identifier field of the API export")
	rootCmd.Flags().StringVar(&outputPath, "out", defaultOutputPath, "output document path")
	rootCmd.Flags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&logJSON, "log-json", false, "log as JSON")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "do not print the summary")

	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runCompareCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "api", &apiPath, fileCfg.Sources.API)
	applyStringConfig(cmd, "sheet", &sheetPath, fileCfg.Sources.Sheet)
	applyStringConfig(cmd, "sheet-name", &sheetName, fileCfg.Sources.SheetName)
	applyStringConfig(cmd, "attendance", &attendancePath, fileCfg.Sources.Attendance)
	applyStringConfig(cmd, "id-field", &idField, fileCfg.Sources.IDField)
	applyStringConfig(cmd, "out", &outputPath, fileCfg.Output.Path)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyBoolConfig(cmd, "log-json", &logJSON, fileCfg.Log.JSON)

	logger, err := logging.New(logging.Config{Level: logLevel, JSON: logJSON})
	if err != nil {
		return err
	}

	cfg := model.Config{
		APIPath:        apiPath,
		SheetPath:      sheetPath,
		SheetName:      sheetName,
		AttendancePath: attendancePath,
		IDField:        idField,
		OutputPath:     outputPath,
	}
	doc, err := pipeline.Run(cfg, logger)
	if err != nil {
		return err
	}
	if quiet {
		return nil
	}
	out := cmd.OutOrStdout()
	if err := report.RenderSummary(out, doc, report.ShouldUseColor(out)); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := configPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	editCmd := exec.Command(parts[0], append(parts[1:], path)...)
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	if err := editCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# rosterdiff configuration
# Uncomment a value to enable it. CLI flags override config values.

[sources]
# api = %q          # API export JSON
# sheet = %q                 # Manual roster spreadsheet
# sheet-name = ""                             # Worksheet (default: first sheet)
# attendance = %q  # Attendance feed JSON
# id-field = %q                         # Identifier field of the API export

[output]
# path = %q          # Output document

[log]
# level = %q                              # debug, info, warn, error
# json = false
`,
		defaultAPIPath,
		defaultSheetPath,
		defaultAttendancePath,
		source.DefaultIDField,
		defaultOutputPath,
		defaultLogLevel,
	)
}
