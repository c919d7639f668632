// FILE: cmd/objtemplate/main.go
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"github.com/lixenwraith/config"
	"github.com/mattn/go-isatty"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/lixenwraith/objtemplate"
)

const appName = "objtemplate"

// errOutputStale reports a --check run whose output file differs from the result
var errOutputStale = errors.New("output is out of date")

var settingsValidate = validator.New()

// Settings holds the command-line configuration.
// Values come from --key=value arguments, OBJTEMPLATE_* environment
// variables and an optional objtemplate.toml file, in that precedence.
type Settings struct {
	Data     string `toml:"data" validate:"required"`
	Template string `toml:"template" validate:"required"`
	Helpers  string `toml:"helpers"`
	Format   string `toml:"format" validate:"omitempty,oneof=auto json yaml yml toml"`
	Output   string `toml:"output" validate:"required_if=Check true"`
	Strict   bool   `toml:"strict"`
	Check    bool   `toml:"check"`
	LogLevel string `toml:"log_level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
	Debug    bool   `toml:"debug"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	settings, err := loadSettings(args)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 1
	}

	logger := newLogger(stderr, settings.LogLevel)

	if err := transform(settings, stdin, stdout, stderr, logger); err != nil {
		logger.Error("transform failed", "error", err)
		return 1
	}
	return 0
}

func loadSettings(args []string) (*Settings, error) {
	defaults := &Settings{
		Data:     "-",
		Format:   string(objtemplate.FormatAuto),
		LogLevel: "warn",
	}

	configFile := os.Getenv("OBJTEMPLATE_CONFIG")
	if configFile == "" {
		configFile = appName + ".toml"
	}

	cfg, err := config.NewBuilder().
		WithDefaults(defaults).
		WithEnvPrefix("OBJTEMPLATE_").
		WithFile(configFile).
		WithArgs(args).
		Build()
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	s := &Settings{
		Data:     settingString(cfg, "data"),
		Template: settingString(cfg, "template"),
		Helpers:  settingString(cfg, "helpers"),
		Format:   settingString(cfg, "format"),
		Output:   settingString(cfg, "output"),
		Strict:   settingBool(cfg, "strict"),
		Check:    settingBool(cfg, "check"),
		LogLevel: settingString(cfg, "log_level"),
		Debug:    settingBool(cfg, "debug"),
	}
	if s.Template == "" {
		return nil, fmt.Errorf("--template is required")
	}
	if err := settingsValidate.Struct(s); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

func settingString(cfg *config.Config, path string) string {
	val, found := cfg.Get(path)
	if !found || val == nil {
		return ""
	}
	return fmt.Sprint(val)
}

func settingBool(cfg *config.Config, path string) bool {
	b, err := strconv.ParseBool(settingString(cfg, path))
	return err == nil && b
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func transform(s *Settings, stdin io.Reader, stdout, stderr io.Writer, logger *slog.Logger) error {
	format, err := objtemplate.ParseFormat(s.Format)
	if err != nil {
		return err
	}

	registry := objtemplate.NewRegistry()
	if s.Helpers != "" {
		helpers, err := objtemplate.LoadHelpers(s.Helpers)
		if err != nil {
			return err
		}
		if err := registry.RegisterExprs(helpers); err != nil {
			return err
		}
	}

	mode := objtemplate.PresenceTruthy
	if s.Strict {
		mode = objtemplate.PresenceStrict
	}

	engine, err := objtemplate.NewBuilder().
		WithRegistry(registry).
		WithPresence(mode).
		WithLogger(logger).
		Build()
	if err != nil {
		return err
	}

	templatePath, err := objtemplate.FindTemplate(s.Template, objtemplate.DefaultDiscoveryOptions(appName))
	if err != nil {
		return err
	}
	tmpl, err := objtemplate.LoadTemplate(templatePath)
	if err != nil {
		return err
	}

	data, err := loadData(s.Data, stdin)
	if err != nil {
		return err
	}

	if s.Debug {
		dumpPlan(stderr, tmpl)
	}

	warn := color.New(color.FgYellow)
	result, err := engine.Create(data, tmpl, func(source, dest string) {
		warn.Fprintf(stderr, "missing: %s <- %s\n", dest, source)
	})
	if err != nil {
		return err
	}

	if s.Check {
		return checkOutput(stderr, s.Output, result, format)
	}
	if s.Output != "" {
		return objtemplate.Save(s.Output, result, format)
	}
	return objtemplate.Encode(stdout, result, format, isTerminal(stdout))
}

func loadData(path string, stdin io.Reader) (any, error) {
	if path != "-" {
		return objtemplate.LoadData(path)
	}
	raw, err := io.ReadAll(io.LimitReader(stdin, objtemplate.MaxFileSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read data from stdin: %w", err)
	}
	return objtemplate.ParseData(raw, objtemplate.FormatAuto)
}

// planStep is the parsed form of one mapping, for --debug output
type planStep struct {
	Dest   objtemplate.Path
	Source objtemplate.Path
	Helper string
}

func dumpPlan(w io.Writer, tmpl *objtemplate.Template) {
	mappings := tmpl.Mappings()
	plan := make([]planStep, len(mappings))
	for i, m := range mappings {
		plan[i] = planStep{
			Dest:   objtemplate.ParsePath(m.Dest),
			Source: objtemplate.ParsePath(m.Entry.Path),
			Helper: m.Entry.Helper,
		}
	}
	spew.Fdump(w, plan)
}

// checkOutput compares the encoded result with the file at path and prints
// a line diff when they differ
func checkOutput(w io.Writer, path string, result any, format objtemplate.Format) error {
	if format == objtemplate.FormatAuto {
		format = objtemplate.DetectFormat(path)
	}

	var want bytes.Buffer
	if err := objtemplate.Encode(&want, result, format, true); err != nil {
		return err
	}

	current, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read output file '%s': %w", path, err)
	}
	if bytes.Equal(current, want.Bytes()) {
		return nil
	}

	printDiff(w, string(current), want.String())
	return fmt.Errorf("%w: %s", errOutputStale, path)
}

func printDiff(w io.Writer, from, to string) {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	removed := color.New(color.FgRed)
	added := color.New(color.FgGreen)
	for _, diff := range diffs {
		for _, line := range strings.SplitAfter(diff.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")
			switch diff.Type {
			case diffpatch.DiffDelete:
				removed.Fprintf(w, "-%s\n", line)
			case diffpatch.DiffInsert:
				added.Fprintf(w, "+%s\n", line)
			default:
				fmt.Fprintf(w, " %s\n", line)
			}
		}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
