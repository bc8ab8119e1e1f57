package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/scout/internal/scanner"
	"github.com/desertthunder/scout/internal/services"
	"github.com/desertthunder/scout/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	catalog    services.Catalog
	api        *services.FootballDataService
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	engine     *scanner.Engine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Catalog    services.Catalog
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Catalog == nil {
		opts.Catalog = services.NewFootballDataService(opts.Config.API.BaseURL, opts.Config.API.Token, opts.HTTPClient)
	}

	engine := scanner.NewEngine(opts.Catalog, opts.Config.Scan.RequestsPerSecond)

	api, _ := opts.Catalog.(*services.FootballDataService)

	return &Runner{
		config:     opts.Config,
		catalog:    opts.Catalog,
		api:        api,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		engine:     engine,
	}
}

// SetLogger swaps the active logger (the TUI redirects logs to a file).
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, scanCommand, competitionsCommand, streakCommand, historyCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig reloads configuration from the --config flag when the file
// exists, falling back to the runner's startup config.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	configPath := cmd.String("config")
	if configPath == "" {
		return r.config
	}
	if _, err := os.Stat(configPath); err == nil {
		if config, err := shared.LoadConfig(configPath); err == nil {
			return config
		}
		r.logger.Warn("failed to load config, using startup config", "path", configPath)
	}
	return r.config
}

// scanOpts assembles scan parameters from config defaults with flag overrides.
func (r *Runner) scanOpts(cmd *cli.Command) scanner.ScanOpts {
	opts := scanner.ScanOpts{
		AreaID: r.config.Scan.AreaID,
		Format: r.config.Scan.Format,
		Band: scanner.OddsBand{
			Low:  r.config.Scan.OddsLow,
			High: r.config.Scan.OddsHigh,
		},
		WinWindow:      r.config.Scan.WinWindow,
		GoalsWindow:    r.config.Scan.GoalsWindow,
		GoalsThreshold: r.config.Scan.GoalsThreshold,
	}

	if cmd.IsSet("area") {
		opts.AreaID = int64(cmd.Int("area"))
	}
	if cmd.IsSet("format") {
		opts.Format = cmd.String("format")
	}
	if cmd.IsSet("odds-low") {
		opts.Band.Low = cmd.Float("odds-low")
	}
	if cmd.IsSet("odds-high") {
		opts.Band.High = cmd.Float("odds-high")
	}

	return opts
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
