// Package app builds the cobra command shared by the dashboard binaries:
// named flag sets, configuration file and environment loading, option
// validation and the run function.
package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cliflag "k8s.io/component-base/cli/flag"
	"k8s.io/component-base/cli/globalflag"

	"github.com/autopeer-io/dashboard/pkg/log"
)

const (
	// EnvPrefix prefixes every environment override: --mqtt.broker becomes CPEER_MQTT_BROKER.
	EnvPrefix = "CPEER"

	flagConfig  = "config"
	keyLogLevel = "log.level"
)

// RunFunc is the main body of an application, called once options are valid.
type RunFunc func() error

// NamedFlagSetOptions is implemented by the root options of every binary.
type NamedFlagSetOptions interface {
	// Flags returns the option flags grouped by section.
	Flags() cliflag.NamedFlagSets

	// Complete fills in derived defaults after flags and config are loaded.
	Complete() error

	// Validate checks the completed options.
	Validate() error
}

// App is a command-line application.
type App struct {
	name        string
	shortDesc   string
	description string
	options     NamedFlagSetOptions
	runFunc     RunFunc
	args        cobra.PositionalArgs
	watchConfig bool

	viper *viper.Viper
	cmd   *cobra.Command
}

// Option configures an App.
type Option func(*App)

// WithOptions sets the root options of the application.
func WithOptions(opts NamedFlagSetOptions) Option {
	return func(a *App) { a.options = opts }
}

// WithRunFunc sets the function run after option validation.
func WithRunFunc(run RunFunc) Option {
	return func(a *App) { a.runFunc = run }
}

// WithDescription sets the long description shown in help.
func WithDescription(desc string) Option {
	return func(a *App) { a.description = desc }
}

// WithDefaultValidArgs rejects positional arguments.
func WithDefaultValidArgs() Option {
	return func(a *App) {
		a.args = func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				if len(arg) > 0 {
					return fmt.Errorf("%q does not take any arguments, got %q", cmd.CommandPath(), args)
				}
			}
			return nil
		}
	}
}

// WithWatchConfig re-reads the configuration file on change and applies
// the new log level without a restart.
func WithWatchConfig() Option {
	return func(a *App) { a.watchConfig = true }
}

// NewApp creates the application and its cobra command.
func NewApp(name, shortDesc string, opts ...Option) *App {
	a := &App{
		name:      name,
		shortDesc: shortDesc,
		viper:     viper.New(),
	}
	for _, o := range opts {
		o(a)
	}
	a.buildCommand()
	return a
}

// Command returns the underlying cobra command.
func (a *App) Command() *cobra.Command {
	return a.cmd
}

// Viper returns the configuration store backing the options.
func (a *App) Viper() *viper.Viper {
	return a.viper
}

// Run executes the command and exits the process on failure.
func (a *App) Run() {
	if err := a.cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *App) buildCommand() {
	cmd := &cobra.Command{
		Use:           a.name,
		Short:         a.shortDesc,
		Long:          a.description,
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          a.args,
		RunE:          a.runCommand,
	}
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	cmd.Flags().SortFlags = true

	var namedfs cliflag.NamedFlagSets
	if a.options != nil {
		namedfs = a.options.Flags()
	}
	global := namedfs.FlagSet("global")
	global.StringP(flagConfig, "c", "", "Read configuration from this YAML file. Flags and CPEER_* variables override it.")
	globalflag.AddGlobalFlags(global, cmd.Name())

	fs := cmd.Flags()
	for _, f := range namedfs.FlagSets {
		fs.AddFlagSet(f)
	}
	cliflag.SetUsageAndHelpFunc(cmd, namedfs, 0)

	a.cmd = cmd
}

func (a *App) runCommand(cmd *cobra.Command, _ []string) error {
	if err := a.loadConfig(cmd); err != nil {
		return err
	}

	if a.options != nil {
		if err := a.options.Complete(); err != nil {
			return fmt.Errorf("failed to complete options: %w", err)
		}
		if err := a.options.Validate(); err != nil {
			return err
		}
	}

	if a.runFunc == nil {
		return nil
	}
	return a.runFunc()
}

// loadConfig merges, lowest first: flag defaults, .env, config file,
// environment, explicit flags. The result is decoded into the options.
func (a *App) loadConfig(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	v := a.viper
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file := v.GetString(flagConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", file, err)
		}
		if a.watchConfig {
			v.OnConfigChange(a.onConfigChange)
			v.WatchConfig()
		}
	}

	if a.options == nil {
		return nil
	}
	if err := v.Unmarshal(a.options); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}
	return nil
}

func (a *App) onConfigChange(e fsnotify.Event) {
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
		return
	}
	level := a.viper.GetString(keyLogLevel)
	if level == "" || level == log.Level() {
		return
	}
	log.SetLevel(level)
	log.Info("Log level reloaded", "file", e.Name, "level", log.Level())
}
