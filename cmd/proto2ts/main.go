package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	goversion "github.com/caarlos0/go-version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/origadmin/proto2ts/internal/config"
	"github.com/origadmin/proto2ts/internal/generator"
	"github.com/origadmin/proto2ts/internal/types"
)

var (
	version   = "0.0.1"
	commit    = ""
	treeState = ""
	date      = ""
	builtBy   = ""
)

// options are the flags that do not belong to the generation config.
type options struct {
	configFile  string
	dump        bool
	debug       bool
	logFile     string
	version     bool
	printConfig bool
}

func main() {
	cmd := newRootCommand(os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	cfg := config.NewDefaultConfig()
	opts := &options{}

	cmd := &cobra.Command{
		Use:   types.Application + " [options] [file]",
		Short: types.Description,
		Args:  cobra.MaximumNArgs(1),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVarP(&cfg.File, "file", "f", "", "Path of the ProtoBuf.js JSON schema description")
	flags.StringVarP(&cfg.OutFile, "outFile", "o", "", "Write the declarations to this file instead of stdout")
	flags.BoolVarP(&cfg.CamelCaseGetSet, "camelCaseGetSet", "c", cfg.CamelCaseGetSet, "Generate getters and setters in camel case notation")
	flags.BoolVarP(&cfg.UnderscoreGetSet, "underscoreGetSet", "u", cfg.UnderscoreGetSet, "Generate getters and setters in underscore notation")
	flags.BoolVarP(&cfg.Properties, "properties", "p", cfg.Properties, "Generate properties")
	flags.StringVarP(&cfg.Package, "package", "g", "", "Root package name (defaults to the declared package, then "+config.DefaultPackage+")")
	flags.StringVar(&cfg.Templates, "templates", "", "Template file or directory loaded over the built-in templates")
	flags.BoolVar(&cfg.Strict, "strict", false, "Fail on duplicate names within one scope")
	flags.StringVar(&opts.configFile, "config", "", "YAML settings file; explicit flags take precedence")
	flags.BoolVar(&opts.dump, "dump", false, "Dump the resolved tree to stderr")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.StringVar(&opts.logFile, "log-file", "", "Path to a file where logs should be written. If empty, logs go to stderr.")
	flags.BoolVar(&opts.version, "version", false, "Print version information")
	flags.BoolVar(&opts.printConfig, "print-config", false, "Print the effective settings as YAML and exit")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		closeLog, err := setupLogging(opts, stderr)
		if err != nil {
			slog.Error("Failed to open log file", "file", opts.logFile, "error", err)
			return err
		}
		defer closeLog()

		if err := run(cmd.Context(), cmd, cfg, opts, args, stdout, stderr); err != nil {
			slog.Error("Generation failed", "error", err)
			return err
		}
		return nil
	}
	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, cfg *config.Config, opts *options, args []string, stdout, stderr io.Writer) error {
	if opts.version {
		v := buildVersion(version, commit, date, builtBy, treeState)
		fmt.Fprintln(stdout, v.String())
		return nil
	}

	if opts.configFile != "" {
		if err := applyConfigFile(cmd.Flags(), cfg, opts.configFile); err != nil {
			return err
		}
	}
	// A positional file beats the config file but not an explicit --file.
	if len(args) == 1 && !cmd.Flags().Changed("file") {
		cfg.File = args[0]
	}

	if opts.printConfig {
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	if cfg.File == "" && cmd.Flags().NFlag() == 0 {
		v := buildVersion(version, commit, date, builtBy, treeState)
		fmt.Fprintln(stdout, v.String())
		fmt.Fprint(stdout, cmd.UsageString())
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var genOpts []generator.Option
	if opts.dump {
		genOpts = append(genOpts, generator.WithDump(stderr))
	}

	slog.Info("Starting "+types.Application, "file", cfg.File, "outFile", cfg.OutFile)
	gen, err := generator.NewGenerator(cfg, genOpts...)
	if err != nil {
		return err
	}
	if err := gen.Run(ctx, stdout); err != nil {
		return err
	}
	slog.Info(types.Application + " finished successfully.")
	return nil
}

// applyConfigFile loads a settings file into cfg. Flags given on the command
// line are applied again afterwards so they win over the file.
func applyConfigFile(flags *pflag.FlagSet, cfg *config.Config, path string) error {
	explicit := make(map[string]string)
	flags.Visit(func(f *pflag.Flag) {
		explicit[f.Name] = f.Value.String()
	})

	loaded, err := config.LoadFile(path, cfg)
	if err != nil {
		return err
	}
	*cfg = *loaded

	for name, value := range explicit {
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("reapply flag --%s: %w", name, err)
		}
	}
	slog.Debug("Loaded config file", "file", path, "overrides", len(explicit))
	return nil
}

func setupLogging(opts *options, stderr io.Writer) (func(), error) {
	logWriter := stderr
	closeLog := func() {}
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return closeLog, err
		}
		logWriter = f
		closeLog = func() { _ = f.Close() }
	}

	logLevel := slog.LevelWarn
	if opts.debug {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: logLevel,
	})))
	return closeLog, nil
}

func buildVersion(version, commit, date, builtBy, treeState string) goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails(types.Application, types.Description, types.WebSite),
		func(i *goversion.Info) {
			i.ASCIIName = types.UI
			if commit != "" {
				i.GitCommit = commit
			}
			if version != "" {
				i.GitVersion = version
			}
			if treeState != "" {
				i.GitTreeState = treeState
			}
			if date != "" {
				i.BuildDate = date
			}
			if builtBy != "" {
				i.BuiltBy = builtBy
			}
		},
	)
}
