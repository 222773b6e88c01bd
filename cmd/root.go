package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grovetools/ristate/cli"
	"github.com/grovetools/ristate/config"
	"github.com/grovetools/ristate/errors"
	"github.com/grovetools/ristate/internal/status/dispatch"
	"github.com/grovetools/ristate/internal/status/engine"
	"github.com/grovetools/ristate/internal/status/render"
	"github.com/grovetools/ristate/internal/status/session"
	"github.com/grovetools/ristate/internal/status/store"
	"github.com/grovetools/ristate/logging"
	"github.com/grovetools/ristate/pkg/profiling"
	"github.com/grovetools/ristate/pkg/wayland"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type rootOptions struct {
	focusedTags bool
	urgency     bool
	viewTags    bool
	focusedView bool
	layout      bool
	output      string
	seat        string

	// dangling holds filter flags that were given without a value.
	dangling []string
	profiler *profiling.Profiler
}

// flagConfig is the configuration described by the command line alone.
func (o *rootOptions) flagConfig() config.Config {
	var fields config.FieldSet
	for f, on := range map[config.Field]bool{
		config.FieldFocusedTags: o.focusedTags,
		config.FieldUrgentTags:  o.urgency,
		config.FieldViewTags:    o.viewTags,
		config.FieldFocusedView: o.focusedView,
		config.FieldLayout:      o.layout,
	} {
		if on {
			fields = fields.With(f)
		}
	}
	return config.Config{Fields: fields, Output: o.output, Seat: o.seat}
}

// Execute runs ristate with the given arguments and returns the exit code.
func Execute(args []string) int {
	args, dangling := NormalizeArgs(args)
	opts := &rootOptions{dangling: dangling, profiler: profiling.New()}
	root := newRootCmd(opts)
	root.SetArgs(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := root.ExecuteContext(ctx)
	opts.profiler.Finish(os.Stderr)
	if err != nil {
		verbose, _ := root.PersistentFlags().GetBool("verbose")
		cli.NewErrorHandler(os.Stderr, verbose).Handle(err)
		return 1
	}
	return 0
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	if opts.profiler == nil {
		opts.profiler = profiling.New()
	}

	cmd := cli.NewStandardCommand("ristate", "Stream river status as JSON")
	cmd.Long = `Subscribes to river's status protocol and prints one JSON object per line
whenever the compositor reports a change. Only the selected fields are
reported; with an output or seat filter, other outputs and seats are ignored.`
	cmd.Example = `# Focused and urgent tags of every output
ristate -t -u

# Per-view tags and the focused title on one monitor
ristate -vt -f --output DellInc.`

	cmd.Args = cobra.ArbitraryArgs
	cmd.FParseErrWhitelist = cobra.FParseErrWhitelist{UnknownFlags: true}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.focusedTags, "focused-tags", "t", false, "Report the focused tags of each output")
	flags.BoolVarP(&opts.urgency, "urgency", "u", false, "Report the urgent tags of each output")
	flags.BoolVar(&opts.viewTags, "view-tags", false, "Report the tag of every view (also -vt)")
	flags.BoolVarP(&opts.focusedView, "focused-view", "f", false, "Report the title of the focused view")
	flags.BoolVarP(&opts.layout, "layout", "l", false, "Report the layout name")
	flags.StringVarP(&opts.output, "output", "o", "", "Only report this output (make without spaces)")
	flags.StringVarP(&opts.seat, "seat", "s", "", "Only report this seat")
	opts.profiler.AddFlags(cmd)
	cmd.PersistentPreRunE = opts.profiler.PreRun
	cmd.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(normalizeFlagName(name))
	})

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run(cmd, opts, args)
	}

	cmd.AddCommand(cli.NewVersionCommand("ristate"))
	cmd.AddCommand(newConfigCmd(opts))
	cli.ApplyStyledHelpRecursive(cmd)

	return cmd
}

// setup loads the configuration file, builds the logger and resolves the
// effective configuration. Configuration problems are logged, never fatal.
func setup(cmd *cobra.Command, opts *rootOptions) (config.Config, *config.File, *logrus.Entry) {
	cliOpts := cli.GetOptions(cmd)

	file, fileErr := config.LoadDefault(cliOpts.ConfigFile)
	if fileErr != nil {
		file = &config.File{}
	}

	logCfg, logErr := logging.ConfigFrom(file)
	if cliOpts.Verbose {
		logCfg.Level = "debug"
		logCfg.Format.StructuredToStderr = "always"
	}
	logger := logging.NewLogger("ristate", logCfg)
	if cliOpts.Verbose {
		logger.Logger.SetLevel(logrus.DebugLevel)
	}

	if fileErr != nil {
		logger.WithError(fileErr).Warn("Ignoring configuration file")
	} else if file.Path != "" {
		logger.WithField("path", file.Path).Debug("Loaded configuration file")
	}
	if logErr != nil {
		logger.WithError(logErr).Warn("Ignoring logging configuration")
	}
	for _, flag := range opts.dangling {
		logger.WithField("flag", flag).Warn("Ignoring filter flag without a value")
	}

	cfg := config.Resolve(file, opts.flagConfig(), logger)
	return cfg, file, logger
}

func run(cmd *cobra.Command, opts *rootOptions, args []string) error {
	ctx := cmd.Context()
	cfg, _, logger := setup(cmd, opts)

	if len(args) > 0 {
		logger.WithField("args", args).Debug("Ignoring positional arguments")
	}
	if cfg.Fields.Empty() {
		logger.Warn("No report fields selected; nothing will be printed")
	}

	conn, socket, err := wayland.Connect()
	if err != nil {
		return errors.ConnectFailed(socket, err)
	}
	logger.WithField("socket", socket).Debug("Connected to compositor")

	sess := session.New(conn, session.Options{
		SubscribeOutputs: cfg.WantsOutputs(),
		SubscribeSeats:   cfg.WantsSeats(),
	}, logger.WithField("component", "session"))

	timer := opts.profiler.Start("bootstrap")
	stopBootstrap := context.AfterFunc(ctx, func() { sess.Close() })
	err = sess.Bootstrap()
	stopBootstrap()
	timer.Stop()
	if err != nil || ctx.Err() != nil {
		sess.Close()
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	st := store.New()
	eng := engine.New(sess, st,
		dispatch.New(cfg, st, logger.WithField("component", "dispatch")),
		render.New(cmd.OutOrStdout(), cfg.Fields),
		logger.WithField("component", "engine"),
	)
	eng.SetObserver(opts.profiler)
	defer sess.Close()
	return eng.Run(ctx)
}
