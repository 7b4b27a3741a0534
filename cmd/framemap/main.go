package main

import (
	"fmt"
	"os"

	"framemap/internal/app"
	"framemap/internal/frames"
	"framemap/internal/render"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// options holds values shared by every subcommand.
type options struct {
	configPath   string
	verbose      bool
	boundsPolicy string
	color        string

	cfg    *app.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "framemap",
		Short: "Lay out frames and link their cells",
		Long: `framemap is an interactive designer for UI navigation maps.

Frames are fixed-size grids. A link connects a cell of one frame with the
same cell of another frame, and both frames record it.

Run without arguments to start the interactive shell.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.NewSession(opts.cfg, cmd.OutOrStdout(), opts.logger)
			return s.Run(cmd.InOrStdin(), true)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to a yaml config file")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&opts.boundsPolicy, "bounds-policy", "", "links onto smaller frames: one-sided or strict")
	pf.StringVar(&opts.color, "color", "", "colored output: auto, always or never")

	root.AddCommand(newRunCmd(opts), newDemoCmd(opts))
	return root
}

// setup layers flags over the loaded config and builds the logger.
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := app.LoadConfig(o.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("bounds-policy") {
		cfg.Links.BoundsPolicy = o.boundsPolicy
	}
	if flags.Changed("color") {
		cfg.Shell.Color = o.color
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := app.NewLogger(cfg.Log, o.verbose)
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.logger = logger
	logger.Debug("config loaded",
		zap.String("path", o.configPath),
		zap.String("bounds_policy", cfg.Links.BoundsPolicy),
		zap.String("color", cfg.Shell.Color))
	return nil
}

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run FILE",
		Short: "Execute shell commands from a file (- for stdin)",
		Long: `Executes one shell command per line, exactly as typed in the interactive
shell. Blank lines and lines starting with # are ignored.

Example:
  framemap run layout.txt
  echo "new 2 2" | framemap run -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open script: %w", err)
				}
				defer f.Close()
				in = f
			}
			s := app.NewSession(opts.cfg, cmd.OutOrStdout(), opts.logger)
			if err := s.Run(in, false); err != nil {
				return err
			}
			opts.logger.Info("script finished", zap.String("file", args[0]), zap.Int("refused", s.Refused()))
			return nil
		},
	}
}

func newDemoCmd(opts *options) *cobra.Command {
	dc := app.DefaultDemoConfig()
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Generate and print a random layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			m := frames.NewManager(frames.WithBoundsPolicy(opts.cfg.Policy()), frames.WithLogger(opts.logger))
			stats, err := app.Populate(m, dc)
			if err != nil {
				return err
			}
			if err := m.Verify(); err != nil {
				return err
			}
			theme := app.ThemeFor(opts.cfg.Shell.Color, out)
			if err := render.Frames(out, theme, m.Frames()); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "\n%s\n", stats)
			return err
		},
	}
	f := cmd.Flags()
	f.Int64Var(&dc.Seed, "seed", dc.Seed, "seed for the generated layout")
	f.IntVar(&dc.Frames, "frames", dc.Frames, "number of frames")
	f.IntVar(&dc.MinDim, "min-dim", dc.MinDim, "smallest row/column count")
	f.IntVar(&dc.MaxDim, "max-dim", dc.MaxDim, "largest row/column count")
	f.IntVar(&dc.Attempts, "attempts", dc.Attempts, "link attempts")
	return cmd
}
