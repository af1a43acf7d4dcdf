package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bjaus/posprintf"
	"github.com/bjaus/posprintf/internal/config"
	"github.com/bjaus/posprintf/internal/logging"
	"github.com/bjaus/posprintf/internal/report"
)

// app carries global flag values and the resolved config to subcommands.
type app struct {
	configPath string
	colorMode  string
	verbose    bool
	quiet      bool

	cfg     config.Config
	cfgPath string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "posprintf",
		Short: "Render and inspect posprintf format strings",
		Long: `posprintf renders format strings with the %s %d %l %x %X mini-language
into fixed-size, zero-terminated buffers, the way a memory-constrained target
would, and reports exactly what was written.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: nearest "+config.FileName+")")
	root.PersistentFlags().StringVar(&a.colorMode, "color", "", "colorize output (auto|on|off)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-essential output")

	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newExplainCmd(a))
	root.AddCommand(newBatchCmd(a))
	root.AddCommand(newSizeCmd(a))
	root.AddCommand(newVersionCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, path, err := config.Resolve(a.configPath, ".")
	if err != nil {
		return err
	}
	a.cfg, a.cfgPath = cfg, path

	if a.colorMode != "" {
		a.cfg.Color = a.colorMode
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	a.colorMode = a.cfg.Color

	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	logging.Init(logging.Options{Enabled: a.verbose, Writer: cmd.ErrOrStderr(), Level: level})
	logging.L.Debug("config resolved", "path", a.cfgPath, "divider", a.cfg.Divider, "capacity", a.cfg.Capacity)
	return nil
}

// printer builds a Printer from the config, with divider overriding every
// configured divider when set.
func (a *app) printer(divider string) (*posprintf.Printer, error) {
	cfg := a.cfg
	if divider != "" {
		cfg.Divider, cfg.ShortDivider, cfg.LongDivider = divider, "", ""
	}
	opts, err := cfg.PrinterOptions()
	if err != nil {
		return nil, err
	}
	return posprintf.New(opts...), nil
}

func (a *app) output(flag string) (report.Format, error) {
	if flag == "" {
		flag = a.cfg.Output
	}
	return report.ParseFormat(flag)
}

func (a *app) charset(flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.Charset
}

// infof prints a status line to stderr unless --quiet is set.
func (a *app) infof(cmd *cobra.Command, format string, args ...any) {
	if !a.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
	}
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
}

// colorize returns a color for output written to w, enabled or disabled
// per mode regardless of where other output goes.
func colorize(mode string, w io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if useColor(mode, w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func printError(w io.Writer, mode string, err error) {
	colorize(mode, w, color.FgRed, color.Bold).Fprint(w, "error: ")
	fmt.Fprintln(w, err)
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		mode, _ := root.PersistentFlags().GetString("color")
		printError(os.Stderr, mode, err)
		os.Exit(1)
	}
}
