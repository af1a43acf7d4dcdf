package main

import (
	"github.com/spf13/cobra"

	"github.com/bjaus/posprintf/internal/batch"
	"github.com/bjaus/posprintf/internal/logging"
	"github.com/bjaus/posprintf/internal/report"
)

type renderOptions struct {
	capacity int
	divider  string
	output   string
	charset  string
}

func newRenderCmd(a *app) *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render FORMAT [ARG...]",
		Short: "Render a format string into a fixed-size buffer",
		Long: `Render FORMAT with the given arguments. Each argument is converted
according to the directive that consumes it: text for %s, signed decimal
for %d and %l, unsigned decimal or 0x-prefixed hex for %x and %X.

A capacity of 0 sizes the buffer exactly. Flags must precede FORMAT so
negative arguments are not read as flags.`,
		Example: `  posprintf render 'Hello, %s! You have %d gold.' World 42
  posprintf render --capacity 6 '%05d' -123
  posprintf render --output json '%08X' 0xbeef`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, a, opts, args[0], args[1:])
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().IntVar(&opts.capacity, "capacity", -1, "destination buffer size including the terminator (default from config)")
	cmd.Flags().StringVar(&opts.divider, "divider", "", "divide primitive for %d and %l (native|long|subtract)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output format (plain|json|yaml|table|msgpack|...)")
	cmd.Flags().StringVar(&opts.charset, "charset", "", "charset for %s arguments (ascii|latin1|cp1252|cp437)")
	return cmd
}

func runRender(cmd *cobra.Command, a *app, opts renderOptions, format string, raw []string) error {
	p, err := a.printer(opts.divider)
	if err != nil {
		return err
	}
	f, err := a.output(opts.output)
	if err != nil {
		return err
	}
	args, err := batch.ConvertArgs(format, raw, a.charset(opts.charset))
	if err != nil {
		return err
	}

	capacity := opts.capacity
	if capacity < 0 {
		capacity = a.cfg.Capacity
	}
	if capacity == 0 {
		if capacity, err = p.Size(format, args...); err != nil {
			return err
		}
	}

	buf := make([]byte, capacity)
	n, renderErr := p.Print(buf, format, args...)
	logging.L.Debug("render", "format", format, "capacity", capacity, "written", n, "error", renderErr)

	out := cmd.OutOrStdout()
	if f == report.Plain {
		if renderErr != nil {
			return renderErr
		}
		if _, err := out.Write(append(buf[:n:n], '\n')); err != nil {
			return err
		}
		return nil
	}
	if err := report.Write(out, f, report.NewResult(format, buf[:n], capacity, renderErr)); err != nil {
		return err
	}
	return renderErr
}
