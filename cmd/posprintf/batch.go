package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/bjaus/posprintf/internal/batch"
	"github.com/bjaus/posprintf/internal/report"
)

var errJobsFailed = errors.New("jobs failed")

type batchOptions struct {
	jobs     int
	capacity int
	divider  string
	output   string
	charset  string
}

func newBatchCmd(a *app) *cobra.Command {
	var opts batchOptions
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Render every job in a tab-separated job file",
		Long: `Render every job in FILE concurrently. Each line holds a format string
followed by its arguments, separated by tabs. Blank lines and lines starting
with '#' are ignored. Use '-' to read from stdin.

Results are printed in file order. The command fails if any job failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, a, opts, args[0])
		},
	}
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "concurrent renders (default from config)")
	cmd.Flags().IntVar(&opts.capacity, "capacity", -1, "buffer size per job, 0 sizes exactly (default from config)")
	cmd.Flags().StringVar(&opts.divider, "divider", "", "divide primitive for %d and %l (native|long|subtract)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output format (plain|jsonl|json|yaml|table|csv|...)")
	cmd.Flags().StringVar(&opts.charset, "charset", "", "charset for %s arguments (ascii|latin1|cp1252|cp437)")
	return cmd
}

func runBatch(cmd *cobra.Command, a *app, opts batchOptions, path string) error {
	p, err := a.printer(opts.divider)
	if err != nil {
		return err
	}
	f, err := a.output(opts.output)
	if err != nil {
		return err
	}

	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		r = file
	}
	jobs, err := batch.ParseJobs(r)
	if err != nil {
		return err
	}

	runOpts := batch.Options{
		Jobs:     opts.jobs,
		Capacity: opts.capacity,
		Charset:  a.charset(opts.charset),
	}
	if runOpts.Jobs <= 0 {
		runOpts.Jobs = a.cfg.Jobs
	}
	if runOpts.Capacity < 0 {
		runOpts.Capacity = a.cfg.Capacity
	}

	results, err := batch.Run(cmd.Context(), p, jobs, runOpts)
	if err != nil {
		return err
	}
	if err := report.WriteIter(cmd.OutOrStdout(), f, slices.Values(results)); err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}
	a.infof(cmd, "rendered %d jobs, %d failed\n", len(results), failed)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errJobsFailed, failed, len(results))
	}
	return nil
}
