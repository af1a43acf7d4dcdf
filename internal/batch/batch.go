// Package batch renders many format jobs concurrently.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bjaus/posprintf"
	"github.com/bjaus/posprintf/internal/logging"
	"github.com/bjaus/posprintf/internal/report"
)

// Job is one line of a job file.
type Job struct {
	Line   int
	Format string
	Args   []string
}

// ParseJobs reads one job per line: the format, then its arguments, all
// separated by tabs. Blank lines and lines starting with '#' are skipped.
func ParseJobs(r io.Reader) ([]Job, error) {
	var jobs []Job
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		jobs = append(jobs, Job{Line: line, Format: fields[0], Args: fields[1:]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read jobs: %w", err)
	}
	return jobs, nil
}

// Options configures [Run].
type Options struct {
	Jobs     int    // maximum concurrent renders, at least 1
	Capacity int    // destination size per job; 0 sizes each buffer exactly
	Charset  string // charset for %s arguments
}

// Run renders every job with p, each into its own buffer, and returns the
// results in job order. A failing job is recorded on its result. Run only
// fails when ctx is cancelled.
func Run(ctx context.Context, p *posprintf.Printer, jobs []Job, opts Options) ([]report.Result, error) {
	results := make([]report.Result, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(opts.Jobs, len(jobs))))
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = renderJob(p, job, opts)
			logging.L.Debug("rendered job", "line", job.Line, "length", results[i].Length, "error", results[i].Error)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func renderJob(p *posprintf.Printer, job Job, opts Options) report.Result {
	args, err := ConvertArgs(job.Format, job.Args, opts.Charset)
	if err != nil {
		return report.NewResult(job.Format, nil, opts.Capacity, fmt.Errorf("line %d: %w", job.Line, err))
	}
	capacity := opts.Capacity
	if capacity == 0 {
		capacity, err = p.Size(job.Format, args...)
		if err != nil {
			return report.NewResult(job.Format, nil, 0, fmt.Errorf("line %d: %w", job.Line, err))
		}
	}
	buf := make([]byte, capacity)
	n, err := p.Print(buf, job.Format, args...)
	if err != nil {
		err = fmt.Errorf("line %d: %w", job.Line, err)
	}
	return report.NewResult(job.Format, buf[:n], capacity, err)
}
