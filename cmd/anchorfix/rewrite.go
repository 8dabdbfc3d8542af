package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/njchilds90/anchorfix"
	"github.com/njchilds90/anchorfix/internal/config"
	"github.com/njchilds90/anchorfix/internal/report"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewRewriteCmd creates the rewrite command.
func NewRewriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewrite [file...]",
		Short: "Rewrite anchors in HTML files",
		Long: `Rewrite classifies every anchor in the given HTML files and rewrites
button-like and destination-less anchors.

With no file arguments the document is read from standard input.

Examples:
  # Rewrite a page to stdout
  anchorfix rewrite index.html

  # Rewrite a generated site in place and keep a report
  anchorfix rewrite -w --report anchors.md public/*.html

  # Pipe through
  cat index.html | anchorfix rewrite > out.html`,
		RunE: runRewriteCmd,
	}

	cmd.Flags().BoolP("write", "w", false, "Write results back to the source files")
	cmd.Flags().StringP("output", "o", "", "Write the result to this file (single input only)")
	cmd.Flags().String("report", "", "Write a Markdown report of rewritten anchors to this file")
	cmd.Flags().IntP("jobs", "j", runtime.NumCPU(), "Number of files processed concurrently")

	return cmd
}

// rewriteOptions holds the parsed rewrite flags.
type rewriteOptions struct {
	write      bool
	output     string
	reportPath string
	jobs       int
}

func parseRewriteOptions(cmd *cobra.Command, args []string) (rewriteOptions, error) {
	var opts rewriteOptions
	var err error
	if opts.write, err = cmd.Flags().GetBool("write"); err != nil {
		return opts, err
	}
	if opts.output, err = cmd.Flags().GetString("output"); err != nil {
		return opts, err
	}
	if opts.reportPath, err = cmd.Flags().GetString("report"); err != nil {
		return opts, err
	}
	if opts.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return opts, err
	}

	switch {
	case opts.jobs <= 0:
		return opts, config.ErrInvalidJobs
	case opts.write && len(args) == 0:
		return opts, config.ErrWriteNeedsFile
	case opts.output != "" && (opts.write || len(args) > 1):
		return opts, config.ErrConflictingOutput
	}
	return opts, nil
}

// rewritten is the outcome for one input.
type rewritten struct {
	source  string
	html    string
	results []anchorfix.Result
}

func runRewriteCmd(cmd *cobra.Command, args []string) error {
	opts, err := parseRewriteOptions(cmd, args)
	if err != nil {
		return err
	}
	_, policy, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	var outputs []rewritten
	if len(args) == 0 {
		out, results, err := anchorfix.RewriteReaderResults(cmd.InOrStdin(), policy)
		if err != nil {
			return fmt.Errorf("failed to rewrite stdin: %w", err)
		}
		outputs = []rewritten{{source: "stdin", html: out, results: results}}
	} else {
		outputs, err = rewriteFiles(args, policy, opts)
		if err != nil {
			return err
		}
	}

	for _, o := range outputs {
		logger.Info("rewrote document", "source", o.source, "anchors", len(o.results))
		switch {
		case opts.write:
			// rewriteFiles already wrote it back.
		case opts.output != "":
			if err := writeFile(opts.output, []byte(o.html), 0644); err != nil {
				return err
			}
		default:
			if _, err := io.WriteString(cmd.OutOrStdout(), o.html); err != nil {
				return err
			}
		}
	}

	if opts.reportPath != "" {
		return writeRewriteReport(opts.reportPath, outputs)
	}
	return nil
}

// rewriteFiles processes paths concurrently. Results keep argument order.
func rewriteFiles(paths []string, policy *anchorfix.Policy, opts rewriteOptions) ([]rewritten, error) {
	outputs := make([]rewritten, len(paths))

	var g errgroup.Group
	g.SetLimit(opts.jobs)
	for i, path := range paths {
		g.Go(func() error {
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
			if err != nil {
				return err
			}
			defer f.Close()

			out, results, err := anchorfix.RewriteReaderResults(f, policy)
			if err != nil {
				return fmt.Errorf("failed to rewrite %s: %w", path, err)
			}
			if opts.write {
				if err := writeFile(path, []byte(out), info.Mode().Perm()); err != nil {
					return err
				}
			}
			outputs[i] = rewritten{source: path, html: out, results: results}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

func writeRewriteReport(path string, outputs []rewritten) error {
	pages := make([]report.Page, len(outputs))
	for i, o := range outputs {
		pages[i] = report.Page{Source: o.source, Results: o.results}
	}
	var buf bytes.Buffer
	if err := report.WriteRewrite(&buf, pages); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return writeFile(path, buf.Bytes(), 0644)
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte, perm os.FileMode) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
