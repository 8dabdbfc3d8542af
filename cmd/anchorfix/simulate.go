package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/njchilds90/anchorfix"
	"github.com/njchilds90/anchorfix/internal/report"
	"github.com/spf13/cobra"
)

// simulatedScroll is the offset each button is clicked from, so that
// back-to-top buttons show their effect.
const simulatedScroll = 1000

// NewSimulateCmd creates the simulate command.
func NewSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate <file>",
		Short: "Click every button-like anchor and report what happens",
		Long: `Simulate loads an HTML page, evaluates the configured theme scripts in
a JavaScript runtime, rewrites the page and clicks every button-like
anchor. The report lists which theme functions each button called and
where the page ended up.

Examples:
  anchorfix simulate index.html
  anchorfix simulate -s themes/main.js -o buttons.md index.html`,
		Args: cobra.ExactArgs(1),
		RunE: runSimulateCmd,
	}

	cmd.Flags().StringSliceP("script", "s", nil, "Additional theme script to evaluate (repeatable)")
	cmd.Flags().StringP("output", "o", "", "Write the Markdown report to this file instead of stdout")

	return cmd
}

func runSimulateCmd(cmd *cobra.Command, args []string) error {
	scripts, err := cmd.Flags().GetStringSlice("script")
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	cf, policy, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	source := args[0]
	data, err := os.ReadFile(source) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return err
	}
	doc, err := anchorfix.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", source, err)
	}

	caps := anchorfix.NewScriptCapabilities(nil)
	for _, path := range append(cf.ScriptPaths(), scripts...) {
		src, err := os.ReadFile(path) //nolint:gosec // Theme scripts are user-provided
		if err != nil {
			return err
		}
		if err := caps.RunScript(path, string(src)); err != nil {
			return fmt.Errorf("failed to evaluate %s: %w", path, err)
		}
		logger.Debug("theme script loaded", "path", path)
	}
	rec := &recordingCapabilities{inner: caps}
	doc.SetCapabilities(rec)

	anchorfix.Watch(doc, policy)
	doc.MarkReady()

	sim := simulate(doc, policy, rec)
	sim.Source = source

	var buf bytes.Buffer
	if err := report.WriteSimulation(&buf, sim); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if output != "" {
		return writeFile(output, buf.Bytes(), 0644)
	}
	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}

// simulate clicks each button-like anchor of doc from a fresh location
// and scroll offset.
func simulate(doc *anchorfix.Document, policy *anchorfix.Policy, rec *recordingCapabilities) report.Simulation {
	var sim report.Simulation
	for _, a := range doc.Anchors() {
		c := anchorfix.Classify(a, policy)
		tag, ok := c.PrimaryTag()
		if !ok || c.Category != anchorfix.CategoryButtonLike {
			continue
		}

		_ = doc.SetLocation(anchorfix.DefaultLocation)
		_ = doc.ScrollTo(simulatedScroll, false)
		rec.calls = nil

		click := report.Click{Text: strings.TrimSpace(anchorfix.TextContent(a)), Tag: tag.String()}
		if err := doc.Click(a); err != nil {
			click.Err = err.Error()
		}
		click.Capabilities = rec.calls
		click.Location = doc.Location()
		click.ScrollY = doc.ScrollY()
		sim.Clicks = append(sim.Clicks, click)
	}
	return sim
}

// recordingCapabilities records the names of capabilities that are called.
type recordingCapabilities struct {
	inner anchorfix.Capabilities
	calls []string
}

func (r *recordingCapabilities) Lookup(name string) (anchorfix.Capability, bool) {
	c, ok := r.inner.Lookup(name)
	if !ok {
		return nil, false
	}
	return func() error {
		r.calls = append(r.calls, name)
		return c()
	}, true
}
