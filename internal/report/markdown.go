package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/njchilds90/anchorfix"
)

// Page is the rewrite outcome for one input document.
type Page struct {
	Source  string
	Results []anchorfix.Result
}

// Click is the outcome of activating one button.
type Click struct {
	Text string
	Tag  string
	// Capabilities lists the capabilities that were called, in order.
	Capabilities []string
	Location     string
	ScrollY      int
	Err          string
}

// Simulation is the outcome of the simulate command for one document.
type Simulation struct {
	Source string
	Clicks []Click
}

// WriteRewrite writes a Markdown report of every anchor in pages.
func WriteRewrite(w io.Writer, pages []Page) error {
	md := markdown.NewMarkdown(w)
	md.H1("Anchor Rewrite Report")
	md.PlainText("")

	counts := map[anchorfix.Category]int{}
	changed := 0
	for _, p := range pages {
		for _, r := range p.Results {
			counts[r.Category]++
			if r.Changed {
				changed++
			}
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Category", "Anchors"},
		Rows: [][]string{
			{anchorfix.CategoryButtonLike.String(), strconv.Itoa(counts[anchorfix.CategoryButtonLike])},
			{anchorfix.CategoryPlainInvalid.String(), strconv.Itoa(counts[anchorfix.CategoryPlainInvalid])},
			{anchorfix.CategoryOrdinary.String(), strconv.Itoa(counts[anchorfix.CategoryOrdinary])},
			{"**Changed**", "**" + strconv.Itoa(changed) + "**"},
		},
	})
	md.PlainText("")
	if changed > 0 {
		writePieChart(md, counts)
	} else {
		md.Tip("No anchors needed rewriting.")
		md.PlainText("")
	}

	for _, p := range pages {
		writePage(md, p)
	}
	return md.Build()
}

func writePieChart(md *markdown.Markdown, counts map[anchorfix.Category]int) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Anchor Categories"),
		piechart.WithShowData(true),
	)
	for _, c := range []anchorfix.Category{anchorfix.CategoryButtonLike, anchorfix.CategoryPlainInvalid, anchorfix.CategoryOrdinary} {
		if counts[c] > 0 {
			chart.LabelAndIntValue(c.String(), uint64(counts[c]))
		}
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func writePage(md *markdown.Markdown, p Page) {
	md.H2(p.Source)
	md.PlainText("")

	var rows [][]string
	for _, r := range p.Results {
		if !r.Changed {
			continue
		}
		before := "(none)"
		if r.HadHref {
			before = "`" + r.Before + "`"
		}
		rows = append(rows, []string{
			cell(r.Text),
			r.Category.String(),
			tagList(r.Tags),
			before,
			"`" + r.After + "`",
			yesNo(r.RelHardened),
		})
	}
	if len(rows) == 0 {
		md.PlainText("No anchors changed.")
		md.PlainText("")
		return
	}
	md.Table(markdown.TableSet{
		Header: []string{"Text", "Category", "Tags", "Before", "After", "Rel hardened"},
		Rows:   rows,
	})
	md.PlainText("")
}

// WriteSimulation writes a Markdown table of click outcomes.
func WriteSimulation(w io.Writer, s Simulation) error {
	md := markdown.NewMarkdown(w)
	md.H1("Button Simulation")
	md.PlainText("")
	md.PlainTextf("Source: `%s`", s.Source)
	md.PlainText("")

	if len(s.Clicks) == 0 {
		md.Note("No button-like anchors found.")
		return md.Build()
	}

	rows := make([][]string, len(s.Clicks))
	failed := 0
	for i, c := range s.Clicks {
		called := "-"
		if len(c.Capabilities) > 0 {
			called = "`" + strings.Join(c.Capabilities, "`, `") + "`"
		}
		errText := "-"
		if c.Err != "" {
			errText = cell(c.Err)
			failed++
		}
		rows[i] = []string{cell(c.Text), c.Tag, called, c.Location, strconv.Itoa(c.ScrollY), errText}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Button", "Tag", "Called", "Location", "Scroll", "Error"},
		Rows:   rows,
	})
	md.PlainText("")
	if failed > 0 {
		md.Warningf("%d button(s) returned an error.", failed)
	}
	return md.Build()
}

func tagList(tags []anchorfix.Tag) string {
	if len(tags) == 0 {
		return "-"
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// cell makes s safe for a table cell and truncates it to 40 characters.
func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, "|", `\|`)
	if s == "" {
		return "-"
	}
	const maxLen = 40
	if r := []rune(s); len(r) > maxLen {
		return string(r[:maxLen-3]) + "..."
	}
	return s
}
