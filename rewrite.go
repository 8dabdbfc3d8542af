package anchorfix

import (
	"bytes"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
)

// DefaultRandomPostFallback is where a random-post button navigates when
// the page provides no random-post function.
const DefaultRandomPostFallback = "/archives/"

// Transformer is called for every anchor after it has been rewritten. It
// may mutate the node further.
type Transformer func(n *html.Node, c Classification)

// Policy controls how anchors are classified and what their buttons do.
type Policy struct {
	// ButtonClasses maps each tag to the class names that select it.
	// An anchor whose class list contains any of them is button-like.
	ButtonClasses map[Tag][]string

	// Strategies maps each tag to the behavior run on click. Tags with no
	// entry do nothing beyond suppressing navigation.
	Strategies Strategies

	// RandomPostFallback is the path the random-post button navigates to
	// when no random-post capability is available. Empty means
	// DefaultRandomPostFallback.
	RandomPostFallback string

	// Transformers is an optional slice of Transformer functions applied
	// in order to every anchor after rewriting.
	Transformers []Transformer

	// Logger receives debug records about each decision. Nil discards.
	Logger *slog.Logger
}

// DefaultButtonClasses returns the class names recognized for each tag.
func DefaultButtonClasses() map[Tag][]string {
	return map[Tag][]string{
		TagDarkMode:       {"darkmode_switchbutton"},
		TagAsideSwitch:    {"asideSwitch"},
		TagConsoleSwitch:  {"console_switchbutton"},
		TagBannerButton:   {"banner-button"},
		TagCommentBarrage: {"commentBarrage"},
		TagToTop:          {"totopbtn"},
		TagRandomPost:     {"randomPost", "random-post"},
		TagSitePage:       {"site-page"},
	}
}

// DefaultPolicy returns a Policy that recognizes the built-in button
// classes and runs the built-in strategies.
func DefaultPolicy() *Policy {
	return &Policy{
		ButtonClasses:      DefaultButtonClasses(),
		Strategies:         DefaultStrategies(),
		RandomPostFallback: DefaultRandomPostFallback,
	}
}

// AddButtonClasses registers extra class names for tag.
func (p *Policy) AddButtonClasses(tag Tag, classes ...string) {
	if p.ButtonClasses == nil {
		p.ButtonClasses = make(map[Tag][]string)
	}
	p.ButtonClasses[tag] = append(p.ButtonClasses[tag], classes...)
}

func (p *Policy) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

func (p *Policy) randomPostFallback() string {
	if p.RandomPostFallback == "" {
		return DefaultRandomPostFallback
	}
	return p.RandomPostFallback
}

// matchTags returns the tags selected by classes, in priority order.
func (p *Policy) matchTags(classes []string) []Tag {
	if len(classes) == 0 {
		return nil
	}
	have := make(map[string]bool, len(classes))
	for _, c := range classes {
		have[c] = true
	}
	var tags []Tag
	for _, t := range Tags() {
		for _, c := range p.ButtonClasses[t] {
			if have[c] {
				tags = append(tags, t)
				break
			}
		}
	}
	return tags
}

// Result records what a single rewrite did to one anchor.
type Result struct {
	// Text is the anchor's trimmed text content, for reports.
	Text string
	// Before and After are the href values around the rewrite. An empty
	// Before with HadHref false means the attribute was absent.
	Before  string
	After   string
	HadHref bool
	// Category and Tags repeat the classification.
	Category Category
	Tags     []Tag
	// RelHardened reports whether rel was changed.
	RelHardened bool
	// Changed reports whether any attribute was modified.
	Changed bool
}

// Rewrite applies the transformation for c to n and reports whether any
// attribute changed. It does not bind handlers; see Watch for that.
func Rewrite(n *html.Node, c Classification) bool {
	if !IsAnchor(n) {
		return false
	}
	changed := false
	if c.HardenRel {
		changed = setAttrChanged(n, "rel", c.Rel) || changed
	}

	switch c.Category {
	case CategoryButtonLike:
		changed = setAttrChanged(n, "href", ButtonHref) || changed
		changed = setAttrChanged(n, "role", "button") || changed
		changed = setAttrChanged(n, "tabindex", "0") || changed
	case CategoryPlainInvalid:
		// An onclick anchor keeps a missing href so page scripts see
		// the element exactly as authored.
		if c.InvalidHref && (c.HasHref || !c.HasOnclick) {
			changed = setAttrChanged(n, "href", CurrentHref) || changed
		}
	}
	return changed
}

// Process classifies and rewrites every anchor under root, in document
// order. If p is nil, DefaultPolicy is used.
func Process(root *html.Node, p *Policy) []Result {
	if p == nil {
		p = DefaultPolicy()
	}
	var results []Result
	for _, a := range AnchorsIn(root) {
		r, _ := apply(a, p)
		results = append(results, r)
	}
	return results
}

// apply runs one classify-and-rewrite pass over n.
func apply(n *html.Node, p *Policy) (Result, Classification) {
	c := Classify(n, p)
	before, had := lookupAttr(n, "href")
	oldRel := GetAttr(n, "rel")

	changed := Rewrite(n, c)
	for _, t := range p.Transformers {
		t(n, c)
	}

	r := Result{
		Text:        strings.TrimSpace(TextContent(n)),
		Before:      before,
		After:       GetAttr(n, "href"),
		HadHref:     had,
		Category:    c.Category,
		Tags:        c.Tags,
		RelHardened: c.HardenRel && oldRel != c.Rel,
		Changed:     changed,
	}
	if changed {
		p.logger().Debug("anchor rewritten",
			"category", c.Category.String(),
			"before", before,
			"after", r.After,
			"tags", len(c.Tags),
			"rel_hardened", r.RelHardened,
		)
	}
	return r, c
}

// RewriteHTML parses htmlStr, rewrites every anchor according to p and
// returns the rendered document.
func RewriteHTML(htmlStr string, p *Policy) (string, error) {
	return RewriteReader(strings.NewReader(htmlStr), p)
}

// RewriteReader reads HTML from r, rewrites every anchor according to p
// and returns the rendered document.
func RewriteReader(r io.Reader, p *Policy) (string, error) {
	out, _, err := RewriteReaderResults(r, p)
	return out, err
}

// RewriteReaderResults is RewriteReader that also returns the per-anchor
// results, for reporting.
func RewriteReaderResults(r io.Reader, p *Policy) (string, []Result, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", nil, err
	}
	results := Process(doc, p)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", nil, err
	}
	return buf.String(), results, nil
}

// SetAttr sets (or adds) the attribute key=val on node n. It is
// intended for use inside Transformer functions.
func SetAttr(n *html.Node, key, val string) {
	setAttrChanged(n, key, val)
}

func setAttrChanged(n *html.Node, key, val string) bool {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			if a.Val == val {
				return false
			}
			n.Attr[i].Val = val
			return true
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
	return true
}

// GetAttr returns the value of the named attribute on n, or "" if not
// present.
func GetAttr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

// HasAttr reports whether n carries the named attribute, whatever its
// value.
func HasAttr(n *html.Node, key string) bool {
	_, ok := lookupAttr(n, key)
	return ok
}

// RemoveAttr removes the named attribute from n if present.
func RemoveAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace != "" || a.Key != key {
			attrs = append(attrs, a)
		}
	}
	n.Attr = attrs
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// TextContent returns the concatenated text below n.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
