package anchorfix

import (
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
)

var anchorsExpr = xpath.MustCompile("descendant-or-self::a")

// AnchorsIn returns n itself when it is an anchor, followed by every
// anchor below it, in document order. Non-element nodes other than the
// document node yield nothing.
func AnchorsIn(n *html.Node) []*html.Node {
	if n == nil || (n.Type != html.ElementNode && n.Type != html.DocumentNode) {
		return nil
	}
	return htmlquery.QuerySelectorAll(n, anchorsExpr)
}

// WatchState is the lifecycle state of a Watcher.
type WatchState int

const (
	StateUninitialized WatchState = iota
	StateWatching
)

func (s WatchState) String() string {
	if s == StateWatching {
		return "watching"
	}
	return "uninitialized"
}

// Watcher keeps a Document's anchors rewritten: once the document is
// ready it processes every anchor, then reprocesses anchors as subtrees
// are inserted.
type Watcher struct {
	doc    *Document
	policy *Policy
	binder *binder
	state  WatchState
}

// Watch attaches a Watcher to doc. Processing starts when doc becomes
// ready, or immediately if it already is. If p is nil, DefaultPolicy is
// used.
func Watch(doc *Document, p *Policy) *Watcher {
	if p == nil {
		p = DefaultPolicy()
	}
	w := &Watcher{
		doc:    doc,
		policy: p,
		binder: newBinder(doc, p),
	}
	doc.OnReady(w.start)
	return w
}

// State returns the current lifecycle state.
func (w *Watcher) State() WatchState { return w.state }

func (w *Watcher) start() {
	if w.state == StateWatching {
		return
	}
	results := w.ProcessAll()
	w.doc.Observe(w.handle)
	w.state = StateWatching
	w.policy.logger().Debug("watching document", "anchors", len(results))
}

// ProcessAll runs every anchor in the document through the pipeline once.
// Running it again on an unchanged document changes nothing.
func (w *Watcher) ProcessAll() []Result {
	var results []Result
	for _, a := range w.doc.Anchors() {
		results = append(results, w.Process(a))
	}
	return results
}

// Process classifies and rewrites n and binds its handlers when it is
// button-like.
func (w *Watcher) Process(n *html.Node) Result {
	r, c := apply(n, w.policy)
	if tag, ok := c.PrimaryTag(); ok && c.Category == CategoryButtonLike {
		if w.binder.bind(n, tag) {
			w.policy.logger().Debug("button bound", "tag", tag.String())
		}
	}
	return r
}

func (w *Watcher) handle(records []MutationRecord) {
	for _, rec := range records {
		for _, added := range rec.Added {
			for _, a := range AnchorsIn(added) {
				w.Process(a)
			}
		}
	}
}
