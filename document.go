package anchorfix

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultLocation is the URL a Document starts at.
const DefaultLocation = "http://localhost/"

// EventType names a DOM event.
type EventType string

const (
	EventClick   EventType = "click"
	EventKeyDown EventType = "keydown"
)

// KeyEnter is the activation key reported by keydown events.
const KeyEnter = "Enter"

// Event is a DOM event travelling from Target up through its ancestors.
type Event struct {
	Type EventType
	// Target is the node the event was dispatched on.
	Target *html.Node
	// CurrentTarget is the node whose listener is running.
	CurrentTarget *html.Node
	// Key is set for keydown events.
	Key string

	defaultPrevented bool
	stopped          bool
}

// PreventDefault cancels the event's default action.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation keeps the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// Listener handles an event. Errors are collected by the dispatcher and
// do not stop other listeners.
type Listener func(e *Event) error

// MutationRecord describes nodes inserted under Target.
type MutationRecord struct {
	Target *html.Node
	Added  []*html.Node
}

// ReadyState is the document's loading state.
type ReadyState string

const (
	ReadyLoading  ReadyState = "loading"
	ReadyComplete ReadyState = "complete"
)

// Document is a live HTML document: a parsed node tree plus the parts of a
// browser window the rewriter touches (event listeners, location, scroll
// position, readiness and insertion notifications).
//
// A Document models a single UI event loop and is not safe for concurrent
// use.
type Document struct {
	root     *html.Node
	location *url.URL
	scrollY  int
	noSmooth bool

	readyState ReadyState
	readyFns   []func()

	listeners map[*html.Node]map[EventType][]Listener
	observers []func([]MutationRecord)

	caps Capabilities
}

// NewDocument wraps an already parsed tree. The document starts in the
// loading state at DefaultLocation.
func NewDocument(root *html.Node) *Document {
	loc, _ := url.Parse(DefaultLocation)
	return &Document{
		root:       root,
		location:   loc,
		readyState: ReadyLoading,
		listeners:  make(map[*html.Node]map[EventType][]Listener),
		caps:       NoCapabilities,
	}
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return NewDocument(root), nil
}

// ParseString parses s as an HTML document.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// Body returns the <body> element, or nil.
func (d *Document) Body() *html.Node {
	var find func(*html.Node) *html.Node
	find = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if r := find(c); r != nil {
				return r
			}
		}
		return nil
	}
	return find(d.root)
}

// Anchors returns every anchor in document order.
func (d *Document) Anchors() []*html.Node { return AnchorsIn(d.root) }

// Render writes the current tree as HTML.
func (d *Document) Render(w io.Writer) error { return html.Render(w, d.root) }

// Capabilities returns the page's optional global functions.
func (d *Document) Capabilities() Capabilities { return d.caps }

// SetCapabilities replaces the page's optional global functions. A nil
// value means none.
func (d *Document) SetCapabilities(c Capabilities) {
	if c == nil {
		c = NoCapabilities
	}
	d.caps = c
}

// Location returns the current URL.
func (d *Document) Location() string { return d.location.String() }

// SetLocation sets the current URL without any scroll side effects.
func (d *Document) SetLocation(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("set location %q: %w", raw, err)
	}
	d.location = u
	return nil
}

// Navigate resolves ref against the current location and moves there.
// Fragment-only references to "#" or "#top" scroll to the top; any other
// document change resets the scroll position.
func (d *Document) Navigate(ref string) error {
	u, err := d.location.Parse(ref)
	if err != nil {
		return fmt.Errorf("navigate %q: %w", ref, err)
	}
	if frag, ok := strings.CutPrefix(ref, "#"); ok {
		if frag == "" {
			// A bare "#" drops the current fragment.
			u.Fragment = ""
			u.RawFragment = ""
		}
		if frag == "" || strings.EqualFold(frag, "top") {
			d.scrollY = 0
		}
	} else {
		d.scrollY = 0
	}
	d.location = u
	return nil
}

// ScrollY returns the vertical scroll offset.
func (d *Document) ScrollY() int { return d.scrollY }

// SetSmoothScroll enables or disables smooth scrolling support.
func (d *Document) SetSmoothScroll(supported bool) { d.noSmooth = !supported }

// ScrollTo moves the viewport to y. A smooth request fails with
// ErrSmoothScrollUnsupported when the host lacks smooth scrolling.
func (d *Document) ScrollTo(y int, smooth bool) error {
	if smooth && d.noSmooth {
		return ErrSmoothScrollUnsupported
	}
	if y < 0 {
		y = 0
	}
	d.scrollY = y
	return nil
}

// ReadyState returns the loading state.
func (d *Document) ReadyState() ReadyState { return d.readyState }

// OnReady runs fn once the document is complete, immediately if it
// already is.
func (d *Document) OnReady(fn func()) {
	if d.readyState == ReadyComplete {
		fn()
		return
	}
	d.readyFns = append(d.readyFns, fn)
}

// MarkReady moves the document to the complete state and runs the
// pending OnReady callbacks in registration order.
func (d *Document) MarkReady() {
	if d.readyState == ReadyComplete {
		return
	}
	d.readyState = ReadyComplete
	fns := d.readyFns
	d.readyFns = nil
	for _, fn := range fns {
		fn()
	}
}

// AddEventListener registers fn for events of type typ reaching n.
func (d *Document) AddEventListener(n *html.Node, typ EventType, fn Listener) {
	byType, ok := d.listeners[n]
	if !ok {
		byType = make(map[EventType][]Listener)
		d.listeners[n] = byType
	}
	byType[typ] = append(byType[typ], fn)
}

// ListenerCount returns how many listeners of type typ are registered
// directly on n.
func (d *Document) ListenerCount(n *html.Node, typ EventType) int {
	return len(d.listeners[n][typ])
}

// Dispatch delivers e to its target and then each ancestor. Listener
// errors are joined and returned.
func (d *Document) Dispatch(e *Event) error {
	var errs []error
	for n := e.Target; n != nil && !e.stopped; n = n.Parent {
		fns := d.listeners[n][e.Type]
		if len(fns) == 0 {
			continue
		}
		e.CurrentTarget = n
		for _, fn := range append([]Listener(nil), fns...) {
			if err := fn(e); err != nil {
				errs = append(errs, err)
			}
		}
	}
	e.CurrentTarget = nil
	return errors.Join(errs...)
}

// Click dispatches a click on n and, unless a listener prevented it,
// follows the href of the nearest enclosing anchor. javascript: hrefs are
// not followed.
func (d *Document) Click(n *html.Node) error {
	e := &Event{Type: EventClick, Target: n}
	err := d.Dispatch(e)
	if e.defaultPrevented {
		return err
	}
	for a := n; a != nil; a = a.Parent {
		if !IsAnchor(a) {
			continue
		}
		if href, ok := lookupAttr(a, "href"); ok && !isScriptHref(href) {
			if navErr := d.Navigate(strings.TrimSpace(href)); navErr != nil {
				err = errors.Join(err, navErr)
			}
		}
		break
	}
	return err
}

// isScriptHref reports whether href runs script instead of naming a
// destination. Such links never change the location.
func isScriptHref(href string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(href)), "javascript:")
}

// KeyDown dispatches a keydown event for key on n.
func (d *Document) KeyDown(n *html.Node, key string) error {
	return d.Dispatch(&Event{Type: EventKeyDown, Target: n, Key: key})
}

// Observe registers fn to receive insertion records. There is no way to
// unregister; observers live as long as the document.
func (d *Document) Observe(fn func([]MutationRecord)) {
	d.observers = append(d.observers, fn)
}

func (d *Document) notify(records []MutationRecord) {
	for _, fn := range d.observers {
		fn(records)
	}
}

// AppendChild inserts child as the last child of parent and notifies
// observers. A child that already has a parent is moved.
func (d *Document) AppendChild(parent, child *html.Node) error {
	return d.InsertBefore(parent, child, nil)
}

// InsertBefore inserts child before ref under parent (at the end when ref
// is nil) and notifies observers.
func (d *Document) InsertBefore(parent, child, ref *html.Node) error {
	if !canHaveChildren(parent) {
		return ErrNotElement
	}
	detach(child)
	parent.InsertBefore(child, ref)
	d.notify([]MutationRecord{{Target: parent, Added: []*html.Node{child}}})
	return nil
}

// AppendHTML parses fragment as body content, appends the resulting nodes
// to parent and notifies observers with a single record.
func (d *Document) AppendHTML(parent *html.Node, fragment string) error {
	if !canHaveChildren(parent) {
		return ErrNotElement
	}
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return fmt.Errorf("parse fragment: %w", err)
	}
	if len(nodes) == 0 {
		return nil
	}
	for _, n := range nodes {
		detach(n)
		parent.AppendChild(n)
	}
	d.notify([]MutationRecord{{Target: parent, Added: nodes}})
	return nil
}

func canHaveChildren(n *html.Node) bool {
	return n != nil && (n.Type == html.ElementNode || n.Type == html.DocumentNode)
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}
