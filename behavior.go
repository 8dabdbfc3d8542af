package anchorfix

import "golang.org/x/net/html"

// Action is the context handed to a strategy fallback.
type Action struct {
	Doc    *Document
	Target *html.Node
	Tag    Tag
	Policy *Policy
}

// Strategy is the behavior attached to one tag: an ordered list of
// capability probes and an optional fallback.
//
// The first probe that resolves is called and nothing else is tried,
// even when that call fails. Fallback runs when no probe resolves or the
// resolved call failed.
type Strategy struct {
	Probes   []string
	Fallback func(a *Action) error
}

// Strategies maps tags to their behaviors.
type Strategies map[Tag]Strategy

// Capability names probed by the built-in strategies.
const (
	CapShowConsole          = "sco.showConsole"
	CapHideConsole          = "sco.hideConsole"
	CapToRandomPost         = "toRandomPost"
	CapSwitchCommentBarrage = "sco.switchCommentBarrage"
)

// DarkModeProbes are the dark-mode toggles tried, oldest theme API last.
var DarkModeProbes = []string{
	"sco.switchDarkMode",
	"anzhiyu.switchDarkMode",
	"switchNightMode",
	"switchDarkMode",
}

// DefaultStrategies returns the built-in behavior table.
func DefaultStrategies() Strategies {
	return Strategies{
		TagDarkMode:      {Probes: DarkModeProbes},
		TagAsideSwitch:   {Probes: []string{CapShowConsole}},
		TagConsoleSwitch: {Probes: []string{CapShowConsole, CapHideConsole}},
		// Banner buttons are driven by handlers the page binds itself.
		TagBannerButton:   {},
		TagCommentBarrage: {Probes: []string{CapSwitchCommentBarrage, "switchCommentBarrage"}},
		TagToTop:          {Fallback: scrollToTop},
		TagRandomPost:     {Probes: []string{CapToRandomPost}, Fallback: navigateRandomPost},
		TagSitePage:       {},
	}
}

// Run executes s. Capability failures are swallowed; only fallback
// errors are returned.
func (s Strategy) Run(a *Action, caps Capabilities) error {
	if err := s.probe(caps); err == nil {
		return nil
	}
	if s.Fallback == nil {
		return nil
	}
	return s.Fallback(a)
}

func (s Strategy) probe(caps Capabilities) error {
	if caps == nil {
		return ErrCapabilityUnavailable
	}
	for _, name := range s.Probes {
		c, ok := caps.Lookup(name)
		if !ok {
			continue
		}
		return Call(c)
	}
	return ErrCapabilityUnavailable
}

func scrollToTop(a *Action) error {
	if err := a.Doc.ScrollTo(0, true); err != nil {
		return a.Doc.ScrollTo(0, false)
	}
	return nil
}

func navigateRandomPost(a *Action) error {
	return a.Doc.Navigate(a.Policy.randomPostFallback())
}

// binder attaches click and keydown handlers to button-like anchors.
type binder struct {
	doc    *Document
	policy *Policy
	bound  map[*html.Node]Tag
}

func newBinder(doc *Document, p *Policy) *binder {
	return &binder{doc: doc, policy: p, bound: make(map[*html.Node]Tag)}
}

// bind attaches the handlers once per node. The tag is fixed at the
// first bind.
func (b *binder) bind(n *html.Node, tag Tag) bool {
	if _, ok := b.bound[n]; ok {
		return false
	}
	b.bound[n] = tag
	b.doc.AddEventListener(n, EventClick, b.onClick)
	b.doc.AddEventListener(n, EventKeyDown, b.onKeyDown)
	return true
}

func (b *binder) onClick(e *Event) error {
	n := e.CurrentTarget
	if GetAttr(n, "href") == ButtonHref {
		e.PreventDefault()
	}

	tag, ok := b.bound[n]
	if !ok {
		return nil
	}
	s, ok := b.policy.Strategies[tag]
	if !ok {
		return nil
	}
	a := &Action{Doc: b.doc, Target: n, Tag: tag, Policy: b.policy}
	return s.Run(a, b.doc.Capabilities())
}

func (b *binder) onKeyDown(e *Event) error {
	n := e.CurrentTarget
	if e.Key != KeyEnter || GetAttr(n, "href") != ButtonHref {
		return nil
	}
	return b.doc.Click(n)
}
