package anchorfix

import (
	"strings"

	"golang.org/x/net/html"
)

// Tag identifies a known button behavior. Tags are declared in dispatch
// priority order: when an anchor carries several, the lowest value wins.
type Tag int

const (
	TagDarkMode Tag = iota
	TagAsideSwitch
	TagConsoleSwitch
	TagBannerButton
	TagCommentBarrage
	TagToTop
	TagRandomPost
	TagSitePage

	numTags
)

var tagNames = [numTags]string{
	TagDarkMode:       "darkmode",
	TagAsideSwitch:    "asideSwitch",
	TagConsoleSwitch:  "consoleSwitch",
	TagBannerButton:   "bannerButton",
	TagCommentBarrage: "commentBarrage",
	TagToTop:          "totop",
	TagRandomPost:     "randomPost",
	TagSitePage:       "sitePage",
}

// String returns the tag's canonical name.
func (t Tag) String() string {
	if t < 0 || t >= numTags {
		return "unknown"
	}
	return tagNames[t]
}

// Tags returns every tag in priority order.
func Tags() []Tag {
	out := make([]Tag, 0, numTags)
	for t := Tag(0); t < numTags; t++ {
		out = append(out, t)
	}
	return out
}

// ParseTag returns the tag with the given canonical name. The match is
// case-insensitive.
func ParseTag(name string) (Tag, bool) {
	for t := Tag(0); t < numTags; t++ {
		if strings.EqualFold(tagNames[t], name) {
			return t, true
		}
	}
	return 0, false
}

// Category is the rewrite decision for one anchor.
type Category int

const (
	// CategoryOrdinary anchors keep their href; only rel hardening applies.
	CategoryOrdinary Category = iota
	// CategoryPlainInvalid anchors have no destination and no known
	// button class.
	CategoryPlainInvalid
	// CategoryButtonLike anchors carry a known button class.
	CategoryButtonLike
)

func (c Category) String() string {
	switch c {
	case CategoryPlainInvalid:
		return "plain-invalid"
	case CategoryButtonLike:
		return "button-like"
	default:
		return "ordinary"
	}
}

// Synthetic href values written by the rewriter.
const (
	ButtonHref  = "#"
	CurrentHref = "#current"
)

// invalidHrefs is the closed set of values meaning "no destination",
// compared after trimming and lowercasing.
var invalidHrefs = map[string]bool{
	"":                    true,
	"#":                   true,
	"javascript:void(0)":  true,
	"javascript:void(0);": true,
	"void(0)":             true,
}

// requiredRel lists the tokens every target="_blank" anchor must carry.
var requiredRel = []string{"noopener", "noreferrer"}

// Classification is the derived view of a single anchor. It is computed
// on every call and never cached.
type Classification struct {
	// Href is the raw href attribute value.
	Href string
	// HasHref reports whether the href attribute is present at all.
	HasHref bool
	// InvalidHref reports whether Href resolves to no destination.
	InvalidHref bool
	// HasOnclick reports whether an onclick attribute is present.
	HasOnclick bool
	// Tags are the button behaviors matched by the class list, in
	// priority order.
	Tags []Tag
	// Category is the rewrite decision.
	Category Category
	// HardenRel reports whether Rel must be written back.
	HardenRel bool
	// Rel is the hardened rel value. Only meaningful when HardenRel is set.
	Rel string
}

// Candidate reports whether the anchor needs any href rewrite.
func (c Classification) Candidate() bool {
	return c.InvalidHref || c.HasOnclick
}

// PrimaryTag returns the tag that wins click dispatch.
func (c Classification) PrimaryTag() (Tag, bool) {
	if len(c.Tags) == 0 {
		return 0, false
	}
	return c.Tags[0], true
}

// IsInvalidHref reports whether raw is an href with no real destination.
func IsInvalidHref(raw string) bool {
	return invalidHrefs[strings.ToLower(strings.TrimSpace(raw))]
}

// HardenedRel returns rel with noopener and noreferrer added. Existing
// tokens keep their order, duplicates are collapsed and missing required
// tokens are appended, so applying it twice yields the same value.
func HardenedRel(rel string) string {
	seen := make(map[string]bool)
	var tokens []string
	for _, tok := range strings.Fields(rel) {
		key := strings.ToLower(tok)
		if seen[key] {
			continue
		}
		seen[key] = true
		tokens = append(tokens, tok)
	}
	for _, tok := range requiredRel {
		if !seen[tok] {
			seen[tok] = true
			tokens = append(tokens, tok)
		}
	}
	return strings.Join(tokens, " ")
}

// IsAnchor reports whether n is an <a> element.
func IsAnchor(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && strings.EqualFold(n.Data, "a")
}

// Classify inspects n and decides how it must be rewritten. Non-anchor
// nodes classify as ordinary. If p is nil, DefaultPolicy is used.
func Classify(n *html.Node, p *Policy) Classification {
	if p == nil {
		p = DefaultPolicy()
	}
	var c Classification
	if !IsAnchor(n) {
		return c
	}

	if strings.EqualFold(strings.TrimSpace(GetAttr(n, "target")), "_blank") {
		c.HardenRel = true
		c.Rel = HardenedRel(GetAttr(n, "rel"))
	}

	c.Href, c.HasHref = lookupAttr(n, "href")
	c.InvalidHref = IsInvalidHref(c.Href)
	c.HasOnclick = HasAttr(n, "onclick")

	if !c.Candidate() {
		return c
	}

	c.Tags = p.matchTags(classList(n))
	if len(c.Tags) > 0 {
		c.Category = CategoryButtonLike
	} else {
		c.Category = CategoryPlainInvalid
	}
	return c
}

// classList splits the class attribute on whitespace.
func classList(n *html.Node) []string {
	return strings.Fields(GetAttr(n, "class"))
}
