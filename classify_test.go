package anchorfix_test

import (
	"strings"
	"testing"

	"github.com/njchilds90/anchorfix"
	"golang.org/x/net/html"
)

// firstAnchor parses s and returns its first anchor.
func firstAnchor(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatal(err)
	}
	anchors := anchorfix.AnchorsIn(doc)
	if len(anchors) == 0 {
		t.Fatalf("no anchor in %q", s)
	}
	return anchors[0]
}

func TestIsInvalidHref(t *testing.T) {
	t.Parallel()

	tests := []struct {
		href string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"#", true},
		{" # ", true},
		{"javascript:void(0)", true},
		{"javascript:void(0);", true},
		{"JAVASCRIPT:VOID(0)", true},
		{"void(0)", true},
		{"#current", false},
		{"#top", false},
		{"/archives/", false},
		{"javascript:alert(1)", false},
		{"https://example.com", false},
	}
	for _, tt := range tests {
		if got := anchorfix.IsInvalidHref(tt.href); got != tt.want {
			t.Errorf("IsInvalidHref(%q) = %v, want %v", tt.href, got, tt.want)
		}
	}
}

func TestHardenedRel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rel  string
		want string
	}{
		{"", "noopener noreferrer"},
		{"noopener", "noopener noreferrer"},
		{"noreferrer", "noreferrer noopener"},
		{"noopener noopener", "noopener noreferrer"},
		{"  nofollow\tnoopener ", "nofollow noopener noreferrer"},
		{"noreferrer noopener", "noreferrer noopener"},
	}
	for _, tt := range tests {
		got := anchorfix.HardenedRel(tt.rel)
		if got != tt.want {
			t.Errorf("HardenedRel(%q) = %q, want %q", tt.rel, got, tt.want)
		}
		if again := anchorfix.HardenedRel(got); again != got {
			t.Errorf("HardenedRel not idempotent: %q -> %q", got, again)
		}
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		category anchorfix.Category
		tags     []anchorfix.Tag
	}{
		{"ordinary", `<a href="/posts/1">Post</a>`, anchorfix.CategoryOrdinary, nil},
		{"plain invalid", `<a href="#">x</a>`, anchorfix.CategoryPlainInvalid, nil},
		{"onclick only", `<a href="/x" onclick="">x</a>`, anchorfix.CategoryPlainInvalid, nil},
		{"button class without rewrite trigger", `<a class="totopbtn" href="/top">x</a>`, anchorfix.CategoryOrdinary, nil},
		{"darkmode", `<a class="darkmode_switchbutton">x</a>`, anchorfix.CategoryButtonLike, []anchorfix.Tag{anchorfix.TagDarkMode}},
		{"random post spelling", `<a class="random-post" href="">x</a>`, anchorfix.CategoryButtonLike, []anchorfix.Tag{anchorfix.TagRandomPost}},
		{
			"priority order",
			`<a class="site-page totopbtn darkmode_switchbutton" href="#">x</a>`,
			anchorfix.CategoryButtonLike,
			[]anchorfix.Tag{anchorfix.TagDarkMode, anchorfix.TagToTop, anchorfix.TagSitePage},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := anchorfix.Classify(firstAnchor(t, tt.input), nil)
			if c.Category != tt.category {
				t.Errorf("category = %s, want %s", c.Category, tt.category)
			}
			if len(c.Tags) != len(tt.tags) {
				t.Fatalf("tags = %v, want %v", c.Tags, tt.tags)
			}
			for i := range tt.tags {
				if c.Tags[i] != tt.tags[i] {
					t.Errorf("tags[%d] = %s, want %s", i, c.Tags[i], tt.tags[i])
				}
			}
		})
	}
}

func TestClassify_HrefPresence(t *testing.T) {
	t.Parallel()

	c := anchorfix.Classify(firstAnchor(t, `<a onclick="f()">x</a>`), nil)
	if c.HasHref || !c.InvalidHref || !c.HasOnclick {
		t.Errorf("unexpected classification %+v", c)
	}
	c = anchorfix.Classify(firstAnchor(t, `<a href="">x</a>`), nil)
	if !c.HasHref || !c.InvalidHref || c.HasOnclick {
		t.Errorf("unexpected classification %+v", c)
	}
}

func TestClassify_RelHardeningIndependentOfCategory(t *testing.T) {
	t.Parallel()

	c := anchorfix.Classify(firstAnchor(t, `<a href="https://x.com" target=" _Blank ">x</a>`), nil)
	if c.Category != anchorfix.CategoryOrdinary {
		t.Errorf("category = %s, want ordinary", c.Category)
	}
	if !c.HardenRel || c.Rel != "noopener noreferrer" {
		t.Errorf("expected rel hardening, got %+v", c)
	}
}

func TestClassify_NonAnchor(t *testing.T) {
	t.Parallel()

	n := &html.Node{Type: html.ElementNode, Data: "div"}
	c := anchorfix.Classify(n, nil)
	if c.Category != anchorfix.CategoryOrdinary || c.Candidate() || c.HardenRel {
		t.Errorf("non-anchor should be ordinary: %+v", c)
	}
}

func TestParseTag(t *testing.T) {
	t.Parallel()

	for _, tag := range anchorfix.Tags() {
		got, ok := anchorfix.ParseTag(tag.String())
		if !ok || got != tag {
			t.Errorf("ParseTag(%q) = %v, %v", tag.String(), got, ok)
		}
	}
	if _, ok := anchorfix.ParseTag("ToTop"); !ok {
		t.Error("ParseTag should be case-insensitive")
	}
	if _, ok := anchorfix.ParseTag("nope"); ok {
		t.Error("ParseTag should reject unknown names")
	}
}
