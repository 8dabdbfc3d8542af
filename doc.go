// Package anchorfix rewrites anchor elements in rendered HTML so that
// anchors used as UI buttons are crawlable and keyboard accessible, and
// anchors with no destination get a harmless one.
//
// # Overview
//
// Every <a> element is classified into one of three categories:
//   - button-like: the href is missing or meaningless ("", "#",
//     "javascript:void(0)", …) or the anchor has an onclick attribute,
//     and its class list contains a known button class. It is rewritten
//     to href="#" role="button" tabindex="0".
//   - plain-invalid: same trigger but no button class. A meaningless
//     href becomes "#current"; an onclick anchor is otherwise left alone.
//   - ordinary: left untouched.
//
// Independently of the category, any anchor with target="_blank" gets
// rel tokens noopener and noreferrer added to what it already has.
//
// # Policies
//
// A [Policy] controls which class names select each [Tag], which
// [Strategy] runs when a button is activated, and where the random-post
// button falls back to. [DefaultPolicy] covers the common blog theme
// buttons.
//
// # Static and live use
//
// [RewriteHTML] and [RewriteReader] rewrite a document once and render it.
//
// [Watch] attaches to a live [Document]: once the document is ready every
// anchor is processed, button-like anchors get click and keydown
// handlers, and anchors inserted later are processed as they arrive.
// Button handlers call optional page functions through [Capabilities];
// a missing or failing function is never an error.
// [ScriptCapabilities] resolves them from a JavaScript runtime.
//
// # Thread Safety
//
// RewriteHTML, RewriteReader and Classify are safe for concurrent use.
// A Document and its Watcher model a single event loop and are not.
// Policy structs should not be mutated after first use.
//
// # Example
//
//	p := anchorfix.DefaultPolicy()
//	out, err := anchorfix.RewriteHTML(page, p)
package anchorfix
