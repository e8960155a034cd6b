package catchup

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// TextLength returns the number of characters a reader sees once the HTML body
// of a post is rendered. Mastodon wraps the hidden parts of long links in
// <span class="invisible">; those are not counted.
func TextLength(content string) int {
	if content == "" {
		return 0
	}

	z := html.NewTokenizer(strings.NewReader(content))
	n := 0
	// Depth inside span.invisible; nested spans inside it bump it further.
	hidden := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return n
		case html.TextToken:
			if hidden == 0 {
				n += utf8.RuneCount(z.Text())
			}
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "span" {
				continue
			}
			if hidden > 0 {
				hidden++
				continue
			}
			if hasAttr && hasClass(z, "invisible") {
				hidden = 1
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if hidden > 0 && string(name) == "span" {
				hidden--
			}
		}
	}
}

func hasClass(z *html.Tokenizer, class string) bool {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "class" {
			for _, c := range strings.Fields(string(val)) {
				if c == class {
					return true
				}
			}
		}
		if !more {
			return false
		}
	}
}
