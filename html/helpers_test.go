package html_test

import (
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/stretchr/testify/require"
	nethtml "golang.org/x/net/html"
)

// parse parses rendered output the way a browser would.
func parse(t *testing.T, s string) *nethtml.Node {
	t.Helper()
	doc, err := nethtml.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func query(t *testing.T, doc *nethtml.Node, selector string) []*nethtml.Node {
	t.Helper()
	return cascadia.MustCompile(selector).MatchAll(doc)
}

func textOf(n *nethtml.Node) string {
	var b strings.Builder
	var walk func(*nethtml.Node)
	walk = func(n *nethtml.Node) {
		if n.Type == nethtml.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *nethtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
