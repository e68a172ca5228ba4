package browser

import (
	"fmt"

	"github.com/chromedp/chromedp"
)

// Locator is an abstract reference to a UI element: a query string plus the
// strategy used to evaluate it.
type Locator struct {
	Query   string
	IsXPath bool
}

// CSS builds a locator evaluated as a CSS selector.
func CSS(query string) Locator {
	return Locator{Query: query}
}

// XPath builds a locator evaluated as an XPath expression.
func XPath(query string) Locator {
	return Locator{Query: query, IsXPath: true}
}

func (l Locator) String() string {
	if l.IsXPath {
		return fmt.Sprintf("xpath(%s)", l.Query)
	}
	return fmt.Sprintf("css(%s)", l.Query)
}

// by maps the locator strategy onto the chromedp query option.
func (l Locator) by() chromedp.QueryOption {
	if l.IsXPath {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

// Chain is an ordered list of candidate locators for one logical target.
// Order encodes priority: the most specific selector first, the generic
// fallback last. The live target's markup is unstable across deployments, so
// every interactive step resolves its control through a chain.
type Chain []Locator
