package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSS(t *testing.T) {
	loc := CSS(`button[type='submit']`)

	assert.Equal(t, `button[type='submit']`, loc.Query)
	assert.False(t, loc.IsXPath)
	assert.Equal(t, `css(button[type='submit'])`, loc.String())
}

func TestXPath(t *testing.T) {
	loc := XPath(`//button[contains(., 'Submit')]`)

	assert.Equal(t, `//button[contains(., 'Submit')]`, loc.Query)
	assert.True(t, loc.IsXPath)
	assert.Equal(t, `xpath(//button[contains(., 'Submit')])`, loc.String())
}

func TestChainPreservesOrder(t *testing.T) {
	chain := Chain{
		CSS("#specific"),
		CSS(".styled"),
		XPath("//button"),
	}

	assert.Len(t, chain, 3)
	assert.Equal(t, "#specific", chain[0].Query)
	assert.True(t, chain[2].IsXPath)
}
