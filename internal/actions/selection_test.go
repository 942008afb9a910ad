// internal/actions/selection_test.go
package actions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/webpilot/internal/actions"
	"github.com/xkilldash9x/webpilot/internal/browser"
	"github.com/xkilldash9x/webpilot/internal/mocks"
)

func TestSelectByValue(t *testing.T) {
	h := newHarness(t, fastTimeouts)
	sel := mocks.NewFakeSelect("us", "ca", "mx")
	h.browser.AddXPath("//select[@name='country']", sel)

	require.NoError(t, h.facade.SelectByValue(h.ctx, "//select[@name='country']", "ca"))
	assert.True(t, sel.Options[1].IsChosen())
	assert.False(t, sel.Options[0].IsChosen())

	// Re-selecting the chosen option does not click it again.
	require.NoError(t, h.facade.SelectByValue(h.ctx, "//select[@name='country']", "ca"))
	assert.Equal(t, 1, sel.Options[1].Clicks())
	assert.Empty(t, h.screenshots(t))
}

func TestSelectByIndex(t *testing.T) {
	h := newHarness(t, fastTimeouts)
	sel := mocks.NewFakeSelect("a", "b", "c")
	h.browser.AddXPath("//select", sel)

	require.NoError(t, h.facade.SelectByIndex(h.ctx, "//select", 2))
	assert.True(t, sel.Options[2].IsChosen())
}

func TestSelectionFailures(t *testing.T) {
	t.Run("NoSuchOption", func(t *testing.T) {
		h := newHarness(t, fastTimeouts)
		h.browser.AddXPath("//select", mocks.NewFakeSelect("a"))

		err := h.facade.SelectByValue(h.ctx, "//select", "zz")
		assert.ErrorIs(t, err, browser.ErrNotFound)
		assert.True(t, h.hasScreenshot(t, actions.LabelSelectionError))
		assert.Equal(t, 1, h.logs.FilterMessage("Selection failed.").Len())
	})

	t.Run("IndexOutOfRange", func(t *testing.T) {
		h := newHarness(t, fastTimeouts)
		h.browser.AddXPath("//select", mocks.NewFakeSelect("a"))
		assert.ErrorIs(t, h.facade.SelectByIndex(h.ctx, "//select", 3), browser.ErrNotFound)
		assert.True(t, h.hasScreenshot(t, actions.LabelSelectionError))
	})

	t.Run("NotASelect", func(t *testing.T) {
		h := newHarness(t, fastTimeouts)
		h.browser.AddXPath("//div", mocks.NewFakeElement("div", ""))
		assert.ErrorIs(t, h.facade.SelectByValue(h.ctx, "//div", "a"), browser.ErrInteractionFailed)
		assert.True(t, h.hasScreenshot(t, actions.LabelSelectionError))
	})

	t.Run("NeverClickable", func(t *testing.T) {
		h := newHarness(t, fastTimeouts)
		sel := mocks.NewFakeSelect("a")
		sel.Disabled = true
		h.browser.AddXPath("//select", sel)
		assert.ErrorIs(t, h.facade.SelectByValue(h.ctx, "//select", "a"), browser.ErrWaitTimeout)
		assert.True(t, h.hasScreenshot(t, actions.LabelSelectionError))
	})
}

func TestSelectValue(t *testing.T) {
	h := newHarness(t, fastTimeouts)
	item := mocks.NewFakeElement("li", "Canada")
	h.browser.AddXPath("//li[@aria-label='Canada']", item)

	require.NoError(t, h.facade.SelectValue(h.ctx, "Canada"))
	assert.Equal(t, 1, item.ScriptClicks())

	assert.ErrorIs(t, h.facade.SelectValue(h.ctx, "Peru"), browser.ErrWaitTimeout)
}
