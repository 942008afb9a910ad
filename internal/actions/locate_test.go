// internal/actions/locate_test.go
package actions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/webpilot/internal/actions"
	"github.com/xkilldash9x/webpilot/internal/browser"
	"github.com/xkilldash9x/webpilot/internal/mocks"
)

func TestReplaceXPath(t *testing.T) {
	assert.Equal(t, "//a[@id='x'][1]", actions.ReplaceXPath("//a[@id='%s'][%s]", "x", "1"))
	assert.Equal(t, "//li", actions.ReplaceXPath("//li"))
}

func TestFindByXPath(t *testing.T) {
	h := newHarness(t, fastTimeouts)
	el := mocks.NewFakeElement("a", "Home")
	h.browser.AddXPath("//a", el)

	got, err := h.facade.FindByXPath(h.ctx, "//a")
	require.NoError(t, err)
	assert.Same(t, el, got)

	_, err = h.facade.FindByXPath(h.ctx, "//missing")
	assert.ErrorIs(t, err, browser.ErrNotFound)
}

func TestFindAllByXPathIsASnapshot(t *testing.T) {
	h := newHarness(t, fastTimeouts)
	h.browser.AddXPath("//li", mocks.NewFakeElement("li", "1"), mocks.NewFakeElement("li", "2"))

	els, err := h.facade.FindAllByXPath(h.ctx, "//li")
	require.NoError(t, err)
	require.Len(t, els, 2)
	first, _ := els[0].Text()
	assert.Equal(t, "1", first, "document order is preserved")

	h.browser.AddXPath("//li", mocks.NewFakeElement("li", "3"))
	assert.Len(t, els, 2)

	n, err := h.facade.CountByXPath(h.ctx, "//li")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = h.facade.CountByXPath(h.ctx, "//none")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFindByCSSIDTag(t *testing.T) {
	h := newHarness(t, fastTimeouts)
	btn := mocks.NewFakeElement("button", "Save")
	h.browser.AddElement(selenium.ByCSSSelector, "button.save", btn)
	h.browser.AddElement(selenium.ByID, "save", btn)
	h.browser.AddElement(selenium.ByTagName, "button", btn)

	assert.Same(t, btn, h.facade.FindByCSS(h.ctx, "button.save"))
	assert.Same(t, btn, h.facade.FindByID(h.ctx, "save"))
	assert.Same(t, btn, h.facade.FindByTag(h.ctx, "button"))
	assert.Empty(t, h.screenshots(t))
}

func TestFindByCSSFailureIsSwallowedWithScreenshot(t *testing.T) {
	h := newHarness(t, fastTimeouts)

	assert.Nil(t, h.facade.FindByCSS(h.ctx, "div.absent"))
	assert.True(t, h.hasScreenshot(t, actions.LabelFindError))

	failures := h.logs.FilterMessage("Element lookup failed.").All()
	require.Len(t, failures, 1)
	assert.Equal(t, zapcore.ErrorLevel, failures[0].Level)
	assert.Equal(t, "css=div.absent", failures[0].ContextMap()["locator"])

	assert.Nil(t, h.facade.FindByID(h.ctx, "absent"))
	assert.Nil(t, h.facade.FindByTag(h.ctx, "blink"))
}

func TestFindShadowElement(t *testing.T) {
	h := newHarness(t, fastTimeouts)
	inner := mocks.NewFakeElement("button", "Inside")
	h.browser.AddShadow("my-app", "button.primary", inner)

	got, err := h.facade.FindShadowElement(h.ctx, "my-app", "button.primary")
	require.NoError(t, err)
	assert.Same(t, inner, got)
	assert.Equal(t, 1, h.scriptsContaining("shadowRoot.querySelector"))

	got, err = h.facade.FindShadowElement(h.ctx, "my-app", "button.other")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = h.facade.Find(h.ctx, browser.Shadow("my-app", "button.other"))
	assert.ErrorIs(t, err, browser.ErrNotFound)
}
