// internal/actions/interact_test.go
package actions_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/webpilot/internal/actions"
	"github.com/xkilldash9x/webpilot/internal/browser"
	"github.com/xkilldash9x/webpilot/internal/mocks"
)

func TestClickUsesScriptedClick(t *testing.T) {
	h := newHarness(t, fastTimeouts)
	el := mocks.NewFakeElement("button", "Go")
	el.Disabled = true // a scripted click does not care
	h.browser.AddXPath("//button", el)

	require.NoError(t, h.facade.Click(h.ctx, actions.XPath("//button")))
	assert.Equal(t, 1, el.ScriptClicks())
	assert.Zero(t, el.Clicks())
	assert.Equal(t, 1, h.scriptsContaining("arguments[0].click();"))
}

func TestClickXPathFailureIsSwallowed(t *testing.T) {
	h := newHarness(t, fastTimeouts)

	err := h.facade.Click(h.ctx, actions.XPath("//button[@id='missing']"))
	assert.NoError(t, err)
	assert.True(t, h.hasScreenshot(t, actions.LabelClickError))
	assert.Equal(t, 1, h.logs.FilterMessage("Click failed.").Len())
}

func TestClickElementFailureIsReturned(t *testing.T) {
	h := newHarness(t, fastTimeouts)
	el := mocks.NewFakeElement("button", "Go")
	el.ClickErr = fmt.Errorf("%w: javascript error", browser.ErrScriptFailed)

	err := h.facade.Click(h.ctx, actions.Elem(el))
	assert.ErrorIs(t, err, browser.ErrScriptFailed)
	assert.False(t, h.hasScreenshot(t, actions.LabelClickError))
}

func TestScrollAndClick(t *testing.T) {
	h := newHarness(t, fastTimeouts)
	el := mocks.NewFakeElement("a", "More")
	el.AppearAt = time.Now().Add(50 * time.Millisecond)
	h.browser.AddXPath("//a", el)

	require.NoError(t, h.facade.ScrollAndClick(h.ctx, actions.XPath("//a")))
	assert.Equal(t, 1, el.Scrolled())
	assert.Equal(t, 1, el.ScriptClicks())
	assert.Equal(t, 1, h.scriptsContaining("scrollIntoView({block: 'center'})"))

	err := h.facade.ScrollAndClick(h.ctx, actions.XPath("//nothing"))
	assert.ErrorIs(t, err, browser.ErrWaitTimeout)
}

func TestSendText(t *testing.T) {
	h := newHarness(t, fastTimeouts)
	input := mocks.NewFakeElement("input", "")
	h.browser.AddXPath("//input", input)

	require.NoError(t, h.facade.SendText(h.ctx, actions.XPath("//input"), "first"))
	require.NoError(t, h.facade.SendText(h.ctx, actions.Elem(input), "second"))

	assert.Equal(t, "second", input.Value(), "the field is cleared before typing")
	assert.True(t, input.Highlighted())
	assert.Equal(t, 2, h.scriptsContaining("3px solid yellow"))
}

func TestSendTextDisabledField(t *testing.T) {
	h := newHarness(t, fastTimeouts)
	input := mocks.NewFakeElement("input", "")
	input.Disabled = true

	err := h.facade.SendText(h.ctx, actions.Elem(input), "x")
	assert.ErrorIs(t, err, browser.ErrInteractionFailed)
}

func TestScrollAndSendText(t *testing.T) {
	h := newHarness(t, fastTimeouts)
	input := mocks.NewFakeElement("textarea", "")
	h.browser.AddXPath("//textarea", input)

	require.NoError(t, h.facade.ScrollAndSendText(h.ctx, actions.XPath("//textarea"), "note"))
	assert.Equal(t, "note", input.Value())
	assert.Equal(t, 1, input.Scrolled())
	assert.Equal(t, 1, h.scriptsContaining("scrollIntoView(true)"))
}

func TestHighlightAndScrollIntoView(t *testing.T) {
	h := newHarness(t, fastTimeouts)
	el := mocks.NewFakeElement("section", "")
	h.browser.AddXPath("//section", el)

	require.NoError(t, h.facade.Highlight(h.ctx, actions.XPath("//section")))
	assert.True(t, el.Highlighted())

	require.NoError(t, h.facade.ScrollIntoView(h.ctx, actions.Elem(el)))
	assert.Equal(t, 1, h.scriptsContaining("behavior: 'smooth'"))

	assert.ErrorIs(t, h.facade.Highlight(h.ctx, actions.XPath("//none")), browser.ErrNotFound)
}

func TestScrollByAmount(t *testing.T) {
	h := newHarness(t, fastTimeouts)
	require.NoError(t, h.facade.ScrollByAmount(h.ctx, 0, 400))
	assert.Equal(t, [][2]int{{0, 400}}, h.browser.Scrolls())
}

func TestGetTextAndAttribute(t *testing.T) {
	h := newHarness(t, fastTimeouts)
	el := mocks.NewFakeElement("span", "42 items")
	el.Attrs["data-count"] = "42"
	h.browser.AddXPath("//span", el)

	text, err := h.facade.GetText(h.ctx, actions.XPath("//span"))
	require.NoError(t, err)
	assert.Equal(t, "42 items", text)

	v, err := h.facade.GetAttribute(h.ctx, actions.XPath("//span"), "data-count")
	require.NoError(t, err)
	assert.Equal(t, "42", v)

	el.Hidden = true
	start := time.Now()
	v, err = h.facade.GetAttribute(h.ctx, actions.Elem(el), "data-count")
	require.NoError(t, err)
	assert.Equal(t, "42", v)
	assert.Less(t, time.Since(start), fastTimeouts.Explicit, "attribute reads do not wait")
}

func TestIsEnabledIsDisabled(t *testing.T) {
	h := newHarness(t, fastTimeouts)
	el := mocks.NewFakeElement("button", "")
	h.browser.AddXPath("//button", el)

	enabled, err := h.facade.IsEnabled(h.ctx, actions.XPath("//button"))
	require.NoError(t, err)
	assert.True(t, enabled)

	el.Disabled = true
	disabled, err := h.facade.IsDisabled(h.ctx, actions.Elem(el))
	require.NoError(t, err)
	assert.True(t, disabled)

	assert.Equal(t, 2, h.logs.FilterMessage("Element enabled probe.").Len())
	assert.Equal(t, 1, h.logs.FilterMessage("Element disabled probe.").Len())

	_, err = h.facade.IsEnabled(h.ctx, actions.XPath("//none"))
	assert.True(t, errors.Is(err, browser.ErrNotFound))
}
