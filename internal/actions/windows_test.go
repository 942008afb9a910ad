// internal/actions/windows_test.go
package actions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/webpilot/internal/browser"
)

func TestSwitchToWindowByIndexOutOfRange(t *testing.T) {
	h := newHarness(t, fastTimeouts)
	_, err := h.facade.OpenNewTab(h.ctx)
	require.NoError(t, err)
	require.NoError(t, h.facade.SwitchToWindowByIndex(h.ctx, 0))
	require.Len(t, h.browser.Handles(), 2)

	assert.NoError(t, h.facade.SwitchToWindowByIndex(h.ctx, 5))
	assert.Equal(t, "w0", h.browser.Current(), "the active window is unchanged")

	logged := h.logs.FilterMessage("Window index out of range; staying on the current window.").All()
	require.Len(t, logged, 1)
	assert.Equal(t, zapcore.ErrorLevel, logged[0].Level)
	assert.EqualValues(t, 5, logged[0].ContextMap()["index"])

	assert.NoError(t, h.facade.SwitchToWindowByIndex(h.ctx, -1))
}

func TestOpenNewWindowAndTab(t *testing.T) {
	h := newHarness(t, fastTimeouts)

	tab, err := h.facade.OpenNewTab(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, tab, h.browser.Current())

	win, err := h.facade.OpenNewWindow(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, win, h.browser.Current())
	assert.Len(t, h.browser.Handles(), 3)

	require.NoError(t, h.facade.SwitchToWindowByIndex(h.ctx, 1))
	assert.Equal(t, tab, h.browser.Current())
}

func TestSwitchToWindowByName(t *testing.T) {
	h := newHarness(t, fastTimeouts)
	handle, err := h.facade.OpenNewTab(h.ctx)
	require.NoError(t, err)

	require.NoError(t, h.facade.SwitchToWindowByName(h.ctx, "w0"))
	assert.Equal(t, "w0", h.browser.Current())
	require.NoError(t, h.facade.SwitchToWindowByName(h.ctx, handle))

	assert.ErrorIs(t, h.facade.SwitchToWindowByName(h.ctx, "popup"), browser.ErrNotFound)
}

func TestCloseCurrentAndReturn(t *testing.T) {
	h := newHarness(t, fastTimeouts)
	_, err := h.facade.OpenNewTab(h.ctx)
	require.NoError(t, err)

	require.NoError(t, h.facade.CloseCurrentAndReturn(h.ctx))
	assert.Equal(t, []string{"w0"}, h.browser.Handles())
	assert.Equal(t, "w0", h.browser.Current())

	err = h.facade.CloseCurrentAndReturn(h.ctx)
	assert.ErrorIs(t, err, browser.ErrNotFound, "closing the last window leaves nothing to return to")
}
