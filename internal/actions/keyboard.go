// internal/actions/keyboard.go
package actions

import (
	"context"
	"fmt"

	"github.com/xkilldash9x/webpilot/internal/browser"
)

// PressPageDown sends Page Down n times.
func (f *Facade) PressPageDown(ctx context.Context, n int) error {
	return f.press(ctx, "page_down", browser.KeyPageDown, n)
}

// PressPageUp sends Page Up n times.
func (f *Facade) PressPageUp(ctx context.Context, n int) error {
	return f.press(ctx, "page_up", browser.KeyPageUp, n)
}

// PressLeftArrow sends Left n times.
func (f *Facade) PressLeftArrow(ctx context.Context, n int) error {
	return f.press(ctx, "left_arrow", browser.KeyLeftArrow, n)
}

// PressRightArrow sends Right n times.
func (f *Facade) PressRightArrow(ctx context.Context, n int) error {
	return f.press(ctx, "right_arrow", browser.KeyRightArrow, n)
}

// PressEnter sends Enter once.
func (f *Facade) PressEnter(ctx context.Context) error {
	return f.press(ctx, "enter", browser.KeyEnter, 1)
}

// press dispatches key n times, one action chain per press, each awaited
// before the next.
func (f *Facade) press(ctx context.Context, name, key string, n int) error {
	d, err := f.driver(ctx)
	if err != nil {
		return err
	}
	verb := "press_" + name
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return f.record(verb, err)
		}
		if err := d.PerformKeys(key); err != nil {
			return f.record(verb, fmt.Errorf("pressing %s (%d of %d): %w", name, i+1, n, err))
		}
	}
	return f.record(verb, nil)
}
