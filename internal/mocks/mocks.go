// File: internal/mocks/mocks.go
package mocks

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/tebeka/selenium"

	"github.com/xkilldash9x/webpilot/internal/browser"
)

// -- Launcher Mock --

// MockLauncher mocks browser.Launcher.
type MockLauncher struct {
	mock.Mock
}

var _ browser.Launcher = (*MockLauncher)(nil)

func (m *MockLauncher) Launch(ctx context.Context, caps selenium.Capabilities) (browser.Driver, error) {
	args := m.Called(ctx, caps)
	if d := args.Get(0); d != nil {
		return d.(browser.Driver), args.Error(1)
	}
	return nil, args.Error(1)
}

// -- Fake Launcher --

// FakeLauncher hands out a new FakeBrowser per launch and remembers them.
type FakeLauncher struct {
	// Setup, when set, configures each browser before it is returned.
	Setup func(*FakeBrowser)

	mu       sync.Mutex
	launched []*FakeBrowser
}

var _ browser.Launcher = (*FakeLauncher)(nil)

func (l *FakeLauncher) Launch(_ context.Context, caps selenium.Capabilities) (browser.Driver, error) {
	b := NewFakeBrowser()
	b.Caps = caps
	if l.Setup != nil {
		l.Setup(b)
	}
	l.mu.Lock()
	l.launched = append(l.launched, b)
	l.mu.Unlock()
	return b, nil
}

// Launched returns every browser handed out so far.
func (l *FakeLauncher) Launched() []*FakeBrowser {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*FakeBrowser(nil), l.launched...)
}

// Last returns the most recently launched browser, or nil.
func (l *FakeLauncher) Last() *FakeBrowser {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.launched) == 0 {
		return nil
	}
	return l.launched[len(l.launched)-1]
}
