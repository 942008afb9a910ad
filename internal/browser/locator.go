// internal/browser/locator.go
package browser

import (
	"fmt"

	"github.com/tebeka/selenium"
)

// Strategy is the lookup mechanism of a Locator.
type Strategy int

const (
	StrategyXPath Strategy = iota
	StrategyCSS
	StrategyID
	StrategyTag
	// StrategyShadow resolves Inner inside the open shadow root of Host.
	StrategyShadow
)

// Locator is a declarative selector. Build one with ByXPath, ByCSS, ByID,
// ByTag or Shadow.
type Locator struct {
	Strategy Strategy
	Value    string
	// Host is the CSS selector of the shadow host (StrategyShadow only).
	Host string
}

func ByXPath(xpath string) Locator { return Locator{Strategy: StrategyXPath, Value: xpath} }
func ByCSS(css string) Locator     { return Locator{Strategy: StrategyCSS, Value: css} }
func ByID(id string) Locator       { return Locator{Strategy: StrategyID, Value: id} }
func ByTag(tag string) Locator     { return Locator{Strategy: StrategyTag, Value: tag} }

// Shadow locates innerCSS inside the shadow root of the element matching hostCSS.
func Shadow(hostCSS, innerCSS string) Locator {
	return Locator{Strategy: StrategyShadow, Host: hostCSS, Value: innerCSS}
}

// WebDriver returns the W3C location strategy and value. Shadow locators have
// no native strategy and return ok=false; they are resolved by script.
func (l Locator) WebDriver() (by, value string, ok bool) {
	switch l.Strategy {
	case StrategyXPath:
		return selenium.ByXPATH, l.Value, true
	case StrategyCSS:
		return selenium.ByCSSSelector, l.Value, true
	case StrategyID:
		return selenium.ByID, l.Value, true
	case StrategyTag:
		return selenium.ByTagName, l.Value, true
	default:
		return "", "", false
	}
}

func (l Locator) String() string {
	switch l.Strategy {
	case StrategyXPath:
		return "xpath=" + l.Value
	case StrategyCSS:
		return "css=" + l.Value
	case StrategyID:
		return "id=" + l.Value
	case StrategyTag:
		return "tag=" + l.Value
	case StrategyShadow:
		return fmt.Sprintf("shadow=%s >> %s", l.Host, l.Value)
	default:
		return fmt.Sprintf("locator(%d)=%s", l.Strategy, l.Value)
	}
}
