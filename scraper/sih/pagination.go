package sih

import (
	"context"
	"strings"

	"sih-ps-scraper/utils"
)

// LocatorKind selects how a Locator expression is evaluated.
type LocatorKind int

const (
	ByCSS LocatorKind = iota
	ByXPath
)

// Locator is one lookup strategy for a page element.
type Locator struct {
	Name string
	Kind LocatorKind
	Expr string
}

// Control is the state of a located pagination control.
type Control struct {
	Class        string `json:"cls"`
	ParentClass  string `json:"parentCls"`
	DisabledAttr bool   `json:"disabledAttr"`
	AriaDisabled string `json:"ariaDisabled"`
}

// Disabled reports whether the control, or its wrapping list item, is
// marked disabled.
func (c Control) Disabled() bool {
	return c.DisabledAttr ||
		strings.EqualFold(c.AriaDisabled, "true") ||
		hasClass(c.Class, "disabled") ||
		hasClass(c.ParentClass, "disabled")
}

func hasClass(classes, name string) bool {
	for _, c := range strings.Fields(classes) {
		if c == name {
			return true
		}
	}
	return false
}

// ControlDriver locates and activates elements on the live page.
type ControlDriver interface {
	// Locate reports the element's state, or found=false when loc matches nothing.
	Locate(ctx context.Context, loc Locator) (ctrl Control, found bool, err error)
	// Activate triggers a script click on the element matched by loc.
	Activate(ctx context.Context, loc Locator) error
}

// Pager decides whether more pages remain and advances to the next one.
type Pager struct {
	driver   ControlDriver
	locators []Locator
	logger   *utils.Logger
}

// NewPager creates a Pager using the default "Next" locators.
func NewPager(driver ControlDriver, logger *utils.Logger) *Pager {
	return &Pager{driver: driver, locators: nextLocators, logger: logger}
}

// resolve returns the control found by the first locator that matches.
// Lookup errors count as "not found" for that strategy.
func (p *Pager) resolve(ctx context.Context) (Control, Locator, bool) {
	return firstMatch(p.locators, func(loc Locator) (Control, bool) {
		ctrl, found, err := p.driver.Locate(ctx, loc)
		if err != nil {
			p.logger.Debug("[pager] %s lookup failed: %v", loc.Name, err)
			return Control{}, false
		}
		if !found {
			p.logger.Debug("[pager] %s lookup found nothing", loc.Name)
		}
		return ctrl, found
	})
}

// HasMore reports whether an enabled "Next" control is present.
func (p *Pager) HasMore(ctx context.Context) bool {
	ctrl, loc, ok := p.resolve(ctx)
	if !ok {
		p.logger.Info("[pager] Next control not found")
		return false
	}
	if ctrl.Disabled() {
		p.logger.Info("[pager] Next control is disabled, reached last page")
		return false
	}
	p.logger.Debug("[pager] Next control enabled (%s, classes %q)", loc.Name, ctrl.Class)
	return true
}

// Advance clicks the "Next" control. It returns false when the control is
// missing, disabled or the click fails. The caller waits for the table to
// settle afterwards.
func (p *Pager) Advance(ctx context.Context) bool {
	ctrl, loc, ok := p.resolve(ctx)
	if !ok {
		p.logger.Warn("[pager] Could not locate Next control with any strategy")
		return false
	}
	if ctrl.Disabled() {
		p.logger.Info("[pager] Next control is disabled, reached last page")
		return false
	}
	if err := p.driver.Activate(ctx, loc); err != nil {
		p.logger.Warn("[pager] Clicking Next via %s failed: %v", loc.Name, err)
		return false
	}
	p.logger.Info("[pager] Clicked Next via %s lookup", loc.Name)
	return true
}
