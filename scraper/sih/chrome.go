package sih

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/chromedp/chromedp"

	"sih-ps-scraper/config"
	"sih-ps-scraper/utils"
)

// ChromeSession is a Session backed by one chromedp browser tab.
type ChromeSession struct {
	cfg    *config.Config
	logger *utils.Logger

	tab         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	closeOnce   sync.Once
}

// NewChromeSession launches the browser and opens a blank tab.
func NewChromeSession(parent context.Context, cfg *config.Config, logger *utils.Logger) (*ChromeSession, error) {
	chromeBin := utils.FindChromeBinary(cfg.ChromeBin)
	logger.Info("[chrome] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("enable-automation", false),
		chromedp.Flag("start-maximized", true),
		chromedp.WindowSize(1440, 900),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)

	// Suppress chromedp log noise
	tab, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	// The first Run starts the browser; tie its lifetime to tab, not to a
	// per-call context.
	if err := chromedp.Run(tab); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("chrome: start browser: %w", err)
	}

	return &ChromeSession{
		cfg:         cfg,
		logger:      logger,
		tab:         tab,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
	}, nil
}

// run executes actions on the tab, aborting them if ctx is cancelled.
func (s *ChromeSession) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithCancel(s.tab)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func (s *ChromeSession) Navigate(ctx context.Context, url string) error {
	s.logger.Info("[chrome] Navigating to %s", url)
	err := s.run(ctx,
		chromedp.Navigate(url),
		chromedp.Sleep(s.cfg.LoadWait()),
	)
	if err != nil {
		return fmt.Errorf("chrome: navigate: %w", err)
	}
	return nil
}

func (s *ChromeSession) SetPageSize(ctx context.Context, size int) error {
	arg, _ := json.Marshal(strconv.Itoa(size))
	var ok bool
	if err := s.run(ctx, chromedp.Evaluate(fmt.Sprintf(pageSizeJS, arg), &ok)); err != nil {
		return fmt.Errorf("chrome: set page size: %w", err)
	}
	if !ok {
		return errors.New("chrome: page size control or option not found")
	}
	return nil
}

func (s *ChromeSession) Snapshot(ctx context.Context) (string, error) {
	var ready bool
	err := s.run(ctx, chromedp.Poll(tableReadyJS, &ready, chromedp.WithPollingTimeout(s.cfg.TableWait())))
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		s.logger.Warn("[chrome] Timeout waiting for table rows: %v", err)
	}

	var html string
	if err := s.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("chrome: snapshot: %w", err)
	}
	return html, nil
}

func (s *ChromeSession) WaitSettled(ctx context.Context) error {
	var done bool
	err := s.run(ctx, chromedp.Poll(processingDoneJS, &done, chromedp.WithPollingTimeout(s.cfg.ProcessingTimeout())))
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Debug("[chrome] Processing indicator still shown: %v", err)
	}
	return s.run(ctx, chromedp.Sleep(s.cfg.SettleDelay()))
}

// locateResult mirrors the object returned by locateJS.
type locateResult struct {
	Found bool `json:"found"`
	Control
}

func (s *ChromeSession) Locate(ctx context.Context, loc Locator) (Control, bool, error) {
	var res locateResult
	if err := s.run(ctx, chromedp.Evaluate(locateJS(loc), &res)); err != nil {
		return Control{}, false, fmt.Errorf("chrome: locate %s: %w", loc.Name, err)
	}
	return res.Control, res.Found, nil
}

func (s *ChromeSession) Activate(ctx context.Context, loc Locator) error {
	var clicked bool
	if err := s.run(ctx, chromedp.Evaluate(activateJS(loc), &clicked)); err != nil {
		return fmt.Errorf("chrome: click %s: %w", loc.Name, err)
	}
	if !clicked {
		return fmt.Errorf("chrome: click %s: element disappeared", loc.Name)
	}
	return nil
}

// Close shuts the browser down. Only the first call has an effect.
func (s *ChromeSession) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = chromedp.Cancel(s.tab)
		s.cancelTab()
		s.cancelAlloc()
	})
	return err
}

// elementJS returns a JS expression evaluating to the element loc matches, or null.
func elementJS(loc Locator) string {
	expr, _ := json.Marshal(loc.Expr)
	if loc.Kind == ByXPath {
		return fmt.Sprintf(`document.evaluate(%s, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue`, expr)
	}
	return fmt.Sprintf(`document.querySelector(%s)`, expr)
}

func locateJS(loc Locator) string {
	return fmt.Sprintf(`(function() {
		var el = %s;
		if (!el) return { found: false };
		var parent = el.parentElement;
		return {
			found: true,
			cls: el.getAttribute('class') || '',
			parentCls: parent ? (parent.getAttribute('class') || '') : '',
			disabledAttr: el.hasAttribute('disabled'),
			ariaDisabled: el.getAttribute('aria-disabled') || ''
		};
	})()`, elementJS(loc))
}

// activateJS clicks the matched element. A list item wrapper is clicked
// through its inner link, which is where DataTables binds the handler.
func activateJS(loc Locator) string {
	return fmt.Sprintf(`(function() {
		var el = %s;
		if (!el) return false;
		var target = el.tagName === 'LI' ? (el.querySelector('a, button') || el) : el;
		target.scrollIntoView({ block: 'center' });
		target.click();
		return true;
	})()`, elementJS(loc))
}
