package browser

import (
	"log"
	"time"

	"go-applybot-automation/utils"

	"github.com/playwright-community/playwright-go"
)

func init() {
	Register("playwright", func(cfg Config) Browser {
		return NewPlaywrightBrowser(cfg)
	})
}

// PlaywrightBrowser drives one Chromium session through playwright-go.
type PlaywrightBrowser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page

	navTimeout time.Duration
	humanize   bool
	shots      *utils.ScreenShotDebugger
}

func NewPlaywrightBrowser(cfg Config) *PlaywrightBrowser {
	navTimeout := cfg.NavigationTimeout
	if navTimeout <= 0 {
		navTimeout = DefaultTimeout
	}

	var shots *utils.ScreenShotDebugger
	if cfg.ScreenshotDir != "" {
		shots = utils.NewScreenShotDebugger(cfg.ScreenshotDir)
	}

	return &PlaywrightBrowser{
		navTimeout: navTimeout,
		humanize:   cfg.Humanize,
		shots:      shots,
	}
}

func (b *PlaywrightBrowser) Initialize(headless bool) bool {
	if b.page != nil {
		//already holding a live session
		return true
	}

	pw, err := playwright.Run()
	if err != nil {
		log.Printf("❌ Failed to start Playwright driver: %v", err)
		return false
	}

	chromium, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		log.Printf("❌ Failed to launch Chromium: %v", err)
		_ = pw.Stop()
		return false
	}

	page, err := chromium.NewPage()
	if err != nil {
		log.Printf("❌ Failed to open page: %v", err)
		_ = chromium.Close()
		_ = pw.Stop()
		return false
	}

	b.pw = pw
	b.browser = chromium
	b.page = page
	log.Println("✅ Browser initialized successfully!")
	return true
}

func (b *PlaywrightBrowser) Close() bool {
	if b.page != nil {
		_ = b.page.Close()
		b.page = nil
	}
	if b.browser != nil {
		_ = b.browser.Close()
		b.browser = nil
	}
	if b.pw != nil {
		_ = b.pw.Stop()
		b.pw = nil
	}
	return true
}

func (b *PlaywrightBrowser) Navigate(url string, waitForLoad bool) bool {
	if b.page == nil {
		return false
	}

	opts := playwright.PageGotoOptions{
		Timeout: playwright.Float(float64(b.navTimeout.Milliseconds())),
	}
	if waitForLoad {
		opts.WaitUntil = playwright.WaitUntilStateDomcontentloaded
	} else {
		opts.WaitUntil = playwright.WaitUntilStateCommit
	}

	if _, err := b.page.Goto(url, opts); err != nil {
		log.Printf("⚠️ Error navigating to %s: %v", url, err)
		if b.shots != nil {
			_ = b.shots.CaptureAndLog(b.page, "navigate-failed", "🚨 Navigation failed: "+url)
		}
		return false
	}

	if b.humanize {
		if err := HumanScroll(b.page); err != nil {
			log.Printf("⚠️ Human scroll failed: %v", err)
		}
		if err := MouseJiggle(b.page); err != nil {
			log.Printf("⚠️ Mouse jiggle failed: %v", err)
		}
	}

	return true
}

func (b *PlaywrightBrowser) IsElementPresent(selector string, timeout time.Duration) bool {
	return b.WaitForElement(selector, timeout) != nil
}

func (b *PlaywrightBrowser) WaitForElement(selector string, timeout time.Duration) Element {
	if b.page == nil {
		return nil
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	locator := b.page.Locator(selector).First()
	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return nil
	}
	return &pwElement{locator: locator}
}

func (b *PlaywrightBrowser) Click(selector string, waitAfter time.Duration) bool {
	el := b.WaitForElement(selector, DefaultTimeout)
	if el == nil {
		return false
	}
	if err := el.Click(); err != nil {
		log.Printf("⚠️ Click failed on %s: %v", selector, err)
		return false
	}
	if waitAfter > 0 {
		time.Sleep(waitAfter)
	}
	return true
}

func (b *PlaywrightBrowser) FillText(selector, text string) bool {
	el := b.WaitForElement(selector, DefaultTimeout)
	if el == nil {
		return false
	}
	if err := el.Fill(text); err != nil {
		log.Printf("⚠️ Fill failed on %s: %v", selector, err)
		return false
	}
	return true
}

func (b *PlaywrightBrowser) UploadFile(selector, path string) bool {
	el := b.WaitForElement(selector, DefaultTimeout)
	if el == nil {
		return false
	}
	if err := el.SetInputFiles(path); err != nil {
		log.Printf("⚠️ File upload failed on %s: %v", selector, err)
		return false
	}
	return true
}

func (b *PlaywrightBrowser) ExecuteScript(script string, args ...any) (any, error) {
	if b.page == nil {
		return nil, ErrNoSession
	}
	if len(args) > 0 {
		//playwright passes a single argument object into the page
		return b.page.Evaluate(script, args[0])
	}
	return b.page.Evaluate(script)
}

type pwElement struct {
	locator playwright.Locator
}

func (e *pwElement) Click() error {
	return e.locator.Click()
}

func (e *pwElement) Fill(text string) error {
	return e.locator.Fill(text)
}

func (e *pwElement) SetInputFiles(path string) error {
	return e.locator.SetInputFiles(path)
}
