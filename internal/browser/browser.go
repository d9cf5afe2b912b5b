// Define an interface every browser driver binding must satisfy
// Ensure the engine stays ignorant of the concrete driver

package browser

import (
	"time"
)

// DefaultTimeout bounds element-presence waits and page-load readiness.
const DefaultTimeout = 10 * time.Second

// Element is a handle to a located page element. Handles are not reused
// across interactive calls; every operation locates the element again.
type Element interface {
	Click() error
	Fill(text string) error
	SetInputFiles(path string) error
}

// Config carries the driver-independent construction parameters.
type Config struct {
	NavigationTimeout time.Duration
	// Humanize enables human-like scroll/mouse noise after navigation
	Humanize bool
	// ScreenshotDir receives failure screenshots; empty disables them
	ScreenshotDir string
}

//Browser defines the contract for driving one underlying browser session.
//Every interactive operation is "locate with timeout, then act": timing
//flakiness of the target page becomes a boolean result, not a panic.
type Browser interface {
	//Initialize acquires the session; false on any acquisition failure
	Initialize(headless bool) bool

	//Close releases the session; idempotent, safe with no session
	Close() bool

	//Navigate loads a URL; with waitForLoad it suspends until the page is
	//interactive or the navigation timeout elapses
	Navigate(url string, waitForLoad bool) bool

	//IsElementPresent polls for the selector within timeout
	IsElementPresent(selector string, timeout time.Duration) bool

	//WaitForElement returns a handle to the element, or nil if it never
	//appeared within timeout
	WaitForElement(selector string, timeout time.Duration) Element

	//Click locates then clicks; sleeps waitAfter on success
	Click(selector string, waitAfter time.Duration) bool

	//FillText locates then types into an input
	FillText(selector, text string) bool

	//UploadFile locates a file input and attaches the file at path
	UploadFile(selector, path string) bool

	//ExecuteScript runs script in page context; errors when no session
	//is active or the driver itself fails
	ExecuteScript(script string, args ...any) (any, error)
}
