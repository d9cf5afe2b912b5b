package browser

import (
	"testing"
	"time"
)

type fakeBrowser struct{}

func (fakeBrowser) Initialize(headless bool) bool                           { return true }
func (fakeBrowser) Close() bool                                             { return true }
func (fakeBrowser) Navigate(url string, waitForLoad bool) bool              { return true }
func (fakeBrowser) IsElementPresent(selector string, t time.Duration) bool  { return false }
func (fakeBrowser) WaitForElement(selector string, t time.Duration) Element { return nil }
func (fakeBrowser) Click(selector string, waitAfter time.Duration) bool     { return true }
func (fakeBrowser) FillText(selector, text string) bool                     { return true }
func (fakeBrowser) UploadFile(selector, path string) bool                   { return true }
func (fakeBrowser) ExecuteScript(script string, args ...any) (any, error)   { return nil, nil }

func TestCreateUnknownType(t *testing.T) {
	if _, err := Create("netscape", Config{}); err == nil {
		t.Fatal("expected an error for an unknown browser type")
	}
}

func TestCreateAutoResolvesDefault(t *testing.T) {
	b, err := Create("auto", Config{})
	if err != nil {
		t.Fatalf("auto should resolve to the default binding: %v", err)
	}
	if _, ok := b.(*PlaywrightBrowser); !ok {
		t.Fatalf("got %T, want *PlaywrightBrowser", b)
	}
}

func TestCreateEmptyTypeResolvesDefault(t *testing.T) {
	b, err := Create("", Config{})
	if err != nil {
		t.Fatalf("empty type should resolve to the default binding: %v", err)
	}
	if _, ok := b.(*PlaywrightBrowser); !ok {
		t.Fatalf("got %T, want *PlaywrightBrowser", b)
	}
}

func TestRegisterCustomBinding(t *testing.T) {
	Register("fake", func(cfg Config) Browser { return fakeBrowser{} })

	b, err := Create("fake", Config{})
	if err != nil {
		t.Fatalf("registered binding must be creatable: %v", err)
	}
	if _, ok := b.(fakeBrowser); !ok {
		t.Fatalf("got %T, want fakeBrowser", b)
	}
}
