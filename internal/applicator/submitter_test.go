package applicator

import (
	"context"
	"testing"
	"time"

	"go-applybot-automation/internal/browser"
	"go-applybot-automation/internal/models"

	"github.com/stretchr/testify/require"
)

type stubBrowser struct {
	uploadOK bool
	clickOK  bool
	fills    map[string]string
	uploads  []string
	clicks   []string
}

func newStubBrowser() *stubBrowser {
	return &stubBrowser{uploadOK: true, clickOK: true, fills: map[string]string{}}
}

func (s *stubBrowser) Initialize(headless bool) bool              { return true }
func (s *stubBrowser) Close() bool                                { return true }
func (s *stubBrowser) Navigate(url string, waitForLoad bool) bool { return true }

func (s *stubBrowser) IsElementPresent(selector string, timeout time.Duration) bool { return true }

func (s *stubBrowser) WaitForElement(selector string, timeout time.Duration) browser.Element {
	return nil
}

func (s *stubBrowser) Click(selector string, waitAfter time.Duration) bool {
	s.clicks = append(s.clicks, selector)
	return s.clickOK
}

func (s *stubBrowser) FillText(selector, text string) bool {
	s.fills[selector] = text
	return true
}

func (s *stubBrowser) UploadFile(selector, path string) bool {
	s.uploads = append(s.uploads, path)
	return s.uploadOK
}

func (s *stubBrowser) ExecuteScript(script string, args ...any) (any, error) { return nil, nil }

func testAttempt() (*models.Job, *models.Resume) {
	job := &models.Job{ID: "j1", URL: "https://example.com/apply"}
	resume := &models.Resume{
		ID:       "r1",
		FilePath: "/resumes/base.pdf",
		ParsedData: &models.ParsedResume{
			PersonalInformation: models.PersonalInformation{
				FullName: "Jane Doe",
				Email:    "jane@example.com",
			},
		},
	}
	return job, resume
}

func TestGenericFormFillsAndSubmits(t *testing.T) {
	b := newStubBrowser()
	job, resume := testAttempt()

	err := NewGenericForm().Submit(context.Background(), b, job, resume)
	require.NoError(t, err)
	require.Equal(t, []string{"/resumes/base.pdf"}, b.uploads)
	require.Len(t, b.clicks, 1)

	filled := make([]string, 0, len(b.fills))
	for _, v := range b.fills {
		filled = append(filled, v)
	}
	require.ElementsMatch(t, []string{"Jane Doe", "jane@example.com"}, filled)
}

func TestGenericFormRequiresFileInput(t *testing.T) {
	b := newStubBrowser()
	b.uploadOK = false
	job, resume := testAttempt()

	err := NewGenericForm().Submit(context.Background(), b, job, resume)
	require.Error(t, err)
	require.Contains(t, err.Error(), "resume file input")
}

func TestGenericFormRequiresSubmitControl(t *testing.T) {
	b := newStubBrowser()
	b.clickOK = false
	job, resume := testAttempt()

	err := NewGenericForm().Submit(context.Background(), b, job, resume)
	require.Error(t, err)
	require.Contains(t, err.Error(), "submit control")
}

func TestGenericFormSkipsMissingParsedData(t *testing.T) {
	b := newStubBrowser()
	job, resume := testAttempt()
	resume.ParsedData = nil

	err := NewGenericForm().Submit(context.Background(), b, job, resume)
	require.NoError(t, err)
	require.Empty(t, b.fills, "no parsed data means nothing to type")
}

func TestNoopTouchesNothing(t *testing.T) {
	b := newStubBrowser()
	job, resume := testAttempt()

	require.NoError(t, Noop{}.Submit(context.Background(), b, job, resume))
	require.Empty(t, b.fills)
	require.Empty(t, b.uploads)
	require.Empty(t, b.clicks)
}
