// Define the form-submission extension point
// Runs between navigation and persistence without touching either

package applicator

import (
	"context"
	"fmt"
	"time"

	"go-applybot-automation/internal/browser"
	"go-applybot-automation/internal/models"
)

//Submitter fills and submits the application form after the engine has
//navigated to the job page. Implementations are board-specific; returning an
//error fails the whole attempt.
type Submitter interface {
	Submit(ctx context.Context, b browser.Browser, job *models.Job, resume *models.Resume) error
}

// Noop performs no form interaction. It is the engine's default: navigation
// alone counts as the attempt, matching boards with one-click apply links.
type Noop struct{}

func (Noop) Submit(ctx context.Context, b browser.Browser, job *models.Job, resume *models.Resume) error {
	return nil
}

// GenericForm drives the common shape of application forms: a name field, an
// email field, a resume file input and a submit control. Fields that a board
// does not render are skipped; the file upload and the submit click must
// succeed.
type GenericForm struct {
	NameSelector   string
	EmailSelector  string
	FileSelector   string
	SubmitSelector string
}

func NewGenericForm() *GenericForm {
	return &GenericForm{
		NameSelector:   "input[name='name'], input[name='full_name']",
		EmailSelector:  "input[type='email'], input[name='email']",
		FileSelector:   "input[type='file']",
		SubmitSelector: "button[type='submit'], input[type='submit']",
	}
}

func (g *GenericForm) Submit(ctx context.Context, b browser.Browser, job *models.Job, resume *models.Resume) error {
	if resume.ParsedData != nil {
		person := resume.ParsedData.PersonalInformation
		if person.FullName != "" {
			//optional field, not every board asks for it
			b.FillText(g.NameSelector, person.FullName)
			browser.RandomDelay(200, 600)
		}
		if person.Email != "" {
			b.FillText(g.EmailSelector, person.Email)
			browser.RandomDelay(200, 600)
		}
	}

	if !b.UploadFile(g.FileSelector, resume.FilePath) {
		return fmt.Errorf("no resume file input found on %s", job.URL)
	}
	browser.RandomDelay(400, 900)

	if !b.Click(g.SubmitSelector, 2*time.Second) {
		return fmt.Errorf("no submit control found on %s", job.URL)
	}
	return nil
}
