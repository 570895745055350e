package studio

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
)

// TopicsInput is the session state the topic request is built from.
type TopicsInput struct {
	Answers   domain.OnboardingAnswers
	Offers    domain.OfferSelection
	FileNames []string
}

// Query renders the topic generation query sent to the generator.
func (i TopicsInput) Query() string {
	var b strings.Builder
	b.WriteString("Suggest content topics for a creator")

	if len(i.Answers.Socials) > 0 {
		names := make([]string, 0, len(i.Answers.Socials))
		for _, p := range i.Answers.Socials {
			names = append(names, p.String())
		}
		fmt.Fprintf(&b, " active on %s", strings.Join(names, ", "))
	}
	b.WriteString(".")

	if i.Answers.Website != "" {
		fmt.Fprintf(&b, " Website: %s.", i.Answers.Website)
	}
	if label := i.Answers.Objective.Label(); label != "" {
		fmt.Fprintf(&b, " Objective: %s.", label)
	}

	var offers []string
	for _, o := range domain.OfferCatalogue() {
		if i.Offers.IsSelected(o.ID) {
			offers = append(offers, o.Title)
		}
	}
	if len(offers) > 0 {
		fmt.Fprintf(&b, " Requested services: %s.", strings.Join(offers, ", "))
	}
	if len(i.FileNames) > 0 {
		fmt.Fprintf(&b, " Reference documents: %s.", strings.Join(i.FileNames, ", "))
	}
	return b.String()
}

// PromptInput is a free-text generation request from the topics step.
type PromptInput struct {
	Prompt string
}

// Validate checks all fields and collects all errors.
func (i PromptInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Prompt) == "" {
		errs = append(errs, domain.FieldError{Field: "prompt", Message: "required"})
	}
	if utf8.RuneCountInString(i.Prompt) > domain.MaxPromptLength {
		errs = append(errs, domain.FieldError{Field: "prompt", Message: fmt.Sprintf("max %d characters", domain.MaxPromptLength)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ExportAction selects what Export produces.
type ExportAction string

const (
	ExportCopy     ExportAction = "copy"
	ExportDownload ExportAction = "download"
)

// ExportInput holds the parameters for exporting the active tab.
type ExportInput struct {
	Action ExportAction
}

// Validate checks all fields and collects all errors.
func (i ExportInput) Validate() error {
	switch i.Action {
	case ExportCopy, ExportDownload:
		return nil
	}
	return domain.NewValidationError("action", "must be copy or download")
}
