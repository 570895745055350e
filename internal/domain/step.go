package domain

// Step is a screen of the wizard, in navigation order.
type Step string

const (
	StepOnboarding Step = "onboarding"
	StepOffers     Step = "offers"
	StepTopics     Step = "topics"
	StepContent    Step = "content"
)

func (s Step) String() string { return string(s) }

func (s Step) IsValid() bool {
	switch s {
	case StepOnboarding, StepOffers, StepTopics, StepContent:
		return true
	}
	return false
}

// Previous returns the step a back link leads to. Onboarding has no previous
// step and returns itself.
func (s Step) Previous() Step {
	switch s {
	case StepOffers:
		return StepOnboarding
	case StepTopics:
		return StepOffers
	case StepContent:
		return StepTopics
	}
	return StepOnboarding
}
