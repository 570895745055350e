package domain

import "slices"

// Platform identifies a social network the creator is active on.
type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
)

// Platforms lists every selectable platform in display order.
var Platforms = []Platform{PlatformTwitter, PlatformLinkedIn, PlatformInstagram, PlatformYouTube}

func (p Platform) String() string { return string(p) }

func (p Platform) IsValid() bool {
	switch p {
	case PlatformTwitter, PlatformLinkedIn, PlatformInstagram, PlatformYouTube:
		return true
	}
	return false
}

// Objective is the creator's primary goal. The zero value means not chosen yet.
type Objective string

const (
	ObjectiveGrowFollowers Objective = "grow-followers"
	ObjectiveIncreaseSales Objective = "increase-sales"
	ObjectiveGetBrandDeals Objective = "get-brand-deals"
)

// Objectives lists the selectable objectives in display order.
var Objectives = []Objective{ObjectiveGrowFollowers, ObjectiveIncreaseSales, ObjectiveGetBrandDeals}

func (o Objective) String() string { return string(o) }

func (o Objective) IsValid() bool {
	switch o {
	case ObjectiveGrowFollowers, ObjectiveIncreaseSales, ObjectiveGetBrandDeals:
		return true
	}
	return false
}

// Label returns the human readable option text.
func (o Objective) Label() string {
	switch o {
	case ObjectiveGrowFollowers:
		return "Grow followers"
	case ObjectiveIncreaseSales:
		return "Increase sales"
	case ObjectiveGetBrandDeals:
		return "Get brand deals"
	}
	return ""
}

// OnboardingAnswers is what the creator entered on the first wizard step.
type OnboardingAnswers struct {
	Socials   []Platform
	Website   string
	Objective Objective
}

// ToggleSocial adds p when absent and removes it when present.
// Insertion order of the remaining platforms is preserved.
func (a *OnboardingAnswers) ToggleSocial(p Platform) error {
	if !p.IsValid() {
		return NewValidationError("socials", "unknown platform "+string(p))
	}
	if i := slices.Index(a.Socials, p); i >= 0 {
		a.Socials = slices.Delete(a.Socials, i, i+1)
		return nil
	}
	a.Socials = append(a.Socials, p)
	return nil
}

// HasSocial reports whether p is selected.
func (a OnboardingAnswers) HasSocial(p Platform) bool {
	return slices.Contains(a.Socials, p)
}

// Clone returns a copy that does not share the socials slice.
func (a OnboardingAnswers) Clone() OnboardingAnswers {
	a.Socials = slices.Clone(a.Socials)
	return a
}

// Validate checks the answers before the wizard advances past onboarding.
// An empty website and an unset objective are allowed.
func (a OnboardingAnswers) Validate() error {
	var errs []FieldError

	seen := make(map[Platform]bool, len(a.Socials))
	for _, p := range a.Socials {
		if !p.IsValid() {
			errs = append(errs, FieldError{Field: "socials", Message: "unknown platform " + string(p)})
			continue
		}
		if seen[p] {
			errs = append(errs, FieldError{Field: "socials", Message: "duplicate platform " + string(p)})
		}
		seen[p] = true
	}

	if ValidateWebsite(a.Website) == URLStateInvalid {
		errs = append(errs, FieldError{Field: "website", Message: "must be a valid URL"})
	}

	if a.Objective != "" && !a.Objective.IsValid() {
		errs = append(errs, FieldError{Field: "objective", Message: "unknown objective"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
