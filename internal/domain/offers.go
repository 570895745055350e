package domain

// OfferID identifies one of the fixed service offers.
type OfferID string

const (
	OfferContentSuggestions     OfferID = "contentSuggestions"
	OfferBrandDealReports       OfferID = "brandDealReports"
	OfferAnalysisIdealFollowers OfferID = "analysisIdealFollowers"
	OfferCreateContents         OfferID = "createContents"
)

func (id OfferID) String() string { return string(id) }

func (id OfferID) IsValid() bool {
	switch id {
	case OfferContentSuggestions, OfferBrandDealReports, OfferAnalysisIdealFollowers, OfferCreateContents:
		return true
	}
	return false
}

// Offer is a card on the offers step.
type Offer struct {
	ID          OfferID
	Title       string
	Description string
}

// OfferCatalogue returns the four offers in display order.
func OfferCatalogue() []Offer {
	return []Offer{
		{
			ID:          OfferContentSuggestions,
			Title:       "Content Suggestions",
			Description: "Get AI-powered content ideas tailored to your audience",
		},
		{
			ID:          OfferBrandDealReports,
			Title:       "Brand Deal Reports",
			Description: "Analyze potential brand partnerships and opportunities",
		},
		{
			ID:          OfferAnalysisIdealFollowers,
			Title:       "Analysis of Ideal Followers",
			Description: "Understand your target audience demographics and interests",
		},
		{
			ID:          OfferCreateContents,
			Title:       "Create Contents",
			Description: "Generate ready-to-post content for your platforms",
		},
	}
}

// OfferSelection holds one flag per offer.
type OfferSelection struct {
	ContentSuggestions     bool
	BrandDealReports       bool
	AnalysisIdealFollowers bool
	CreateContents         bool
}

// Toggle flips the flag for id.
func (s *OfferSelection) Toggle(id OfferID) error {
	switch id {
	case OfferContentSuggestions:
		s.ContentSuggestions = !s.ContentSuggestions
	case OfferBrandDealReports:
		s.BrandDealReports = !s.BrandDealReports
	case OfferAnalysisIdealFollowers:
		s.AnalysisIdealFollowers = !s.AnalysisIdealFollowers
	case OfferCreateContents:
		s.CreateContents = !s.CreateContents
	default:
		return NewValidationError("offer", "unknown offer "+string(id))
	}
	return nil
}

// IsSelected reports the flag for id. Unknown ids are never selected.
func (s OfferSelection) IsSelected(id OfferID) bool {
	switch id {
	case OfferContentSuggestions:
		return s.ContentSuggestions
	case OfferBrandDealReports:
		return s.BrandDealReports
	case OfferAnalysisIdealFollowers:
		return s.AnalysisIdealFollowers
	case OfferCreateContents:
		return s.CreateContents
	}
	return false
}

// Selected returns the ids of all set flags in catalogue order.
func (s OfferSelection) Selected() []OfferID {
	var ids []OfferID
	for _, o := range OfferCatalogue() {
		if s.IsSelected(o.ID) {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// CanContinue reports whether at least one offer is selected.
func (s OfferSelection) CanContinue() bool {
	return s.ContentSuggestions || s.BrandDealReports || s.AnalysisIdealFollowers || s.CreateContents
}
