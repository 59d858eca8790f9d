package common

// AnalysisResult is the typed shape of one successful reply from the
// narrative-analysis model: a center entity plus two layers of related
// entities.
//
// The JSON tags match the output contract the model is prompted with
// (center_node / connections / sub_connections).
type AnalysisResult struct {
	Center    Center     `json:"center_node"`
	Relations []Relation `json:"connections"`
}

// Center describes the entity the analysis revolves around. Name is the
// primary identity and may be a corrected/canonical form of the query
// that produced it (e.g. "openai" -> "OpenAI").
//
// Summary, PositiveSignal and RiskSignal are free text, opaque to the
// graph core; they are only surfaced when the center node is selected.
type Center struct {
	Name           string `json:"name"`
	Category       string `json:"type"`
	Summary        string `json:"mission"`
	PositiveSignal string `json:"positive_news"`
	RiskSignal     string `json:"red_flags"`
}

// Relation is an entity directly connected to the center (layer 1).
// Order is preserved for display but carries no identity meaning.
type Relation struct {
	Name         string        `json:"name"`
	Rationale    string        `json:"reason"`
	SubRelations []SubRelation `json:"sub_connections"`
}

// SubRelation is an entity connected to a Relation (layer 2).
type SubRelation struct {
	Name      string `json:"name"`
	Rationale string `json:"reason"`
}

// QueryMode selects which prompt the analysis model is driven with.
type QueryMode string

const (
	// ModeDiscovery maps a company or role to its surrounding network.
	ModeDiscovery QueryMode = "discovery"
	// ModeResumeMatch maps a resume to target companies and matched skills.
	ModeResumeMatch QueryMode = "resume_match"
	// ModeCareJourney maps a caregiving crisis to actions and resources.
	ModeCareJourney QueryMode = "care_journey"
)

// FilterAny is the neutral value for every FilterSet field.
const FilterAny = "Any"

// FilterSet is the enumerated options bag constraining an analysis.
// Each field is either FilterAny or one of a small closed set of labels
// (see IndustryLabels et al.).
type FilterSet struct {
	Industry         string `json:"industry"`
	OrganizationSize string `json:"organization_size"`
	WorkStyle        string `json:"work_style"`
}

// Closed label sets for FilterSet fields. FilterAny is always allowed.
var (
	IndustryLabels = []string{
		"SaaS / Software", "Fintech", "HealthTech", "Climate Tech",
		"E-Commerce", "Gaming", "Crypto/Web3", "Defense/Aerospace",
	}
	OrganizationSizeLabels = []string{
		"Early Stage (<50 employees)", "Growth Stage (50-500)", "Large Corp (500+)",
	}
	WorkStyleLabels = []string{
		"Remote Friendly", "In-Office / Hybrid",
	}
)

// DefaultFilters returns a FilterSet with every field set to FilterAny.
func DefaultFilters() FilterSet {
	return FilterSet{
		Industry:         FilterAny,
		OrganizationSize: FilterAny,
		WorkStyle:        FilterAny,
	}
}

func validLabel(value string, labels []string) bool {
	if value == "" || value == FilterAny {
		return true
	}
	for _, l := range labels {
		if l == value {
			return true
		}
	}
	return false
}

// Normalize replaces empty fields with FilterAny and reports whether all
// fields are within their closed label sets.
func (f FilterSet) Normalize() (FilterSet, bool) {
	ok := validLabel(f.Industry, IndustryLabels) &&
		validLabel(f.OrganizationSize, OrganizationSizeLabels) &&
		validLabel(f.WorkStyle, WorkStyleLabels)

	if f.Industry == "" {
		f.Industry = FilterAny
	}
	if f.OrganizationSize == "" {
		f.OrganizationSize = FilterAny
	}
	if f.WorkStyle == "" {
		f.WorkStyle = FilterAny
	}
	return f, ok
}
