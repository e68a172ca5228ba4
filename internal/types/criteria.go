package types

// SearchCriteria is the immutable per-run search configuration the matcher
// scores jobs against. Loaded from the config file; credentials never live here.
type SearchCriteria struct {
	Keywords       []string
	Locations      []string
	RequiredSkills []string
	OptionalSkills []string
	MinSalary      float64
}
