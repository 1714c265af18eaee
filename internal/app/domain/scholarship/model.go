package scholarship

// Scholarship is a catalog entry. Name is the unique key within the catalog.
type Scholarship struct {
	Name        string `json:"scholarshipName" yaml:"scholarshipName"`
	Description string `json:"description" yaml:"description"`
	Amount      string `json:"amount" yaml:"amount"`
	Deadline    string `json:"deadline" yaml:"deadline"`
	Link        string `json:"link" yaml:"link"`
}

// Recommendation is a catalog entry augmented with the generator's match
// score, an integer percentage fit in [0,100].
type Recommendation struct {
	Scholarship `yaml:",inline"`
	MatchScore  int `json:"matchScore"`
}
