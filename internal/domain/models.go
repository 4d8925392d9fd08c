package domain

// Outcome represents a learning-outcome record as delivered by a catalog source
type Outcome struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"` // short code, e.g. "MATH.2.A"
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// DisplayName returns the label when set, otherwise the id
func (o Outcome) DisplayName() string {
	if o.Label != "" {
		return o.Label
	}
	return o.ID
}

// ResultPage is one page of search results plus the total match count
type ResultPage struct {
	Entries []Outcome `json:"entries"`
	Total   int       `json:"total"`
}

// IDs returns the ids of the page entries in order
func (p ResultPage) IDs() []string {
	ids := make([]string, 0, len(p.Entries))
	for _, o := range p.Entries {
		ids = append(ids, o.ID)
	}
	return ids
}
