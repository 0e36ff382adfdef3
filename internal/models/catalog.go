package models

// Question is a single weighted questionnaire item. Reference data, never
// mutated after catalog load.
type Question struct {
	ID       string `json:"id" yaml:"id"`
	Prompt   string `json:"prompt" yaml:"prompt"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Weight   int    `json:"weight" yaml:"weight"` // defaults to 1 when unset
}

// Domain is a named grouping of related security-control questions
// (e.g., Network Security). Question order is display order only.
type Domain struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Icon        string     `json:"icon,omitempty" yaml:"icon,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

// TotalWeight returns the sum of question weights, treating an unset weight
// as 1.
func (d *Domain) TotalWeight() int {
	total := 0
	for _, q := range d.Questions {
		total += q.EffectiveWeight()
	}
	return total
}

// EffectiveWeight returns the question weight with the default of 1 applied
func (q *Question) EffectiveWeight() int {
	if q.Weight <= 0 {
		return 1
	}
	return q.Weight
}
