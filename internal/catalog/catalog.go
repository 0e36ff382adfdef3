package catalog

import (
	"github.com/opsgrade/posture-engine/internal/models"
)

// Catalog is the fixed set of security domains with their weighted
// questions. Loaded once at process start; immutable afterwards.
type Catalog struct {
	domains []models.Domain
	byID    map[string]*models.Domain
	byQID   map[string]questionRef
}

type questionRef struct {
	domainID string
	question models.Question
}

// New builds a catalog from a domain list. Later domains with a duplicate
// ID replace earlier ones, which is how directory overrides shadow the
// embedded defaults.
func New(domains []models.Domain) *Catalog {
	c := &Catalog{
		byID:  make(map[string]*models.Domain),
		byQID: make(map[string]questionRef),
	}
	for _, d := range domains {
		if _, exists := c.byID[d.ID]; exists {
			for i := range c.domains {
				if c.domains[i].ID == d.ID {
					c.domains[i] = d
					break
				}
			}
		} else {
			c.domains = append(c.domains, d)
		}
	}
	for i := range c.domains {
		d := &c.domains[i]
		c.byID[d.ID] = d
		for _, q := range d.Questions {
			c.byQID[q.ID] = questionRef{domainID: d.ID, question: q}
		}
	}
	return c
}

// Domains returns all domains in display order
func (c *Catalog) Domains() []models.Domain {
	return c.domains
}

// Domain returns a domain by ID, or nil
func (c *Catalog) Domain(id string) *models.Domain {
	return c.byID[id]
}

// Question looks up a question by ID and returns it with its owning
// domain ID.
func (c *Catalog) Question(id string) (models.Question, string, bool) {
	ref, ok := c.byQID[id]
	if !ok {
		return models.Question{}, "", false
	}
	return ref.question, ref.domainID, true
}

// QuestionCount returns the total number of questions across all domains
func (c *Catalog) QuestionCount() int {
	return len(c.byQID)
}
