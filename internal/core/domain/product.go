package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrProductNotFound = errors.New("product not found")

// DefaultCondition is applied when a product is created without one.
const DefaultCondition = "New"

// CategoryRef is the denormalized category summary attached to product reads.
// It is populated at read time by a batch lookup and never persisted.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product is the core catalog aggregate.
//
// Category is a soft reference to a Category document id: no referential
// integrity is enforced on write, and deleting a category leaves referencing
// products untouched. A dangling reference simply yields no CategoryInfo.
type Product struct {
	ID             string            `json:"id" bson:"_id,omitempty"`
	Name           string            `json:"name" bson:"name"`
	Description    string            `json:"description" bson:"description"`
	Price          float64           `json:"price" bson:"price"`
	Category       string            `json:"category" bson:"category"`
	Images         []string          `json:"images" bson:"images"`
	Brand          string            `json:"brand,omitempty" bson:"brand,omitempty"`
	Platform       string            `json:"platform,omitempty" bson:"platform,omitempty"`
	Condition      string            `json:"condition" bson:"condition"`
	Stock          int               `json:"stock" bson:"stock"`
	Featured       bool              `json:"featured" bson:"featured"`
	Tags           []string          `json:"tags" bson:"tags"`
	Specifications map[string]string `json:"specifications" bson:"specifications"`
	CreatedAt      time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt" bson:"updatedAt"`

	CategoryInfo *CategoryRef `json:"categoryInfo,omitempty" bson:"-"`
}

// MatchesSearch reports whether term occurs case-insensitively in the
// product's name, description, or any tag.
func (p *Product) MatchesSearch(term string) bool {
	if matchFold(p.Name, term) || matchFold(p.Description, term) {
		return true
	}
	for _, tag := range p.Tags {
		if matchFold(tag, term) {
			return true
		}
	}
	return false
}

func matchFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}
