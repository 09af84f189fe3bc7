// Package classifier guesses a topical category for an article by keyword matching.
package classifier

import (
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/bytenews/pkg/domain"
)

// Category is a named list of keywords
type Category struct {
	Name     string   `yaml:"name" json:"name" jsonschema:"required,description=category name"`
	Keywords []string `yaml:"keywords" json:"keywords" jsonschema:"required,description=lower-case keywords matched as substrings"`
}

// Table is an ordered list of categories, earlier entries win ties
type Table []Category

// DefaultTable returns the built-in category table
func DefaultTable() Table {
	return Table{
		{Name: "Lifestyle", Keywords: []string{"lifestyle", "fashion", "travel", "recipe", "wellbeing", "home decor", "relationship"}},
		{Name: "Health", Keywords: []string{"health", "medical", "disease", "vaccine", "hospital", "doctor", "virus", "mental health", "nutrition"}},
		{Name: "Technology", Keywords: []string{"technology", "software", "artificial intelligence", "smartphone", "computer", "internet",
			"cyber", "startup", "gadget", "robot"}},
		{Name: "Education", Keywords: []string{"education", "school", "university", "student", "teacher", "college", "exams"}},
		{Name: "Politics", Keywords: []string{"politic", "election", "government", "parliament", "senate", "minister", "president", "congress"}},
		{Name: "Business", Keywords: []string{"business", "economy", "market", "stock", "finance", "investor", "company", "inflation"}},
		{Name: "Entertainment", Keywords: []string{"entertainment", "movie", "film", "music", "celebrity", "television", "concert"}},
		{Name: "Sports", Keywords: []string{"sports", "football", "soccer", "tennis", "olympic", "cricket", "basketball", "tournament"}},
		{Name: "Science", Keywords: []string{"science", "research", "space", "nasa", "physics", "climate", "scientist", "biology"}},
	}
}

// Classifier matches text against an ordered category table
type Classifier struct {
	table Table
}

// New makes a classifier for the table. Keywords are lower-cased and blank ones dropped,
// the caller's table is not modified. Empty table means DefaultTable.
func New(table Table) *Classifier {
	if len(table) == 0 {
		table = DefaultTable()
	}
	res := make(Table, 0, len(table))
	for _, c := range table {
		kws := make([]string, 0, len(c.Keywords))
		for _, k := range c.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				kws = append(kws, k)
			}
		}
		res = append(res, Category{Name: c.Name, Keywords: kws})
	}
	return &Classifier{table: res}
}

// Classify returns the first category with any keyword found in title or content,
// domain.DefaultCategory if nothing matches
func (c *Classifier) Classify(title, content string) string {
	text := strings.ToLower(title + " " + content)
	for _, cat := range c.table {
		for _, kw := range cat.Keywords {
			if strings.Contains(text, kw) {
				lgr.Printf("[DEBUG] classified %q as %s by %q", title, cat.Name, kw)
				return cat.Name
			}
		}
	}
	return domain.DefaultCategory
}

// Categories returns category names in table order
func (c *Classifier) Categories() []string {
	res := make([]string, 0, len(c.table))
	for _, cat := range c.table {
		res = append(res, cat.Name)
	}
	return res
}
