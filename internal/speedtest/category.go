package speedtest

import "github.com/google/uuid"

// categoryNamespace scopes the name-based identifiers of category labels.
var categoryNamespace = uuid.MustParse("6f1c2b0e-8a57-4d3e-9c1a-5b7e2f4d9a10")

// CategoryIndex maps free-form category labels to opaque identifiers that are
// safe to use as keys in UI elements. The same label always yields the same
// identifier, across sessions too.
type CategoryIndex struct {
	ids    map[string]string
	labels map[string]string
}

func NewCategoryIndex() *CategoryIndex {
	return &CategoryIndex{ids: make(map[string]string), labels: make(map[string]string)}
}

// ID returns the identifier for label, registering it on first use.
func (c *CategoryIndex) ID(label string) string {
	if id, ok := c.ids[label]; ok {
		return id
	}
	id := uuid.NewSHA1(categoryNamespace, []byte(label)).String()
	c.ids[label] = id
	c.labels[id] = label
	return id
}

// Label resolves an identifier previously handed out by ID.
func (c *CategoryIndex) Label(id string) (string, bool) {
	l, ok := c.labels[id]
	return l, ok
}
