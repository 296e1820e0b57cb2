package scenario

// Catalog holds the registered scenarios keyed by their exact query.
type Catalog struct {
	index     map[string]int
	scenarios []Scenario
}

// NewCatalog creates an empty Catalog
func NewCatalog() *Catalog {
	return &Catalog{
		index: make(map[string]int),
	}
}

// FromList builds a catalog from scenarios in order.
func FromList(list []Scenario) *Catalog {
	c := NewCatalog()
	for _, s := range list {
		c.Register(s)
	}
	return c
}

// Register adds a scenario. Registering an existing query replaces its
// answer and keeps its original position.
func (c *Catalog) Register(s Scenario) {
	if i, ok := c.index[s.Query]; ok {
		c.scenarios[i] = s
		return
	}
	c.index[s.Query] = len(c.scenarios)
	c.scenarios = append(c.scenarios, s)
}

// Get retrieves a scenario by its exact query.
func (c *Catalog) Get(query string) (Scenario, bool) {
	i, ok := c.index[query]
	if !ok {
		return Scenario{}, false
	}
	return c.scenarios[i], true
}

// List returns all scenarios in registration order.
func (c *Catalog) List() []Scenario {
	out := make([]Scenario, len(c.scenarios))
	copy(out, c.scenarios)
	return out
}

// Queries returns the registered queries in registration order.
func (c *Catalog) Queries() []string {
	qs := make([]string, len(c.scenarios))
	for i, s := range c.scenarios {
		qs[i] = s.Query
	}
	return qs
}

// Len reports the number of scenarios.
func (c *Catalog) Len() int { return len(c.scenarios) }
