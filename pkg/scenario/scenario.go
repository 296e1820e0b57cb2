package scenario

// Scenario is a canned question and the answer the console prints for it.
type Scenario struct {
	Query    string `mapstructure:"query"`
	Response string `mapstructure:"response"`
	// Module is the simulated agent module credited with the answer.
	Module string `mapstructure:"module"`
}

// Default returns the stock LIFELOOP scenarios.
func Default() *Catalog {
	c := NewCatalog()
	c.Register(Scenario{
		Query:  "I want to retire at 40",
		Module: "SDCC Protocol",
		Response: `[SDCC Protocol Engaged]
Analyzing behavior patterns...
Current savings rate: 12%
Required: 45%
Self-deception level: HIGH
Suggested retirement age: 52`,
	})
	c.Register(Scenario{
		Query:  "What if I lose my job?",
		Module: "Chaos Lab",
		Response: `Chaos Lab activated. 
Net worth drop: -42%. 
Emergency fund: 2.1 months
Recommending buffer setup.
Recovery timeline: 8-14 months`,
	})
	c.Register(Scenario{
		Query:  "Should I buy a house now?",
		Module: "Quantum Regret Engine",
		Response: `Quantum Regret Engine processing...
Timeline A (Buy): +23% short-term stress, -15% long-term wealth
Timeline B (Wait): -8% opportunity cost, +31% flexibility
Regret probability: 67% if you don't buy`,
	})
	return c
}
