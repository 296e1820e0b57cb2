package tui

// Feature is a module card unlocked once the console session completes.
type Feature struct {
	Title    string
	Subtitle string
}

var features = []Feature{
	{Title: "Chaos Lab", Subtitle: "Stress-test your life against 47 crisis scenarios"},
	{Title: "Quantum Regret Engine", Subtitle: "Simulates timelines A vs B for major decisions"},
	{Title: "SDCC Protocol", Subtitle: "Self-Deception Collapse Core - Analyzes unrealistic life goals"},
}
