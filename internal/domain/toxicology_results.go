package domain

// Outcome categories for a toxicology screen.
const (
	OutcomePositive = "POSITIVO"
	OutcomeNegative = "NEGATIVO"
)

// ToxicologyResults holds the per-substance outcome of a toxicology screen.
// An empty string means the substance was not part of the screen.
type ToxicologyResults struct {
	Cocaine         string `json:"cocaina,omitempty"`
	Marijuana       string `json:"marihuana,omitempty"`
	Benzodiazepines string `json:"benzodiacepinas,omitempty"`
	Barbiturates    string `json:"barbituricos,omitempty"`
	Amphetamines    string `json:"anfetaminas,omitempty"`
}

// ResultEntry is one substance/outcome pair of a screen.
type ResultEntry struct {
	Substance string
	Outcome   string
}

// Entries returns the active (non-empty) results in declared substance order.
// The fixed order keeps document output reproducible across syncs.
func (r ToxicologyResults) Entries() []ResultEntry {
	all := []ResultEntry{
		{"COCAINA", r.Cocaine},
		{"MARIHUANA", r.Marijuana},
		{"BENZODIACEPINAS", r.Benzodiazepines},
		{"BARBITURICOS", r.Barbiturates},
		{"ANFETAMINAS", r.Amphetamines},
	}
	var active []ResultEntry
	for _, e := range all {
		if e.Outcome != "" {
			active = append(active, e)
		}
	}
	return active
}
