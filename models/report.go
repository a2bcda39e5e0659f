package models

// Issue is a single observation from the AI vehicle inspection
type Issue struct {
	Area           string `json:"area"`
	Observation    string `json:"observation"`
	Recommendation string `json:"recommendation"`
}

// DamageReport is the result of an AI vehicle analysis. Reports are
// ephemeral: they are returned to the caller and never persisted.
type DamageReport struct {
	Make              string  `json:"make"`
	Model             string  `json:"model"`
	Color             string  `json:"color"`
	PersuasiveSummary string  `json:"persuasiveSummary"`
	ExteriorIssues    []Issue `json:"exteriorIssues"`
	InteriorIssues    []Issue `json:"interiorIssues"`
	BestSuggestionKey string  `json:"bestSuggestionKey"`
	RiskScore         int     `json:"riskScore"` // 1-100
}

// DisplayRiskScore clamps the risk score to [0,100] for presentation
func (r *DamageReport) DisplayRiskScore() int {
	if r.RiskScore < 0 {
		return 0
	}
	if r.RiskScore > 100 {
		return 100
	}
	return r.RiskScore
}
