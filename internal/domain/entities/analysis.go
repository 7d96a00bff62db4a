package entities

// SPINAnalysis holds the four observation lists extracted from a debrief
// conversation. All four lists are always present; a missing dimension in
// the generator output becomes an empty list, never nil.
type SPINAnalysis struct {
	Situation   []string `json:"situation"`
	Problem     []string `json:"problem"`
	Implication []string `json:"implication"`
	NeedPayoff  []string `json:"needPayoff"`
}

// EmptySPINAnalysis returns an analysis with all four lists initialized.
func EmptySPINAnalysis() SPINAnalysis {
	return SPINAnalysis{
		Situation:   []string{},
		Problem:     []string{},
		Implication: []string{},
		NeedPayoff:  []string{},
	}
}

// Normalize replaces nil lists with empty ones, field by field.
func (a *SPINAnalysis) Normalize() {
	if a.Situation == nil {
		a.Situation = []string{}
	}
	if a.Problem == nil {
		a.Problem = []string{}
	}
	if a.Implication == nil {
		a.Implication = []string{}
	}
	if a.NeedPayoff == nil {
		a.NeedPayoff = []string{}
	}
}

// Score holds the 0-100 ratings for each SPIN dimension plus the overall
// mark. Overall is generator-supplied, not an aggregate of the other four.
type Score struct {
	Situation   int `json:"situation"`
	Problem     int `json:"problem"`
	Implication int `json:"implication"`
	NeedPayoff  int `json:"needPayoff"`
	Overall     int `json:"overall"`
}

// MeetingRecord is the finalized analysis of one sales meeting, produced at
// session close and immutable once stored.
type MeetingRecord struct {
	ID           string       `json:"id"`
	Date         string       `json:"date"`
	CustomerName string       `json:"customerName"`
	Summary      string       `json:"summary"`
	SPINAnalysis SPINAnalysis `json:"spinAnalysis"`
	Score        Score        `json:"score"`
	ActionPlan   []string     `json:"actionPlan"`
	Strengths    []string     `json:"strengths"`
	Improvements []string     `json:"improvements"`
	Conversation []Turn       `json:"conversation"`
}

// Normalize fills in defaults for every field independently so that a
// partially populated generator payload still yields a usable record.
func (m *MeetingRecord) Normalize() {
	if m.CustomerName == "" {
		m.CustomerName = "不明"
	}
	m.SPINAnalysis.Normalize()
	if m.ActionPlan == nil {
		m.ActionPlan = []string{}
	}
	if m.Strengths == nil {
		m.Strengths = []string{}
	}
	if m.Improvements == nil {
		m.Improvements = []string{}
	}
	if m.Conversation == nil {
		m.Conversation = []Turn{}
	}
}
