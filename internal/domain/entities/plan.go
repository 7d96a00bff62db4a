package entities

// Plan is a subscription tier offered at checkout. MaxUsers of 0 means
// unlimited.
type Plan struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int      `json:"price"` // monthly, JPY
	MaxUsers    int      `json:"maxUsers"`
	PriceID     string   `json:"priceId"`
	Features    []string `json:"features"`
	Highlighted bool     `json:"highlighted,omitempty"`
}

// PlanCatalog is the fixed set of offered plans with provider price IDs
// bound from configuration.
type PlanCatalog struct {
	plans []Plan
}

// NewPlanCatalog builds the catalog, binding each tier to its Stripe price ID.
func NewPlanCatalog(litePriceID, standardPriceID, enterprisePriceID string) *PlanCatalog {
	return &PlanCatalog{plans: []Plan{
		{
			ID:          "lite",
			Name:        "Lite",
			Description: "個人・小規模チーム向けスタータープラン",
			Price:       2500,
			MaxUsers:    5,
			PriceID:     litePriceID,
			Features: []string{
				"ユーザー5名まで",
				"SPIN分析レポート",
				"商談履歴（直近30件）",
				"メールサポート",
			},
		},
		{
			ID:          "standard",
			Name:        "Standard",
			Description: "成長期チームに最適なスタンダードプラン",
			Price:       4500,
			MaxUsers:    20,
			PriceID:     standardPriceID,
			Features: []string{
				"ユーザー20名まで",
				"SPIN分析レポート",
				"商談履歴（無制限）",
				"音声入力サポート",
				"チャットサポート",
				"単語登録（無制限）",
			},
			Highlighted: true,
		},
		{
			ID:          "enterprise",
			Name:        "Premium",
			Description: "大企業・エンタープライズ向けプレミアムプラン",
			Price:       9800,
			MaxUsers:    0,
			PriceID:     enterprisePriceID,
			Features: []string{
				"ユーザー数無制限",
				"SPIN分析レポート",
				"商談履歴（無制限）",
				"音声入力サポート",
				"専任サポート担当",
				"SLA保証",
				"カスタム連携対応",
			},
		},
	}}
}

// All returns every plan in display order.
func (c *PlanCatalog) All() []Plan {
	return c.plans
}

// ByID looks up a plan by its identifier.
func (c *PlanCatalog) ByID(id string) (Plan, bool) {
	for _, p := range c.plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// ByPriceID looks up a plan by its provider price ID.
func (c *PlanCatalog) ByPriceID(priceID string) (Plan, bool) {
	if priceID == "" {
		return Plan{}, false
	}
	for _, p := range c.plans {
		if p.PriceID == priceID {
			return p, true
		}
	}
	return Plan{}, false
}
