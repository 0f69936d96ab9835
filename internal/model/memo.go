package model

// ICMemo is the investment committee summary generated for a Deal.
type ICMemo struct {
	ThesisFit         string `json:"thesis_fit"`
	Market            string `json:"market"`
	BusinessModel     string `json:"business_model"`
	FinancialSnapshot string `json:"financial_snapshot"`
	Risks             string `json:"risks"`
	Valuation         string `json:"valuation"`
	DiligencePlan     string `json:"diligence_plan"`
}
