// Package memo builds the investment committee memo for a deal.
package memo

import "github.com/suteetoe/kazi/internal/model"

// Placeholder sections until the data room integration fills them.
const (
	financialSnapshot = "High-level metrics to be populated from data room"
	risks             = "Key risks to be identified during diligence"
	valuation         = "Valuation range to be determined"
)

// Assemble builds the memo from a deal and, when present, its mandate and company.
func Assemble(deal model.Deal, mandate *model.Mandate, company *model.Company) model.ICMemo {
	scope := "N/A"
	if mandate != nil && mandate.Scope != nil && *mandate.Scope != "" {
		scope = *mandate.Scope
	}

	sector := deal.CompanyName
	if company != nil && company.Sector != nil && *company.Sector != "" {
		sector = *company.Sector
	}

	return model.ICMemo{
		ThesisFit:         "Based on mandate scope: " + scope,
		Market:            "Sector: " + sector,
		BusinessModel:     deal.Description,
		FinancialSnapshot: financialSnapshot,
		Risks:             risks,
		Valuation:         valuation,
		DiligencePlan:     "Next steps for " + deal.Stage + " stage",
	}
}
