package analytics

import "math"

// LoanRequest is the input to the loan eligibility check. Money fields
// are in cents; CreditScore is the usual 300-850 range.
type LoanRequest struct {
	Income          int64  `json:"income" binding:"required"` // monthly income
	CreditScore     int    `json:"credit_score" binding:"required"`
	DurationMonths  int    `json:"duration_months" binding:"required"`
	AmountRequested int64  `json:"amount_requested" binding:"required"`
	Purpose         string `json:"purpose"`
	AvgBalance      int64  `json:"avg_balance"`
	GoalStreak      int    `json:"goal_streak"` // months of met savings goals
}

// LoanDecision is the outcome of the eligibility check.
type LoanDecision struct {
	Approved       bool    `json:"approved"`
	Reason         string  `json:"reason,omitempty"`
	Score          float64 `json:"score"`
	APR            float64 `json:"apr,omitempty"`
	MonthlyPayment int64   `json:"monthly_payment,omitempty"`
	TotalPayment   int64   `json:"total_payment,omitempty"`
	DTI            float64 `json:"dti,omitempty"`
}

// purposeWeights penalize riskier loan purposes; unknown purposes get
// the highest weight.
var purposeWeights = map[string]float64{
	"Auto":               0.10,
	"Home":               0.15,
	"Education":          0.20,
	"Medical":            0.25,
	"Business":           0.30,
	"Debt Consolidation": 0.35,
	"Personal":           0.40,
}

const defaultPurposeWeight = 0.40

// CalculateLoan scores a loan request from local data only: credit
// score, balance relative to income, savings-goal streak, and payment
// burden. Scores map to APR tiers; the amortized payment is then checked
// against debt-to-income cutoffs.
func CalculateLoan(req LoanRequest) LoanDecision {
	if req.Income <= 0 {
		return LoanDecision{Reason: "income must be greater than zero"}
	}
	if req.AmountRequested <= 0 {
		return LoanDecision{Reason: "loan amount must be positive"}
	}
	if req.DurationMonths <= 0 {
		return LoanDecision{Reason: "duration must be at least 1 month"}
	}

	riskWeight, ok := purposeWeights[req.Purpose]
	if !ok {
		riskWeight = defaultPurposeWeight
	}

	income := float64(req.Income)
	amount := float64(req.AmountRequested)

	balanceFactor := clamp(float64(req.AvgBalance)/(income*3), 0, 1)
	goalFactor := clamp(float64(req.GoalStreak)/6, 0, 1)
	creditFactor := clamp(float64(req.CreditScore)/850, 0, 1)
	burdenFactor := clamp(income/(amount*5), 0, 1)

	score := 0.45*creditFactor + 0.20*balanceFactor + 0.15*goalFactor + 0.20*burdenFactor
	score = math.Max(score-riskWeight*0.3, 0)
	score = math.Round(score*1000) / 1000

	var apr float64
	switch {
	case score >= 0.70:
		apr = 0.07
	case score >= 0.55:
		apr = 0.12
	case score >= 0.40:
		apr = 0.18
	default:
		return LoanDecision{Score: score, Reason: "financial score too low for approval"}
	}

	monthlyRate := apr / 12
	monthlyPayment := (monthlyRate * amount) / (1 - math.Pow(1+monthlyRate, -float64(req.DurationMonths)))
	totalPayment := monthlyPayment * float64(req.DurationMonths)

	dti := monthlyPayment / income
	dti = math.Round(dti*10000) / 10000

	if dti > 1.0 {
		return LoanDecision{Score: score, DTI: dti, Reason: "requested monthly payment exceeds income"}
	}
	if dti > 0.45 && score < 0.55 {
		return LoanDecision{Score: score, DTI: dti, Reason: "debt-to-income ratio too high for current financial profile"}
	}

	return LoanDecision{
		Approved:       true,
		Score:          score,
		APR:            apr,
		MonthlyPayment: int64(math.Round(monthlyPayment)),
		TotalPayment:   int64(math.Round(totalPayment)),
		DTI:            dti,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
