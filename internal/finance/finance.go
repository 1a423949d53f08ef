// Package finance holds crop economics and the structured recommendation
// records exchanged with the recommendation backends.
package finance

import (
	"errors"
	"fmt"
	"sort"
)

// Weather assumptions accepted by Calculate.
const (
	WeatherNormal      = "normal"
	WeatherFavorable   = "favorable"
	WeatherUnfavorable = "unfavorable"
)

// waterUnitCost is the rupee cost per unit of water requirement.
const waterUnitCost = 10

// Crop describes per-acre economics of a crop.
type Crop struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	SeedCost           float64 `json:"seedCost"`
	FertilizerCost     float64 `json:"fertilizerCost"`
	LaborCost          float64 `json:"laborCost"`
	WaterRequirement   float64 `json:"waterRequirement"`
	GrowthDays         int     `json:"growthDays"`
	ExpectedYield      float64 `json:"expectedYield"`
	CurrentPrice       float64 `json:"currentPrice"`
	WeatherSensitivity string  `json:"weatherSensitivity"` // low, medium, high
}

var catalog = map[string]Crop{
	"wheat":     {ID: "wheat", Name: "Wheat", SeedCost: 2000, FertilizerCost: 3500, LaborCost: 5000, WaterRequirement: 450, GrowthDays: 120, ExpectedYield: 40, CurrentPrice: 2200, WeatherSensitivity: "medium"},
	"rice":      {ID: "rice", Name: "Rice", SeedCost: 1800, FertilizerCost: 4000, LaborCost: 7000, WaterRequirement: 900, GrowthDays: 90, ExpectedYield: 50, CurrentPrice: 1900, WeatherSensitivity: "high"},
	"cotton":    {ID: "cotton", Name: "Cotton", SeedCost: 3000, FertilizerCost: 5000, LaborCost: 8000, WaterRequirement: 700, GrowthDays: 160, ExpectedYield: 25, CurrentPrice: 6000, WeatherSensitivity: "medium"},
	"sugarcane": {ID: "sugarcane", Name: "Sugarcane", SeedCost: 4000, FertilizerCost: 6000, LaborCost: 10000, WaterRequirement: 1200, GrowthDays: 360, ExpectedYield: 800, CurrentPrice: 300, WeatherSensitivity: "medium"},
	"soybean":   {ID: "soybean", Name: "Soybean", SeedCost: 2500, FertilizerCost: 3000, LaborCost: 4500, WaterRequirement: 500, GrowthDays: 100, ExpectedYield: 30, CurrentPrice: 3800, WeatherSensitivity: "low"},
}

// ErrUnknownCrop is returned by Calculate for crops outside the catalogue.
var ErrUnknownCrop = errors.New("unknown crop")

// LookupCrop returns the catalogue entry for id.
func LookupCrop(id string) (Crop, bool) {
	c, ok := catalog[id]
	return c, ok
}

// Crops lists the catalogue sorted by ID.
func Crops() []Crop {
	out := make([]Crop, 0, len(catalog))
	for _, c := range catalog {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CropResult is the economics of growing one crop on a given plot.
type CropResult struct {
	Crop                Crop    `json:"crop"`
	LandSize            float64 `json:"landSize"`
	InterestRate        float64 `json:"interestRate"`
	WeatherCondition    string  `json:"weatherCondition"`
	TotalSeedCost       float64 `json:"totalSeedCost"`
	TotalFertilizerCost float64 `json:"totalFertilizerCost"`
	TotalLaborCost      float64 `json:"totalLaborCost"`
	WaterCost           float64 `json:"waterCost"`
	TotalInvestment     float64 `json:"totalInvestment"`
	LoanInterest        float64 `json:"loanInterest"`
	AdjustedYield       float64 `json:"adjustedYield"`
	ExpectedRevenue     float64 `json:"expectedRevenue"`
	Profit              float64 `json:"profit"`
	ROI                 float64 `json:"roi"`
	BreakEvenPrice      float64 `json:"breakEvenPrice"`
}

// CalculationRequest is the input to Calculate.
type CalculationRequest struct {
	CropID           string  `json:"cropId"`
	LandSize         float64 `json:"landSize"`
	InterestRate     float64 `json:"interestRate"`
	WeatherCondition string  `json:"weatherCondition"`
}

// Calculate computes crop economics for a catalogue crop.
func Calculate(req CalculationRequest) (*CropResult, error) {
	crop, ok := catalog[req.CropID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCrop, req.CropID)
	}
	if req.LandSize <= 0 {
		return nil, fmt.Errorf("land size must be positive, got %v", req.LandSize)
	}

	weather := req.WeatherCondition
	if weather == "" {
		weather = WeatherNormal
	}

	land := req.LandSize
	r := &CropResult{
		Crop:                crop,
		LandSize:            land,
		InterestRate:        req.InterestRate,
		WeatherCondition:    weather,
		TotalSeedCost:       crop.SeedCost * land,
		TotalFertilizerCost: crop.FertilizerCost * land,
		TotalLaborCost:      crop.LaborCost * land,
		WaterCost:           crop.WaterRequirement * land * waterUnitCost,
	}
	r.TotalInvestment = r.TotalSeedCost + r.TotalFertilizerCost + r.TotalLaborCost + r.WaterCost
	r.LoanInterest = r.TotalInvestment * (req.InterestRate / 100)

	r.AdjustedYield = crop.ExpectedYield * land * yieldMultiplier(weather)
	r.ExpectedRevenue = r.AdjustedYield * crop.CurrentPrice
	r.Profit = r.ExpectedRevenue - (r.TotalInvestment + r.LoanInterest)
	r.ROI = r.Profit / r.TotalInvestment * 100
	if r.AdjustedYield > 0 {
		r.BreakEvenPrice = (r.TotalInvestment + r.LoanInterest) / r.AdjustedYield
	}
	return r, nil
}

func yieldMultiplier(weather string) float64 {
	switch weather {
	case WeatherFavorable:
		return 1.2
	case WeatherUnfavorable:
		return 0.8
	default:
		return 1
	}
}

// FarmerProfile is the free-form profile a farmer supplies for matching.
type FarmerProfile struct {
	Name          string  `json:"name,omitempty"`
	Age           int     `json:"age,omitempty"`
	Category      string  `json:"category,omitempty"`
	LandHolding   float64 `json:"landHolding,omitempty"`
	State         string  `json:"state,omitempty"`
	District      string  `json:"district,omitempty"`
	CreditScore   int     `json:"creditScore,omitempty"`
	ExistingLoans bool    `json:"existingLoans"`
}

// Region renders "district, state" using whichever parts are known.
func (p FarmerProfile) Region() string {
	switch {
	case p.District != "" && p.State != "":
		return p.District + ", " + p.State
	case p.State != "":
		return p.State
	case p.District != "":
		return p.District
	default:
		return "your region"
	}
}

// Loan is a structured loan recommendation. SuitabilityScore is documented
// as 0-100 but is passed through from the model unvalidated.
type Loan struct {
	Name               string   `json:"name"`
	Provider           string   `json:"provider"`
	InterestRate       string   `json:"interestRate"`
	MaxAmount          string   `json:"maxAmount"`
	Eligibility        string   `json:"eligibility"`
	Features           []string `json:"features"`
	ApplicationProcess string   `json:"applicationProcess"`
	Documents          []string `json:"documents"`
	SuitabilityScore   float64  `json:"suitabilityScore"`
	SuitabilityReason  string   `json:"suitabilityReason"`
}

// Subsidy is a structured subsidy recommendation.
type Subsidy struct {
	Name               string   `json:"name"`
	Provider           string   `json:"provider"`
	Benefit            string   `json:"benefit"`
	Eligibility        string   `json:"eligibility"`
	Features           []string `json:"features"`
	ApplicationProcess string   `json:"applicationProcess"`
	Documents          []string `json:"documents"`
	SuitabilityScore   float64  `json:"suitabilityScore"`
	SuitabilityReason  string   `json:"suitabilityReason"`
}

// FinancialAdvice is a narrative assessment of a CropResult.
type FinancialAdvice struct {
	Summary               string   `json:"summary"`
	ProfitabilityAnalysis string   `json:"profitabilityAnalysis"`
	RiskAssessment        string   `json:"riskAssessment"`
	Recommendations       []string `json:"recommendations"`
	AlternativeCrops      []string `json:"alternativeCrops,omitempty"`
}

// Scheme is a government scheme returned by the scheme finder.
type Scheme struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Eligibility         string   `json:"eligibility"`
	Benefits            string   `json:"benefits"`
	Documents           []string `json:"documents"`
	ApplicationProcess  string   `json:"applicationProcess"`
	Deadline            string   `json:"deadline"`
	Category            string   `json:"category"`
	CropTypes           []string `json:"cropTypes"`
	LandSizeRequirement string   `json:"landSizeRequirement"`
	FarmerCategory      string   `json:"farmerCategory"`
	AIRecommendation    string   `json:"aiRecommendation"`
	MatchScore          float64  `json:"matchScore"`
	ApplicationDeadline string   `json:"applicationDeadline"`
	EstimatedBenefit    string   `json:"estimatedBenefit"`
	ApplicationLink     string   `json:"applicationLink,omitempty"`
	FormDownloadLink    string   `json:"formDownloadLink,omitempty"`
}
