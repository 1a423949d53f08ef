// Package gemini implements the Recommender interface against Google's
// Generative Language generate-content REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/joyal-jij0/pragati/internal/config"
	"github.com/joyal-jij0/pragati/internal/finance"
	"github.com/joyal-jij0/pragati/internal/language"
	"github.com/joyal-jij0/pragati/internal/provider"
	"github.com/joyal-jij0/pragati/internal/recommend"
)

const name = "gemini"

// Generation settings per operation.
const (
	factualTemperature  = 0.2
	advisoryTemperature = 0.3
	defaultMaxTokens    = 2048
	schemesMaxTokens    = 4096
)

// stepWords mark roadmap lines in every supported script.
var stepWords = []string{"Step", "चरण", "ਕਦਮ", "પગલું", "पाऊल", "ধাপ", "దశ", "படி"}

// Recommender calls generate-content and decodes the embedded JSON.
type Recommender struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// New creates a Gemini recommender from config.
func New(cfg config.GeminiConfig) *Recommender {
	return &Recommender{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client:  &http.Client{},
	}
}

// Name returns the backend identifier.
func (r *Recommender) Name() string { return name }

// Loans recommends loan products for a calculated crop plan.
func (r *Recommender) Loans(ctx context.Context, crop finance.CropResult, profile finance.FarmerProfile) ([]finance.Loan, error) {
	var sb strings.Builder
	sb.WriteString("You are an expert on Indian agricultural finance and loan schemes.\n")
	sb.WriteString("Based on the following crop calculation results and farmer profile, recommend the most suitable loan schemes.\n\n")
	writeCropSummary(&sb, crop)
	fmt.Fprintf(&sb, "Loan Interest Rate Used in Calculation: %v%%\n\n", crop.InterestRate)
	writeProfile(&sb, profile)
	sb.WriteString("Please provide 3-5 loan schemes that would be most suitable for this farmer.\n")
	sb.WriteString("Format your response as a valid JSON array with the following structure for each loan:\n")
	sb.WriteString(loanSchema)

	var loans []finance.Loan
	if err := r.generateJSON(ctx, "loans", sb.String(), factualTemperature, defaultMaxTokens, recommend.Array, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// LoansForProfile recommends loan products from the farmer profile alone.
func (r *Recommender) LoansForProfile(ctx context.Context, profile finance.FarmerProfile) ([]finance.Loan, error) {
	var sb strings.Builder
	sb.WriteString("You are an expert on Indian agricultural finance and loan schemes.\n")
	sb.WriteString("Based on the following farmer profile, recommend the most suitable loan schemes.\n\n")
	writeProfile(&sb, profile)
	sb.WriteString("Please provide 3-5 loan schemes that would be most suitable for this farmer.\n")
	sb.WriteString("Format your response as a valid JSON array with the following structure for each loan:\n")
	sb.WriteString(loanSchema)

	var loans []finance.Loan
	if err := r.generateJSON(ctx, "loans", sb.String(), factualTemperature, defaultMaxTokens, recommend.Array, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// Subsidies recommends subsidy schemes for a calculated crop plan.
func (r *Recommender) Subsidies(ctx context.Context, crop finance.CropResult, profile finance.FarmerProfile) ([]finance.Subsidy, error) {
	var sb strings.Builder
	sb.WriteString("You are an expert on Indian agricultural subsidies and government schemes.\n")
	sb.WriteString("Based on the following crop calculation results and farmer profile, recommend the most suitable subsidy schemes.\n\n")
	writeCropSummary(&sb, crop)
	sb.WriteString("\n")
	writeProfile(&sb, profile)
	sb.WriteString("Please provide 3-5 subsidy schemes that would be most suitable for this farmer.\n")
	sb.WriteString("Format your response as a valid JSON array with the following structure for each subsidy:\n")
	sb.WriteString(subsidySchema)

	var subsidies []finance.Subsidy
	if err := r.generateJSON(ctx, "subsidies", sb.String(), factualTemperature, defaultMaxTokens, recommend.Array, &subsidies); err != nil {
		return nil, err
	}
	return subsidies, nil
}

// Advice produces a narrative financial assessment of a crop plan.
func (r *Recommender) Advice(ctx context.Context, crop finance.CropResult) (*finance.FinancialAdvice, error) {
	var sb strings.Builder
	sb.WriteString("You are an expert agricultural financial advisor.\n")
	sb.WriteString("Based on the following crop calculation results, provide detailed financial advice.\n\n")
	fmt.Fprintf(&sb, "Crop: %s\n", crop.Crop.Name)
	fmt.Fprintf(&sb, "Land Size: %v acres\n", crop.LandSize)
	fmt.Fprintf(&sb, "Seed Cost: ₹%.2f\n", crop.TotalSeedCost)
	fmt.Fprintf(&sb, "Fertilizer Cost: ₹%.2f\n", crop.TotalFertilizerCost)
	fmt.Fprintf(&sb, "Labor Cost: ₹%.2f\n", crop.TotalLaborCost)
	fmt.Fprintf(&sb, "Water Cost: ₹%.2f\n", crop.WaterCost)
	fmt.Fprintf(&sb, "Total Investment: ₹%.2f\n", crop.TotalInvestment)
	fmt.Fprintf(&sb, "Loan Interest: ₹%.2f\n", crop.LoanInterest)
	fmt.Fprintf(&sb, "Expected Yield: %.2f units\n", crop.AdjustedYield)
	fmt.Fprintf(&sb, "Expected Revenue: ₹%.2f\n", crop.ExpectedRevenue)
	fmt.Fprintf(&sb, "Expected Profit: ₹%.2f\n", crop.Profit)
	fmt.Fprintf(&sb, "ROI: %.2f%%\n", crop.ROI)
	fmt.Fprintf(&sb, "Break-even Price: ₹%.2f per unit\n\n", crop.BreakEvenPrice)
	sb.WriteString("Please provide comprehensive financial advice with the following sections:\n")
	sb.WriteString("1. Summary of financial outlook\n")
	sb.WriteString("2. Profitability analysis\n")
	sb.WriteString("3. Risk assessment\n")
	sb.WriteString("4. Specific recommendations to improve profitability\n")
	sb.WriteString("5. Alternative crops to consider (if applicable)\n\n")
	sb.WriteString("Format your response as a valid JSON object with the following structure:\n")
	sb.WriteString(adviceSchema)

	var advice finance.FinancialAdvice
	if err := r.generateJSON(ctx, "advice", sb.String(), advisoryTemperature, defaultMaxTokens, recommend.Object, &advice); err != nil {
		return nil, err
	}
	return &advice, nil
}

// Schemes searches government schemes matching the caller's criteria.
func (r *Recommender) Schemes(ctx context.Context, criteria string) ([]finance.Scheme, error) {
	var sb strings.Builder
	sb.WriteString("You are an expert on Indian agricultural schemes and government programs for farmers.\n")
	sb.WriteString("Your task is to provide accurate, detailed information about schemes that match the user's criteria.\n")
	sb.WriteString("Format your response as a valid JSON array of schemes with all the required fields:\n")
	sb.WriteString(schemeSchema)
	sb.WriteString("\nCriteria:\n")
	sb.WriteString(criteria)
	sb.WriteString("\n")

	var schemes []finance.Scheme
	if err := r.generateJSON(ctx, "schemes", sb.String(), factualTemperature, schemesMaxTokens, recommend.Array, &schemes); err != nil {
		return nil, err
	}
	return schemes, nil
}

// Roadmap asks for step-by-step application instructions and keeps only the
// lines that carry a step marker.
func (r *Recommender) Roadmap(ctx context.Context, scheme finance.Scheme, lang string) ([]string, error) {
	var sb strings.Builder
	sb.WriteString("Create a detailed step-by-step roadmap for applying to the following government scheme:\n\n")
	fmt.Fprintf(&sb, "Scheme Name: %s\n", scheme.Title)
	fmt.Fprintf(&sb, "Description: %s\n", scheme.Description)
	fmt.Fprintf(&sb, "Eligibility: %s\n", scheme.Eligibility)
	fmt.Fprintf(&sb, "Required Documents: %s\n", strings.Join(scheme.Documents, ", "))
	fmt.Fprintf(&sb, "Application Process: %s\n\n", scheme.ApplicationProcess)
	sb.WriteString("Important instructions:\n")
	fmt.Fprintf(&sb, "1. Respond in %s language.\n", language.DisplayName(lang))
	sb.WriteString("2. Format your response as a detailed list of actionable steps that a farmer should follow to successfully apply for this scheme.\n")
	sb.WriteString("3. Each step should start with an emoji followed by \"Step X:\" and then the instruction.\n")
	sb.WriteString("4. Include as many steps as needed to fully explain the process.\n")
	sb.WriteString("5. Include information about where to find forms, how to fill them, and where to submit them.\n")
	sb.WriteString("6. Include relevant URLs, contact information, and helpline numbers where applicable.\n")
	sb.WriteString("7. Make the instructions simple enough for farmers with limited technical knowledge to understand.\n")
	sb.WriteString("8. Include information about tracking the application status after submission.\n")

	text, err := r.generate(ctx, "roadmap", sb.String(), advisoryTemperature, defaultMaxTokens)
	if err != nil {
		return nil, err
	}

	steps := extractSteps(text)
	if len(steps) == 0 {
		return nil, &recommend.Error{Op: "roadmap", Message: "no steps found in model output"}
	}
	return steps, nil
}

func extractSteps(text string) []string {
	var steps []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, w := range stepWords {
			if strings.Contains(line, w) {
				steps = append(steps, line)
				break
			}
		}
	}
	return steps
}

// generateJSON runs one generation and decodes the embedded JSON into out.
func (r *Recommender) generateJSON(ctx context.Context, op, prompt string, temperature float64, maxTokens int, shape recommend.Shape, out any) error {
	text, err := r.generate(ctx, op, prompt, temperature, maxTokens)
	if err != nil {
		return err
	}
	if err := recommend.Decode(text, shape, out); err != nil {
		return &recommend.Error{Op: op, Message: err.Error(), Err: err}
	}
	return nil
}

// generate sends one generate-content request and returns the first
// candidate's text.
func (r *Recommender) generate(ctx context.Context, op, prompt string, temperature float64, maxTokens int) (string, error) {
	start := time.Now()

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxTokens,
		},
	})
	if err != nil {
		return "", &recommend.Error{Op: op, Message: "marshalling request", Err: err}
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", r.baseURL, r.model, url.QueryEscape(r.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &recommend.Error{Op: op, Message: "creating request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", &recommend.Error{Op: op, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.Unmarshal(respBody, &apiErr)
		return "", &recommend.Error{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    provider.StatusMessage(resp.StatusCode, apiErr.Error.Message),
		}
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", &recommend.Error{Op: op, Message: "decoding response", Err: err}
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", &recommend.Error{Op: op, Message: "no response from generate-content API"}
	}

	text := gr.Candidates[0].Content.Parts[0].Text
	slog.Debug("gemini generation complete",
		"op", op,
		"model", r.model,
		"text_length", len(text),
		"duration_ms", time.Since(start).Milliseconds())
	return text, nil
}

func writeCropSummary(sb *strings.Builder, crop finance.CropResult) {
	fmt.Fprintf(sb, "Crop: %s\n", crop.Crop.Name)
	fmt.Fprintf(sb, "Land Size: %v acres\n", crop.LandSize)
	fmt.Fprintf(sb, "Total Investment Needed: ₹%.2f\n", crop.TotalInvestment)
	fmt.Fprintf(sb, "Expected Revenue: ₹%.2f\n", crop.ExpectedRevenue)
	fmt.Fprintf(sb, "Expected Profit: ₹%.2f\n", crop.Profit)
	fmt.Fprintf(sb, "ROI: %.2f%%\n", crop.ROI)
}

func writeProfile(sb *strings.Builder, profile finance.FarmerProfile) {
	raw, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		raw = []byte("{}")
	}
	sb.WriteString("Farmer Profile:\n")
	sb.Write(raw)
	sb.WriteString("\n\n")
}

const loanSchema = `[
  {
    "name": "Loan Name",
    "provider": "Bank/Institution Name",
    "interestRate": "X% p.a.",
    "maxAmount": "₹X,XX,XXX",
    "eligibility": "Eligibility criteria",
    "features": ["Feature 1", "Feature 2", "Feature 3"],
    "applicationProcess": "How to apply",
    "documents": ["Document 1", "Document 2", "Document 3"],
    "suitabilityScore": 95,
    "suitabilityReason": "Explanation of why this loan is suitable"
  }
]
suitabilityScore is a 0-100 score indicating how suitable the loan is.
`

const subsidySchema = `[
  {
    "name": "Subsidy Name",
    "provider": "Government Department/Agency",
    "benefit": "Benefit description (e.g., '50% subsidy on equipment')",
    "eligibility": "Eligibility criteria",
    "features": ["Feature 1", "Feature 2", "Feature 3"],
    "applicationProcess": "How to apply",
    "documents": ["Document 1", "Document 2", "Document 3"],
    "suitabilityScore": 95,
    "suitabilityReason": "Explanation of why this subsidy is suitable"
  }
]
suitabilityScore is a 0-100 score indicating how suitable the subsidy is.
`

const adviceSchema = `{
  "summary": "Overall financial outlook summary",
  "profitabilityAnalysis": "Detailed analysis of profitability",
  "riskAssessment": "Assessment of financial risks",
  "recommendations": ["Recommendation 1", "Recommendation 2", "Recommendation 3"],
  "alternativeCrops": ["Crop 1", "Crop 2", "Crop 3"]
}
alternativeCrops is optional.
`

const schemeSchema = `[
  {
    "id": "scheme-1",
    "title": "Scheme Name",
    "description": "What the scheme provides",
    "eligibility": "Who can apply",
    "benefits": "Benefit summary",
    "documents": ["Document 1", "Document 2"],
    "applicationProcess": "How to apply",
    "deadline": "Ongoing",
    "category": "income-support | insurance | credit | subsidy",
    "cropTypes": ["all"],
    "landSizeRequirement": "any",
    "farmerCategory": "all",
    "aiRecommendation": "Why this scheme fits the criteria",
    "matchScore": 90,
    "applicationDeadline": "Ongoing",
    "estimatedBenefit": "₹X per year",
    "applicationLink": "https://...",
    "formDownloadLink": "https://..."
  }
]
`

// --- Wire types ---

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}
