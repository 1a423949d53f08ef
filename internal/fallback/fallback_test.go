package fallback

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joyal-jij0/pragati/internal/finance"
	"github.com/joyal-jij0/pragati/internal/language"
)

func TestEmbeddedTableCoversEveryLanguage(t *testing.T) {
	assert.True(t, Covers())
	assert.Equal(t, []string{"weather", "disease", "crop", "market", "scheme"}, Topics("hi"))
	assert.Equal(t, []string{"weather", "disease", "crop", "market", "scheme"}, Topics("en"))
	for _, code := range []string{"pa", "bn", "te", "ta", "mr", "gu", "kn"} {
		assert.Empty(t, Topics(code), code)
	}
}

func TestReply_HindiYellowSpotsIsDisease(t *testing.T) {
	code, cleaned := language.Extract("मेरी फसल में पीले धब्बे हैं [LANG:hi]")
	require.Equal(t, "hi", code)

	reply := Reply(cleaned, code, false)
	assert.NotEmpty(t, reply)
	assert.Contains(t, reply, "प्रभावित पत्तियों को हटाकर नष्ट करें")
	assert.Contains(t, reply, "फफूंदनाशक")
}

func TestReply_EnglishMarketPrice(t *testing.T) {
	code, cleaned := language.Extract("What is the market price? [LANG:en]")
	reply := Reply(cleaned, code, false)

	var priceLines int
	for _, line := range strings.Split(reply, "\n") {
		if strings.Contains(line, "₹") {
			priceLines++
		}
	}
	assert.GreaterOrEqual(t, priceLines, 1)
	assert.True(t, strings.HasPrefix(reply, "Current market prices"))
}

func TestReply_TopicOrder(t *testing.T) {
	// weather is checked before market.
	assert.Contains(t, Reply("weather and market price", "en", false), "clear skies")
	// images route to disease ahead of crop.
	assert.Contains(t, Reply("look at my crop", "en", true), "leaf blight")
	assert.Contains(t, Reply("look at my crop", "en", false), "Mustard")
	// keywords are matched case-insensitively.
	assert.Contains(t, Reply("Any SUBSIDY for me?", "en", false), "PM-KISAN")
}

func TestReply_GenericAndUnlistedLanguages(t *testing.T) {
	assert.True(t, strings.HasPrefix(Reply("hello", "en", false), "Thank you for your message"))

	// Languages without topics always get their generic reply, even for topic words.
	pa := Reply("weather", "pa", false)
	assert.True(t, strings.HasPrefix(pa, "ਤੁਹਾਡੇ ਸੁਨੇਹੇ ਲਈ ਧੰਨਵਾਦ"))
	assert.Equal(t, pa, Reply("market price", "pa", true))

	// Unknown codes use the documented fallback language.
	assert.Contains(t, Reply("market", "fr", false), "Current market prices")
}

func TestParseTable_Validation(t *testing.T) {
	_, err := ParseTable([]byte("fallback_language: en\nlanguages:\n  hi:\n    generic: x\n"))
	assert.Error(t, err)

	_, err = ParseTable([]byte("fallback_language: en\nlanguages:\n  en:\n    generic: x\n    topics:\n      - name: weather\n        keywords: [weather]\n"))
	assert.Error(t, err)

	tbl, err := ParseTable([]byte("fallback_language: en\nlanguages:\n  en:\n    generic: hi there\n"))
	require.NoError(t, err)
	assert.Equal(t, "hi there", tbl.Reply("anything", "xx", false))
}

func wheatPlan(t *testing.T, investment float64) finance.CropResult {
	t.Helper()
	crop, ok := finance.LookupCrop("wheat")
	require.True(t, ok)
	return finance.CropResult{Crop: crop, LandSize: 2, TotalInvestment: investment, InterestRate: 7, WeatherCondition: finance.WeatherNormal}
}

func TestLoans_WheatScenario(t *testing.T) {
	loans := Loans(wheatPlan(t, 50000))
	require.Len(t, loans, 3)
	for _, l := range loans {
		assert.Contains(t, l.SuitabilityReason, "Wheat")
		assert.True(t, strings.HasPrefix(l.MaxAmount, "₹"))
	}
	assert.Equal(t, "Kisan Credit Card", loans[0].Name)
	assert.Equal(t, "NABARD", loans[1].Provider)
	assert.Equal(t, "District Cooperative Bank", loans[2].Provider)
	// 1.5x of 50,000 and 1.2x of 50,000 both render "75,000" / "60,000" in any grouping.
	assert.Contains(t, loans[0].MaxAmount, "75,000")
	assert.Contains(t, loans[2].MaxAmount, "60,000")
}

func TestLoans_KCCCappedAtThreeLakh(t *testing.T) {
	capped := Loans(wheatPlan(t, 1_000_000))[0].MaxAmount
	assert.Equal(t, capped, Loans(wheatPlan(t, 250_000))[0].MaxAmount)
}

func TestLoansForProfile_NamesRegion(t *testing.T) {
	loans := LoansForProfile(finance.FarmerProfile{District: "Karnal", State: "Haryana", LandHolding: 2})
	require.Len(t, loans, 3)
	for _, l := range loans {
		assert.Contains(t, l.SuitabilityReason, "Karnal, Haryana")
	}
	// 2 acres x 25,000 = 50,000; Crop Loan is 1.2x.
	assert.Contains(t, loans[2].MaxAmount, "60,000")
}

func TestSubsidies_ReferenceCrop(t *testing.T) {
	subs := Subsidies(wheatPlan(t, 30000))
	require.Len(t, subs, 3)
	assert.Equal(t, "PM-KISAN", subs[0].Name)
	assert.Equal(t, "Wheat Specific Subsidy Scheme", subs[1].Name)
	assert.Equal(t, "Micro Irrigation Subsidy", subs[2].Name)
	for _, s := range subs {
		assert.Contains(t, s.SuitabilityReason, "Wheat")
	}
}

func TestAdvice_Bands(t *testing.T) {
	r, err := finance.Calculate(finance.CalculationRequest{CropID: "wheat", LandSize: 2, InterestRate: 7})
	require.NoError(t, err)

	advice := Advice(*r)
	assert.Contains(t, advice.Summary, "high profitability")
	assert.Contains(t, advice.Summary, "positive")
	assert.Contains(t, advice.RiskAssessment, "moderate sensitivity")
	assert.Len(t, advice.Recommendations, 5)
	assert.Nil(t, advice.AlternativeCrops)

	low := *r
	low.ROI = 10
	low.Profit = -500
	lowAdvice := Advice(low)
	assert.Contains(t, lowAdvice.Summary, "low profitability")
	assert.Contains(t, lowAdvice.Summary, "concerning")
	assert.Contains(t, lowAdvice.ProfitabilityAnalysis, "loss of ₹500.00")
	assert.Equal(t, []string{"Barley", "Rice", "Cotton"}, lowAdvice.AlternativeCrops)
}

func TestSchemesAndRoadmap(t *testing.T) {
	schemes := Schemes()
	require.Len(t, schemes, 3)
	assert.Equal(t, "PM-KISAN", schemes[0].Title)

	en := Roadmap(schemes[0], "en")
	require.Len(t, en, 10)
	assert.Equal(t, "📋 Step 1: Gather all required documents (Aadhaar Card, Land Records, Bank Passbook)", en[0])

	hi := Roadmap(schemes[0], "hi")
	require.Len(t, hi, 10)
	assert.Contains(t, hi[0], "चरण 1")
	assert.Contains(t, Roadmap(schemes[0], "pa")[9], "ਕਦਮ 10")
	assert.Equal(t, en, Roadmap(schemes[0], "ta"))
}

func TestStructuredFallbackIsIdempotent(t *testing.T) {
	plan := wheatPlan(t, 42_500)
	profile := finance.FarmerProfile{State: "Punjab", LandHolding: 3}

	first, err := json.Marshal([]any{Loans(plan), LoansForProfile(profile), Subsidies(plan), Advice(plan), Schemes(), Roadmap(Schemes()[1], "hi"), Reply("मौसम", "hi", false)})
	require.NoError(t, err)
	second, err := json.Marshal([]any{Loans(plan), LoansForProfile(profile), Subsidies(plan), Advice(plan), Schemes(), Roadmap(Schemes()[1], "hi"), Reply("मौसम", "hi", false)})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
