package fallback

import (
	"fmt"
	"math"
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joyal-jij0/pragati/internal/finance"
)

// perAcreInvestment estimates working capital when only land holding is known.
const perAcreInvestment = 25000

var inr = message.NewPrinter(xlanguage.MustParse("en-IN"))

// rupees formats a whole-rupee amount with Indian digit grouping.
func rupees(v float64) string {
	return inr.Sprintf("₹%d", int64(math.Round(v)))
}

// Loans synthesizes three loan products sized from the plan's investment.
func Loans(crop finance.CropResult) []finance.Loan {
	name := crop.Crop.Name
	return loanProducts(crop.TotalInvestment, [3]string{
		fmt.Sprintf("Ideal for %s cultivation with low interest rate and flexible repayment options", name),
		fmt.Sprintf("Good for long-term investment in %s cultivation with higher loan amount", name),
		fmt.Sprintf("Convenient option for %s farmers with cooperative membership and quick processing", name),
	}, fmt.Sprintf("Suitable for %s cultivation", name))
}

// LoansForProfile synthesizes the same products from a farmer profile,
// estimating investment from land holding.
func LoansForProfile(profile finance.FarmerProfile) []finance.Loan {
	acres := profile.LandHolding
	if acres <= 0 {
		acres = 1
	}
	region := profile.Region()
	return loanProducts(acres*perAcreInvestment, [3]string{
		fmt.Sprintf("Widely available to farmers in %s with low interest rate and flexible repayment options", region),
		fmt.Sprintf("Suits long-term farm investment in %s where larger amounts are needed", region),
		fmt.Sprintf("Convenient for cooperative members in %s with quick local processing", region),
	}, fmt.Sprintf("Available across %s", region))
}

func loanProducts(investment float64, reasons [3]string, kccFeature string) []finance.Loan {
	return []finance.Loan{
		{
			Name:         "Kisan Credit Card",
			Provider:     "State Bank of India",
			InterestRate: "7% p.a. (4% with interest subvention)",
			MaxAmount:    rupees(math.Min(300000, math.Round(investment*1.5))),
			Eligibility:  "All farmers with land ownership documents",
			Features: []string{
				"No collateral up to ₹1,60,000",
				"Interest subvention of 3%",
				"Flexible repayment options",
				kccFeature,
			},
			ApplicationProcess: "Apply at your nearest SBI branch with required documents",
			Documents:          []string{"Land Records", "Identity Proof", "Address Proof", "Passport Size Photo"},
			SuitabilityScore:   95,
			SuitabilityReason:  reasons[0],
		},
		{
			Name:         "Agriculture Term Loan",
			Provider:     "NABARD",
			InterestRate: "8.5% p.a.",
			MaxAmount:    rupees(investment * 2),
			Eligibility:  "Farmers with good credit history and land ownership",
			Features: []string{
				"Longer repayment period (3-7 years)",
				"Moratorium period available",
				"Can be used for equipment purchase",
				"Higher loan amount available",
			},
			ApplicationProcess: "Apply through any commercial bank that has refinance arrangement with NABARD",
			Documents:          []string{"Land Records", "Farm Development Plan", "Identity Proof", "Bank Statements"},
			SuitabilityScore:   85,
			SuitabilityReason:  reasons[1],
		},
		{
			Name:         "Crop Loan",
			Provider:     "District Cooperative Bank",
			InterestRate: "6% p.a.",
			MaxAmount:    rupees(investment * 1.2),
			Eligibility:  "Member of local cooperative society",
			Features: []string{
				"Lower interest rate",
				"Simple application process",
				"Local support available",
				"Quick disbursement",
			},
			ApplicationProcess: "Apply through your local cooperative society",
			Documents:          []string{"Land Records", "Identity Proof", "Cooperative Membership Proof"},
			SuitabilityScore:   80,
			SuitabilityReason:  reasons[2],
		},
	}
}

// Subsidies synthesizes three subsidy schemes referencing the plan's crop.
func Subsidies(crop finance.CropResult) []finance.Subsidy {
	name := crop.Crop.Name
	return []finance.Subsidy{
		{
			Name:        "PM-KISAN",
			Provider:    "Government of India",
			Benefit:     "₹6,000 per year direct income support",
			Eligibility: "All landholding farmer families with cultivable land",
			Features: []string{
				"Direct benefit transfer to bank account",
				"No repayment required",
				"Paid in three equal installments",
				"Simple verification process",
			},
			ApplicationProcess: "Apply online through PM-KISAN portal or visit your nearest Common Service Center",
			Documents:          []string{"Aadhaar Card", "Land Records", "Bank Account Details"},
			SuitabilityScore:   90,
			SuitabilityReason:  fmt.Sprintf("Universal income support that applies to %s growers like every other landholding farmer", name),
		},
		{
			Name:        name + " Specific Subsidy Scheme",
			Provider:    "State Agriculture Department",
			Benefit:     fmt.Sprintf("30-50%% subsidy on %s seeds and fertilizers", name),
			Eligibility: fmt.Sprintf("Farmers cultivating %s in the current season", name),
			Features: []string{
				"Direct reduction in input costs",
				"Quality certified seeds provided",
				"Technical guidance included",
				"Soil testing services",
			},
			ApplicationProcess: "Register with your local Agriculture Department office before the sowing season",
			Documents:          []string{"Land Records", "Identity Proof", "Bank Account Details", "Previous Season Crop Records"},
			SuitabilityScore:   95,
			SuitabilityReason:  fmt.Sprintf("Specifically designed for %s cultivation, directly reducing your input costs", name),
		},
		{
			Name:        "Micro Irrigation Subsidy",
			Provider:    "Ministry of Agriculture",
			Benefit:     "55-85% subsidy on drip/sprinkler irrigation systems",
			Eligibility: "All farmers adopting micro-irrigation technology",
			Features: []string{
				"Significant water conservation",
				"Reduced electricity costs",
				"Improved crop yield",
				"Long-term benefits",
			},
			ApplicationProcess: "Apply through your district agriculture office or online portal",
			Documents:          []string{"Land Records", "Bank Account Details", "Water Source Proof", "Farm Layout Plan"},
			SuitabilityScore:   85,
			SuitabilityReason:  fmt.Sprintf("Will help optimize water usage for %s cultivation and reduce long-term costs", name),
		},
	}
}

// Advice derives a financial assessment from the plan's own numbers.
func Advice(crop finance.CropResult) finance.FinancialAdvice {
	name := crop.Crop.Name
	roi := crop.ROI
	profit := crop.Profit

	profitability := "moderate"
	if roi > 50 {
		profitability = "high"
	}
	if roi < 20 {
		profitability = "low"
	}

	risk := "moderate"
	switch crop.Crop.WeatherSensitivity {
	case "high":
		risk = "high"
	case "low":
		risk = "low"
	}

	outlook, outcome := "positive", "profit"
	if profit <= 0 {
		outlook, outcome = "concerning", "loss"
	}

	breakEvenSide := "above"
	if crop.BreakEvenPrice < crop.Crop.CurrentPrice {
		breakEvenSide = "below"
	}

	yieldEffect := "0%"
	switch crop.WeatherCondition {
	case finance.WeatherFavorable:
		yieldEffect = "+20%"
	case finance.WeatherUnfavorable:
		yieldEffect = "-20%"
	}

	advice := finance.FinancialAdvice{
		Summary: fmt.Sprintf("Your %s cultivation shows %s profitability with an ROI of %.2f%% and expected profit of ₹%.2f. The overall financial outlook is %s.",
			name, profitability, roi, profit, outlook),
		ProfitabilityAnalysis: fmt.Sprintf("The investment of ₹%.2f is expected to generate revenue of ₹%.2f, resulting in a %s of ₹%.2f. Your break-even price is ₹%.2f per unit, which is %s the current market price of %s.",
			crop.TotalInvestment, crop.ExpectedRevenue, outcome, math.Abs(profit), crop.BreakEvenPrice, breakEvenSide, rupees(crop.Crop.CurrentPrice)),
		RiskAssessment: fmt.Sprintf("%s has %s sensitivity to weather conditions. Your current weather assumption is %q which affects yield by %s. Market price fluctuations and unexpected pest/disease outbreaks remain additional risk factors.",
			name, risk, crop.WeatherCondition, yieldEffect),
		Recommendations: []string{
			pick(crop.InterestRate > 7,
				"Consider refinancing at a lower interest rate to optimize financial outcomes.",
				"Consider maintaining your current loan terms to optimize financial outcomes."),
			pick(crop.TotalFertilizerCost > crop.TotalSeedCost*2,
				"Reduce fertilizer usage through soil testing and targeted application",
				"Maintain current input balance"),
			fmt.Sprintf("Explore crop insurance options to mitigate the %s weather sensitivity risk of %s", risk, name),
			pick(roi < 30,
				"Consider diversifying with companion crops to improve overall farm profitability",
				"Focus on optimizing current cultivation practices"),
			pick(crop.WaterCost > crop.TotalInvestment*0.2,
				"Invest in water conservation technologies to reduce ongoing costs",
				"Maintain current water management practices"),
		},
	}

	if roi < 30 {
		advice.AlternativeCrops = []string{
			pick(name == "Wheat", "Barley", "Wheat"),
			pick(name == "Rice", "Pulses", "Rice"),
			pick(name == "Cotton", "Soybean", "Cotton"),
		}
	}
	return advice
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

// Schemes returns the standing set of central schemes.
func Schemes() []finance.Scheme {
	return []finance.Scheme{
		{
			ID:                  "scheme-1",
			Title:               "PM-KISAN",
			Description:         "Direct income support of ₹6,000 per year to farmer families",
			Eligibility:         "All landholding farmer families with cultivable land",
			Benefits:            "₹6,000 per year in three equal installments",
			Documents:           []string{"Aadhaar Card", "Land Records", "Bank Passbook"},
			ApplicationProcess:  "Online through PM-KISAN portal or through Common Service Centers",
			Deadline:            "Ongoing",
			Category:            "income-support",
			CropTypes:           []string{"all"},
			LandSizeRequirement: "any",
			FarmerCategory:      "all",
			AIRecommendation:    "Every landholding farmer family qualifies, so this scheme is relevant whatever you grow.",
			MatchScore:          95,
			ApplicationDeadline: "Ongoing",
			EstimatedBenefit:    "₹6,000 per year",
			ApplicationLink:     "https://pmkisan.gov.in/",
			FormDownloadLink:    "https://pmkisan.gov.in/Documents/FarmerRegistrationForm.pdf",
		},
		{
			ID:                  "scheme-2",
			Title:               "Pradhan Mantri Fasal Bima Yojana (PMFBY)",
			Description:         "Crop insurance scheme to provide financial support to farmers suffering crop loss/damage",
			Eligibility:         "All farmers growing notified crops in notified areas",
			Benefits:            "Insurance coverage and financial support in case of crop failure",
			Documents:           []string{"Aadhaar Card", "Land Records", "Bank Passbook", "Sowing Certificate"},
			ApplicationProcess:  "Through banks, insurance companies, or online portal",
			Deadline:            "Varies by season",
			Category:            "insurance",
			CropTypes:           []string{"rice", "wheat", "pulses", "oilseeds"},
			LandSizeRequirement: "any",
			FarmerCategory:      "all",
			AIRecommendation:    "Protects your season's investment against crop failure from weather, pests and disease.",
			MatchScore:          88,
			ApplicationDeadline: "Before the seasonal cut-off for Kharif and Rabi",
			EstimatedBenefit:    "Coverage up to ₹50,000 per acre",
			ApplicationLink:     "https://pmfby.gov.in/",
		},
		{
			ID:                  "scheme-3",
			Title:               "Kisan Credit Card (KCC)",
			Description:         "Provides farmers with affordable credit for cultivation and other needs",
			Eligibility:         "All farmers, sharecroppers, tenant farmers, and self-help groups",
			Benefits:            "Credit up to ₹3 lakh at 4% interest rate with interest subvention",
			Documents:           []string{"Identity Proof", "Address Proof", "Land Records", "Passport Size Photo"},
			ApplicationProcess:  "Apply through nationalized banks, regional rural banks, or cooperative banks",
			Deadline:            "Ongoing",
			Category:            "credit",
			CropTypes:           []string{"all"},
			LandSizeRequirement: "any",
			FarmerCategory:      "all",
			AIRecommendation:    "Gives timely credit for seeds and fertilizers at a subsidised rate.",
			MatchScore:          90,
			ApplicationDeadline: "Ongoing",
			EstimatedBenefit:    "Up to ₹3 lakh loan at 4% interest",
		},
	}
}

var roadmapSteps = map[string]struct {
	first string
	rest  []string
}{
	"hi": {
		first: "📋 चरण 1: सभी आवश्यक दस्तावेज़ इकट्ठा करें (%s)",
		rest: []string{
			"✅ चरण 2: योजना की पात्रता मानदंडों के अनुसार अपनी पात्रता सत्यापित करें",
			"🖥️ चरण 3: आधिकारिक आवेदन पोर्टल या निकटतम कॉमन सर्विस सेंटर पर जाएँ",
			"📝 चरण 4: आवेदन फॉर्म को सही व्यक्तिगत और भूमि विवरण के साथ भरें",
			"📎 चरण 5: सभी आवश्यक दस्तावेजों की स्कैन की गई प्रतियां अपलोड करें",
			"💰 चरण 6: आवेदन शुल्क का भुगतान करें (यदि लागू हो)",
			"📤 चरण 7: अपना आवेदन जमा करें और संदर्भ संख्या नोट करें",
			"⏱️ चरण 8: संदर्भ संख्या का उपयोग करके अपने आवेदन की स्थिति को ट्रैक करें",
			"📱 चरण 9: अधिकारियों से आने वाले किसी भी सत्यापन कॉल या संदेशों का जवाब दें",
			"🎉 चरण 10: योजना में सफल नामांकन की पुष्टि प्राप्त करें",
		},
	},
	"pa": {
		first: "📋 ਕਦਮ 1: ਸਾਰੇ ਲੋੜੀਂਦੇ ਦਸਤਾਵੇਜ਼ ਇਕੱਠੇ ਕਰੋ (%s)",
		rest: []string{
			"✅ ਕਦਮ 2: ਯੋਜਨਾ ਦੇ ਯੋਗਤਾ ਮਾਪਦੰਡਾਂ ਦੇ ਅਨੁਸਾਰ ਆਪਣੀ ਯੋਗਤਾ ਦੀ ਪੁਸ਼ਟੀ ਕਰੋ",
			"🖥️ ਕਦਮ 3: ਅਧਿਕਾਰਤ ਐਪਲੀਕੇਸ਼ਨ ਪੋਰਟਲ ਜਾਂ ਨੇੜਲੇ ਕਾਮਨ ਸਰਵਿਸ ਸੈਂਟਰ 'ਤੇ ਜਾਓ",
			"📝 ਕਦਮ 4: ਐਪਲੀਕੇਸ਼ਨ ਫਾਰਮ ਨੂੰ ਸਹੀ ਨਿੱਜੀ ਅਤੇ ਜ਼ਮੀਨੀ ਵੇਰਵਿਆਂ ਨਾਲ ਭਰੋ",
			"📎 ਕਦਮ 5: ਸਾਰੇ ਲੋੜੀਂਦੇ ਦਸਤਾਵੇਜ਼ਾਂ ਦੀਆਂ ਕਾਪੀਆਂ ਅਪਲੋਡ ਕਰੋ",
			"💰 ਕਦਮ 6: ਐਪਲੀਕੇਸ਼ਨ ਫੀਸ ਦਾ ਭੁਗਤਾਨ ਕਰੋ (ਜੇ ਲਾਗੂ ਹੋਵੇ)",
			"📤 ਕਦਮ 7: ਆਪਣੀ ਐਪਲੀਕੇਸ਼ਨ ਜਮ੍ਹਾਂ ਕਰੋ ਅਤੇ ਰੈਫਰੈਂਸ ਨੰਬਰ ਨੋਟ ਕਰੋ",
			"⏱️ ਕਦਮ 8: ਰੈਫਰੈਂਸ ਨੰਬਰ ਦੀ ਵਰਤੋਂ ਕਰਕੇ ਆਪਣੀ ਐਪਲੀਕੇਸ਼ਨ ਦੀ ਸਥਿਤੀ ਨੂੰ ਟਰੈਕ ਕਰੋ",
			"📱 ਕਦਮ 9: ਅਧਿਕਾਰੀਆਂ ਤੋਂ ਕਿਸੇ ਵੀ ਪੁਸ਼ਟੀਕਰਨ ਕਾਲਾਂ ਜਾਂ ਸੁਨੇਹਿਆਂ ਦਾ ਜਵਾਬ ਦਿਓ",
			"🎉 ਕਦਮ 10: ਯੋਜਨਾ ਵਿੱਚ ਸਫਲ ਦਾਖਲੇ ਦੀ ਪੁਸ਼ਟੀ ਪ੍ਰਾਪਤ ਕਰੋ",
		},
	},
	"en": {
		first: "📋 Step 1: Gather all required documents (%s)",
		rest: []string{
			"✅ Step 2: Verify your eligibility criteria matches the scheme requirements",
			"🖥️ Step 3: Visit the official application portal or nearest Common Service Center",
			"📝 Step 4: Fill the application form with accurate personal and land details",
			"📎 Step 5: Upload scanned copies of all required documents",
			"💰 Step 6: Pay application fee (if applicable)",
			"📤 Step 7: Submit your application and note down the reference number",
			"⏱️ Step 8: Track your application status using the reference number",
			"📱 Step 9: Respond to any verification calls or messages from authorities",
			"🎉 Step 10: Receive confirmation of successful enrollment in the scheme",
		},
	},
}

// Roadmap returns ten application steps in Hindi, Punjabi, or English for
// every other language. The first step lists the scheme's documents.
func Roadmap(scheme finance.Scheme, lang string) []string {
	steps, ok := roadmapSteps[lang]
	if !ok {
		steps = roadmapSteps["en"]
	}
	out := make([]string, 0, len(steps.rest)+1)
	out = append(out, fmt.Sprintf(steps.first, strings.Join(scheme.Documents, ", ")))
	return append(out, steps.rest...)
}
