package gateway

import (
	"context"

	"github.com/joyal-jij0/pragati/internal/fallback"
	"github.com/joyal-jij0/pragati/internal/finance"
	"github.com/joyal-jij0/pragati/internal/language"
	"github.com/joyal-jij0/pragati/internal/message"
)

// LoansResult carries loan recommendations and who produced them.
type LoansResult struct {
	Loans  []finance.Loan `json:"loans"`
	Source message.Source `json:"source"`
}

// SubsidiesResult carries subsidy recommendations and who produced them.
type SubsidiesResult struct {
	Subsidies []finance.Subsidy `json:"subsidies"`
	Source    message.Source    `json:"source"`
}

// AdviceResult carries financial advice and who produced it.
type AdviceResult struct {
	Advice finance.FinancialAdvice `json:"advice"`
	Source message.Source          `json:"source"`
}

// SchemesResult carries matching government schemes and who produced them.
type SchemesResult struct {
	Schemes []finance.Scheme `json:"schemes"`
	Source  message.Source   `json:"source"`
}

// RoadmapResult carries application steps and who produced them.
type RoadmapResult struct {
	Steps    []string       `json:"steps"`
	Language string         `json:"language"`
	Source   message.Source `json:"source"`
}

// substitute logs why fallback output replaces the recommender's.
func (g *Gateway) substitute(ctx context.Context, op string, err error) message.Source {
	if g.recommender == nil {
		Logger(ctx).Debug("no recommender configured, using fallback", "op", op)
	} else {
		Logger(ctx).Warn("recommender failed, using fallback", "op", op, "recommender", g.recommender.Name(), "error", err)
	}
	return message.SourceFallback
}

// Loans recommends loans for a crop plan. It never fails.
func (g *Gateway) Loans(ctx context.Context, crop finance.CropResult, profile finance.FarmerProfile) *LoansResult {
	if g.recommender != nil {
		loans, err := g.recommender.Loans(ctx, crop, profile)
		if err == nil {
			return &LoansResult{Loans: loans, Source: message.SourceProvider}
		}
		return &LoansResult{Loans: fallback.Loans(crop), Source: g.substitute(ctx, "loans", err)}
	}
	return &LoansResult{Loans: fallback.Loans(crop), Source: g.substitute(ctx, "loans", nil)}
}

// LoansForProfile recommends loans from a farmer profile alone. It never fails.
func (g *Gateway) LoansForProfile(ctx context.Context, profile finance.FarmerProfile) *LoansResult {
	if g.recommender != nil {
		loans, err := g.recommender.LoansForProfile(ctx, profile)
		if err == nil {
			return &LoansResult{Loans: loans, Source: message.SourceProvider}
		}
		return &LoansResult{Loans: fallback.LoansForProfile(profile), Source: g.substitute(ctx, "loans", err)}
	}
	return &LoansResult{Loans: fallback.LoansForProfile(profile), Source: g.substitute(ctx, "loans", nil)}
}

// Subsidies recommends subsidy schemes for a crop plan. It never fails.
func (g *Gateway) Subsidies(ctx context.Context, crop finance.CropResult, profile finance.FarmerProfile) *SubsidiesResult {
	if g.recommender != nil {
		subs, err := g.recommender.Subsidies(ctx, crop, profile)
		if err == nil {
			return &SubsidiesResult{Subsidies: subs, Source: message.SourceProvider}
		}
		return &SubsidiesResult{Subsidies: fallback.Subsidies(crop), Source: g.substitute(ctx, "subsidies", err)}
	}
	return &SubsidiesResult{Subsidies: fallback.Subsidies(crop), Source: g.substitute(ctx, "subsidies", nil)}
}

// Advice produces financial advice for a crop plan. It never fails.
func (g *Gateway) Advice(ctx context.Context, crop finance.CropResult) *AdviceResult {
	if g.recommender != nil {
		advice, err := g.recommender.Advice(ctx, crop)
		if err == nil {
			return &AdviceResult{Advice: *advice, Source: message.SourceProvider}
		}
		return &AdviceResult{Advice: fallback.Advice(crop), Source: g.substitute(ctx, "advice", err)}
	}
	return &AdviceResult{Advice: fallback.Advice(crop), Source: g.substitute(ctx, "advice", nil)}
}

// Schemes searches government schemes. It never fails.
func (g *Gateway) Schemes(ctx context.Context, criteria string) *SchemesResult {
	if g.recommender != nil {
		schemes, err := g.recommender.Schemes(ctx, criteria)
		if err == nil {
			return &SchemesResult{Schemes: schemes, Source: message.SourceProvider}
		}
		return &SchemesResult{Schemes: fallback.Schemes(), Source: g.substitute(ctx, "schemes", err)}
	}
	return &SchemesResult{Schemes: fallback.Schemes(), Source: g.substitute(ctx, "schemes", nil)}
}

// Roadmap returns application steps for a scheme in the requested language.
// It never fails.
func (g *Gateway) Roadmap(ctx context.Context, scheme finance.Scheme, lang string) *RoadmapResult {
	lang = language.Normalize(lang)
	if g.recommender != nil {
		steps, err := g.recommender.Roadmap(ctx, scheme, lang)
		if err == nil {
			return &RoadmapResult{Steps: steps, Language: lang, Source: message.SourceProvider}
		}
		return &RoadmapResult{Steps: fallback.Roadmap(scheme, lang), Language: lang, Source: g.substitute(ctx, "roadmap", err)}
	}
	return &RoadmapResult{Steps: fallback.Roadmap(scheme, lang), Language: lang, Source: g.substitute(ctx, "roadmap", nil)}
}
