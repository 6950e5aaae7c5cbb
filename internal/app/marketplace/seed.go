package marketplace

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/business-marketplace/internal/models"
	"github.com/magabrotheeeer/business-marketplace/internal/storage/repository"
)

// seedSampleListings заполняет пустую коллекцию парой активных листингов,
// чтобы каталог не был пустым при первом запуске.
func seedSampleListings(ctx context.Context, repo *repository.Storage, logger *slog.Logger) error {
	const op = "marketplace.seedSampleListings"

	count, err := repo.CountListings(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	samples := []models.BusinessListing{
		{
			ID:            uuid.NewString(),
			Title:         "Profitable Bakery Chain in Chisinau",
			Description:   "Established bakery chain with 3 locations in central Chisinau. Loyal customer base, experienced staff, modern equipment.",
			Industry:      "food_service",
			Region:        "chisinau",
			AnnualRevenue: 450000,
			EBITDA:        85000,
			AskingPrice:   320000,
			RiskGrade:     "B",
			Status:        models.StatusActive,
			SellerID:      uuid.NewString(),
			SellerName:    "Ion Popescu",
			SellerEmail:   "ion.popescu@example.com",
			ReasonForSale: "Owner retiring after 15 years",
			GrowthOpportunities: "Expansion to Balti and online ordering remain untapped.",
			FinancialData: []models.FinancialData{
				{Year: 2023, Revenue: 420000, ProfitLoss: 61000, EBITDA: 78000, Assets: 250000, Liabilities: 90000, CashFlow: 70000},
				{Year: 2024, Revenue: 450000, ProfitLoss: 68000, EBITDA: 85000, Assets: 270000, Liabilities: 85000, CashFlow: 76000},
			},
			KeyMetrics: map[string]any{"employees": 24, "locations": 3},
			Featured:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:            uuid.NewString(),
			Title:         "IT Outsourcing Company",
			Description:   "Software development company serving EU clients. Remote-first team, recurring contracts cover 80% of revenue.",
			Industry:      "technology",
			Region:        "chisinau",
			AnnualRevenue: 1200000,
			EBITDA:        340000,
			AskingPrice:   1500000,
			RiskGrade:     "A",
			Status:        models.StatusActive,
			SellerID:      uuid.NewString(),
			SellerName:    "Maria Rusu",
			SellerEmail:   "maria.rusu@example.com",
			ReasonForSale: "Founders moving to a new venture",
			GrowthOpportunities: "US market entry and dedicated product line.",
			FinancialData: []models.FinancialData{
				{Year: 2024, Revenue: 1200000, ProfitLoss: 290000, EBITDA: 340000, Assets: 600000, Liabilities: 120000, CashFlow: 310000},
			},
			KeyMetrics: map[string]any{"employees": 35, "recurring_revenue_share": 0.8},
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}

	for _, sample := range samples {
		if _, err := repo.CreateListing(ctx, sample); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	logger.Info("seeded sample listings", slog.Int("count", len(samples)))
	return nil
}
