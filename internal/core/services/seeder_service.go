package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_tracker_app/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

// SeederService brings the currency and shared category catalogs up to date.
type SeederService struct {
	BaseService
	currencyRepo portsrepo.CurrencyWriter
	categoryRepo portsrepo.CategoryWriter
	currencies   []domain.Currency
	categories   []domain.Category
}

// NewSeederService creates a SeederService seeding the built-in catalogs.
func NewSeederService(currencyRepo portsrepo.CurrencyWriter, categoryRepo portsrepo.CategoryWriter) *SeederService {
	return &SeederService{
		currencyRepo: currencyRepo,
		categoryRepo: categoryRepo,
		currencies:   domain.CurrencyCatalog,
		categories:   domain.DefaultCategories,
	}
}

var _ portssvc.SeederSvc = (*SeederService)(nil)

// SeedReferenceData inserts missing currencies, inserts missing shared categories and
// refreshes the icon of existing ones. A second run reports no changes.
func (s *SeederService) SeedReferenceData(ctx context.Context) (domain.SeedReport, error) {
	var report domain.SeedReport

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		added, err := s.currencyRepo.InsertMissingCurrencies(gctx, s.currencies)
		if err != nil {
			return fmt.Errorf("seed currencies: %w", err)
		}
		report.CurrenciesAdded = added
		return nil
	})
	g.Go(func() error {
		inserted, updated, err := s.categoryRepo.UpsertSharedCategories(gctx, s.categories)
		if err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
		report.CategoriesAdded = inserted
		report.CategoriesUpdated = updated
		return nil
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Reference data seeding failed")
		return domain.SeedReport{}, err
	}

	if report.Changed() {
		s.LogInfo(ctx, "Reference data seeded",
			slog.Int("currencies_added", report.CurrenciesAdded),
			slog.Int("categories_added", report.CategoriesAdded),
			slog.Int("categories_updated", report.CategoriesUpdated))
	} else {
		s.LogDebug(ctx, "Reference data already up to date")
	}
	return report, nil
}
