package services_test

import (
	"fmt"
	"testing"
	"time"

	"cardshop/internal/apperrors"
	"cardshop/internal/models"
	"cardshop/internal/repositories"
	"cardshop/internal/services"

	"github.com/stretchr/testify/assert"
)

func newCatalog(t *testing.T, cards ...models.Card) (*services.CatalogService, *repositories.MockCardRepository) {
	t.Helper()
	repo := repositories.NewMockCardRepository()
	for i := range cards {
		assert.NoError(t, repo.Create(&cards[i]))
	}
	return services.NewCatalogService(repo, repositories.NewMockSettingRepository()), repo
}

func card(name, category, language string, price float64) models.Card {
	return models.Card{
		Name:        name,
		Category:    category,
		Language:    language,
		SetName:     "Test Set",
		Year:        2020,
		Condition:   "NM",
		ManualPrice: price,
	}
}

func TestCatalogService_PaginationCorrectness(t *testing.T) {
	var cards []models.Card
	for i := 0; i < 7; i++ {
		cards = append(cards, card(fmt.Sprintf("card-%d", i), models.CategoryPokemon, "en", float64(100-i)))
	}
	catalog, _ := newCatalog(t, cards...)

	// For N=7 and limit=3 the page sizes are 3, 3, 1, 0; total is always 7.
	sizes := []int{3, 3, 1, 0}
	for page := 1; page <= len(sizes); page++ {
		result, err := catalog.ListCards(page, 3, "", "")
		assert.NoError(t, err)
		assert.Len(t, result.Data, sizes[page-1], "page %d", page)
		assert.Equal(t, int64(7), result.Total, "page %d", page)
		assert.Equal(t, page, result.Page)
		assert.Equal(t, 3, result.Limit)
	}
}

func TestCatalogService_SortOrderAndStability(t *testing.T) {
	catalog, _ := newCatalog(t,
		card("cheap", models.CategoryPokemon, "en", 10),
		card("tie-first", models.CategoryPokemon, "en", 50),
		card("tie-second", models.CategoryPokemon, "en", 50),
		card("expensive", models.CategoryPokemon, "en", 500),
	)

	result, err := catalog.ListCards(1, 10, "", "")
	assert.NoError(t, err)
	names := make([]string, 0, len(result.Data))
	for _, c := range result.Data {
		names = append(names, c.Name)
	}
	// Price descending; the two 50s keep their insertion order.
	assert.Equal(t, []string{"expensive", "tie-first", "tie-second", "cheap"}, names)
}

func TestCatalogService_CategoryAndLanguageFilters(t *testing.T) {
	catalog, _ := newCatalog(t,
		card("poke-en", models.CategoryPokemon, "en", 10),
		card("base-en", models.CategoryBaseball, "en", 20),
		card("base-th", models.CategoryBaseball, "th", 30),
		card("foot-jp", models.CategoryFootball, "jp", 40),
	)

	result, err := catalog.ListCards(1, 10, models.CategoryBaseball, "")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
	for _, c := range result.Data {
		assert.Equal(t, models.CategoryBaseball, c.Category)
	}

	// The "All" sentinel and an absent category both return the union.
	all, err := catalog.ListCards(1, 10, models.CategoryAll, "")
	assert.NoError(t, err)
	assert.Equal(t, int64(4), all.Total)
	absent, err := catalog.ListCards(1, 10, "", "")
	assert.NoError(t, err)
	assert.Equal(t, int64(4), absent.Total)

	th, err := catalog.ListCards(1, 10, "", "th")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), th.Total)
	assert.Equal(t, "base-th", th.Data[0].Name)

	both, err := catalog.ListCards(1, 10, models.CategoryBaseball, "en")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), both.Total)
	assert.Equal(t, "base-en", both.Data[0].Name)
}

func TestCatalogService_ListDefaultsBadPageAndLimit(t *testing.T) {
	catalog, _ := newCatalog(t, card("only", models.CategoryPokemon, "en", 10))

	result, err := catalog.ListCards(0, -5, "", "")
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)
	assert.Len(t, result.Data, 1)
}

func TestCatalogService_GetCardByID(t *testing.T) {
	c := card("holo", models.CategoryPokemon, "en", 99)
	c.Images = []models.CardImage{
		{URL: "http://img/b.jpg", SortOrder: 1},
		{URL: "http://img/a.jpg", SortOrder: 0},
	}
	catalog, repo := newCatalog(t, c)

	listed, _, err := repo.List(repositories.CardListParams{Page: 1, Limit: 1})
	assert.NoError(t, err)

	got, err := catalog.GetCardByID(listed[0].ID)
	assert.NoError(t, err)
	// Images come back sorted ascending and imageUrl is projected from the
	// cover image.
	assert.Equal(t, "http://img/a.jpg", got.Images[0].URL)
	assert.Equal(t, "http://img/b.jpg", got.Images[1].URL)
	assert.Equal(t, "http://img/a.jpg", got.ImageURL)

	_, err = catalog.GetCardByID("missing")
	assert.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestCatalogService_LegacyImageURLFallback(t *testing.T) {
	c := card("old", models.CategoryPokemon, "en", 5)
	c.ImageURL = "http://img/legacy.jpg"
	catalog, repo := newCatalog(t, c)

	listed, _, err := repo.List(repositories.CardListParams{Page: 1, Limit: 1})
	assert.NoError(t, err)

	got, err := catalog.GetCardByID(listed[0].ID)
	assert.NoError(t, err)
	// With no images the stored legacy value stands alone.
	assert.Equal(t, "http://img/legacy.jpg", got.ImageURL)
}

func TestCatalogService_PriceHistoryShape(t *testing.T) {
	catalog, _ := newCatalog(t)

	for _, id := range []string{"some-card", "unknown-card", ""} {
		points := catalog.GetPriceHistory(id)
		assert.Len(t, points, 7)

		var prev time.Time
		for i, p := range points {
			date, err := time.Parse("2006-01-02", p.Date)
			assert.NoError(t, err)
			if i > 0 {
				assert.True(t, date.After(prev), "months must strictly increase")
			}
			prev = date
			assert.GreaterOrEqual(t, p.Price, 100.0)
			assert.Less(t, p.Price, 150.0)
		}

		// The series ends at the current month.
		now := time.Now()
		assert.Equal(t, time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), points[6].Date)
	}

	// Deterministic per card across requests.
	assert.Equal(t, catalog.GetPriceHistory("some-card"), catalog.GetPriceHistory("some-card"))
}

func TestCatalogService_GetQrImageURL(t *testing.T) {
	settings := repositories.NewMockSettingRepository()
	catalog := services.NewCatalogService(repositories.NewMockCardRepository(), settings)

	// Unconfigured: the documented placeholder is the empty string.
	url, err := catalog.GetQrImageURL()
	assert.NoError(t, err)
	assert.Equal(t, "", url)

	assert.NoError(t, settings.Upsert(models.SettingQrImage, "http://img/qr.png"))
	url, err = catalog.GetQrImageURL()
	assert.NoError(t, err)
	assert.Equal(t, "http://img/qr.png", url)
}
