package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanafy/storefront/internal/core/domain"
)

func newCatalogFixture(categories []string, products ...domain.Product) (*CatalogService, *memCatalog) {
	catalog := newMemCatalog(products...)
	return NewCatalogService(catalog, &memCategories{names: categories}), catalog
}

func validInput() ProductInput {
	stock := 5
	return ProductInput{
		Name:     "Desk Lamp",
		Price:    "EGP 1,299.50",
		Discount: "10",
		Stock:    &stock,
		Category: "home",
	}
}

func TestCreateProductParsesCurrencyPrice(t *testing.T) {
	svc, _ := newCatalogFixture([]string{"home"})

	product, err := svc.CreateProduct(context.Background(), validInput())
	require.NoError(t, err)
	assert.True(t, product.Price.Equal(dec("1299.50")), "price %s", product.Price)
	assert.True(t, product.Discount.Equal(dec("10")))
	assert.NotEmpty(t, product.ID)
	assert.False(t, product.CreatedAt.IsZero())
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := newCatalogFixture([]string{"home"})
	ctx := context.Background()

	in := validInput()
	in.Price = "free!"
	_, err := svc.CreateProduct(ctx, in)
	assert.ErrorIs(t, err, domain.ErrBadPrice)

	in = validInput()
	in.Discount = "150"
	_, err = svc.CreateProduct(ctx, in)
	assert.ErrorIs(t, err, ErrDiscountRange)

	in = validInput()
	in.Category = "garden"
	_, err = svc.CreateProduct(ctx, in)
	assert.ErrorIs(t, err, ErrUnknownCategory)

	in = validInput()
	negative := -1
	in.Stock = &negative
	_, err = svc.CreateProduct(ctx, in)
	assert.Error(t, err)
}

func TestUpdateProduct(t *testing.T) {
	svc, _ := newCatalogFixture([]string{"home"}, stocked("p1", "100", "0", 5))

	in := validInput()
	in.Name = "Renamed Lamp"
	updated, err := svc.UpdateProduct(context.Background(), "p1", in)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Lamp", updated.Name)
	assert.True(t, updated.Price.Equal(dec("1299.50")))
	assert.Equal(t, "home", updated.Category)

	_, err = svc.UpdateProduct(context.Background(), "ghost", in)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestViewProductBumpsViews(t *testing.T) {
	svc, catalog := newCatalogFixture([]string{"general"}, stocked("p1", "100", "0", 5))
	ctx := context.Background()

	product, err := svc.ViewProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, product.Views)

	stored, err := catalog.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Views)

	_, err = svc.ViewProduct(ctx, "ghost")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCategoryLifecycle(t *testing.T) {
	svc, _ := newCatalogFixture([]string{"home"})
	ctx := context.Background()

	require.NoError(t, svc.AddCategory(ctx, "  office "))
	assert.ErrorIs(t, svc.AddCategory(ctx, "office"), ErrCategoryExists)

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"home", "office"}, cats)

	require.NoError(t, svc.DeleteCategory(ctx, "office"))
	cats, err = svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"home"}, cats)
}

func TestRenameCategoryReassignsProducts(t *testing.T) {
	product := stocked("p1", "100", "0", 5)
	product.Category = "home"
	svc, catalog := newCatalogFixture([]string{"home"}, product)
	ctx := context.Background()

	require.NoError(t, svc.RenameCategory(ctx, "home", "household"))

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"household"}, cats)

	moved, err := catalog.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "household", moved.Category)
}
