package meli_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"melicalc/internal/meli"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) {
	return string(s), nil
}

func TestClient_Item(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items/MLB123456789", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{
			"id": "MLB123456789",
			"title": "Fone Bluetooth",
			"price": 149.9,
			"thumbnail": "http://img/x-I.jpg",
			"permalink": "https://produto.mercadolivre.com.br/MLB-123456789",
			"category_id": "MLB1051",
			"status": "active",
			"attributes": [{"id": "WEIGHT", "name": "Peso", "value_name": "300 g"}]
		}`))
	}))
	defer srv.Close()

	client := meli.NewClient(
		meli.WithAPIURL(srv.URL),
		meli.WithTokenProvider(staticToken("tok")),
	)

	item, err := client.Item(context.Background(), "MLB123456789")
	require.NoError(t, err)
	assert.Equal(t, "Fone Bluetooth", item.Title)
	assert.Equal(t, 149.9, item.Price)
	assert.Equal(t, "MLB1051", item.CategoryID)
	require.Len(t, item.Attributes, 1)
	assert.Equal(t, "WEIGHT", item.Attributes[0].ID)
}

func TestClient_Item_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Item with id MLB1 not found"}`))
	}))
	defer srv.Close()

	client := meli.NewClient(meli.WithAPIURL(srv.URL))

	_, err := client.Item(context.Background(), "MLB1")
	require.Error(t, err)

	var statusErr *meli.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Status)
	assert.Equal(t, "items", statusErr.Endpoint)
}

func TestClient_AnonymousWithoutProvider(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":"MLB1","title":"x"}`))
	}))
	defer srv.Close()

	client := meli.NewClient(meli.WithAPIURL(srv.URL))
	_, err := client.Item(context.Background(), "MLB1")
	require.NoError(t, err)
}

func TestClient_ProductItems(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/MLB7654321/items", r.URL.Path)
		_, _ = w.Write([]byte(`{"results": [
			{"item_id": "MLB111", "price": 99.9, "category_id": "MLB1051", "permalink": "https://x/1"},
			{"item_id": "MLB222", "price": 102.0, "category_id": "MLB1051", "permalink": "https://x/2"}
		]}`))
	}))
	defer srv.Close()

	client := meli.NewClient(meli.WithAPIURL(srv.URL))

	offers, err := client.ProductItems(context.Background(), "MLB7654321")
	require.NoError(t, err)
	require.Len(t, offers, 2)
	// First entry is the winning offer; order must be preserved.
	assert.Equal(t, "MLB111", offers[0].ItemID)
	assert.Equal(t, 99.9, offers[0].Price)
}

func TestClient_ListingPrices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/MLB/listing_prices", r.URL.Path)
		assert.Equal(t, "149.9", r.URL.Query().Get("price"))
		assert.Equal(t, "MLB1051", r.URL.Query().Get("category_id"))
		_, _ = w.Write([]byte(`[
			{"listing_type_id": "gold_special", "sale_fee_amount": 17.24},
			{"listing_type_id": "gold_pro", "sale_fee_amount": 24.73}
		]`))
	}))
	defer srv.Close()

	client := meli.NewClient(meli.WithAPIURL(srv.URL))

	options, err := client.ListingPrices(context.Background(), 149.9, "MLB1051")
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "gold_special", options[0].ListingTypeID)
	assert.Equal(t, 17.24, options[0].SaleFeeAmount)
}

func TestClient_CategoryPath(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/categories/MLB1051", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"id": "MLB1051",
			"name": "Celulares e Telefones",
			"path_from_root": [
				{"id": "MLB1051", "name": "Celulares e Telefones"}
			]
		}`))
	}))
	defer srv.Close()

	client := meli.NewClient(meli.WithAPIURL(srv.URL))

	cat, err := client.CategoryPath(context.Background(), "MLB1051")
	require.NoError(t, err)
	assert.Equal(t, "Celulares e Telefones", cat.Name)
	require.Len(t, cat.PathFromRoot, 1)
}

func TestClient_MalformedJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	client := meli.NewClient(meli.WithAPIURL(srv.URL))
	_, err := client.Item(context.Background(), "MLB1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing items response")
}
