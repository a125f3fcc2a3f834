package meli

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Item fetches a single listing by id. Only a 200 response counts as
// success; anything else surfaces as a StatusError.
func (c *Client) Item(ctx context.Context, itemID string) (*Item, error) {
	var item Item
	u := fmt.Sprintf("%s/items/%s", c.apiURL, url.PathEscape(itemID))
	if err := c.get(ctx, "items", u, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Product fetches catalog product metadata by catalog id.
func (c *Client) Product(ctx context.Context, productID string) (*Product, error) {
	var p Product
	u := fmt.Sprintf("%s/products/%s", c.apiURL, url.PathEscape(productID))
	if err := c.get(ctx, "products", u, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ProductItems fetches the competing offers of a catalog product, in the
// upstream's own ranking order.
func (c *Client) ProductItems(ctx context.Context, productID string) ([]ProductOffer, error) {
	var resp productItemsResponse
	u := fmt.Sprintf("%s/products/%s/items", c.apiURL, url.PathEscape(productID))
	if err := c.get(ctx, "product_items", u, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// ListingPrices fetches the live fee schedule for a price and category.
func (c *Client) ListingPrices(ctx context.Context, price float64, categoryID string) ([]ListingPriceOption, error) {
	var options []ListingPriceOption
	q := url.Values{}
	q.Set("price", strconv.FormatFloat(price, 'f', -1, 64))
	q.Set("category_id", categoryID)
	u := fmt.Sprintf("%s/sites/%s/listing_prices?%s", c.apiURL, c.site, q.Encode())
	if err := c.get(ctx, "listing_prices", u, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// CategoryPath fetches a category with its path from the site root.
func (c *Client) CategoryPath(ctx context.Context, categoryID string) (*Category, error) {
	var cat Category
	u := fmt.Sprintf("%s/categories/%s", c.apiURL, url.PathEscape(categoryID))
	if err := c.get(ctx, "categories", u, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}
