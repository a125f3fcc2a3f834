package meli

// RootCategoryID is the generic root category of the MLB site. Offers
// tagged with it carry no useful category signal.
const RootCategoryID = "MLB1"

// Attribute is one technical attribute of an item or catalog product.
type Attribute struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ValueName string `json:"value_name"`
}

// Item is the payload of the direct item endpoint, reduced to the fields
// the pipeline consumes.
type Item struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Price      float64     `json:"price"`
	Thumbnail  string      `json:"thumbnail"`
	Permalink  string      `json:"permalink"`
	CategoryID string      `json:"category_id"`
	Status     string      `json:"status"`
	Attributes []Attribute `json:"attributes"`
}

// Picture is one product image reference.
type Picture struct {
	URL string `json:"url"`
}

// Product is the catalog product metadata payload.
type Product struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	CategoryID string      `json:"category_id"`
	Pictures   []Picture   `json:"pictures"`
	Attributes []Attribute `json:"attributes"`
}

// ProductOffer is one competing offer of a catalog product. The upstream
// order is authoritative: the first entry is the winning offer.
type ProductOffer struct {
	ItemID     string  `json:"item_id"`
	Price      float64 `json:"price"`
	CategoryID string  `json:"category_id"`
	Permalink  string  `json:"permalink"`
}

type productItemsResponse struct {
	Results []ProductOffer `json:"results"`
}

// ListingPriceOption is one entry of the listing-prices response.
type ListingPriceOption struct {
	ListingTypeID string  `json:"listing_type_id"`
	SaleFeeAmount float64 `json:"sale_fee_amount"`
}

// CategoryRef is one step of a category path.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category is the category endpoint payload.
type Category struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	PathFromRoot []CategoryRef `json:"path_from_root"`
}
