package extractor

import (
	"net/url"
	"strings"

	"ssg-pdp/internal/types"
)

const (
	defaultCurrency = "USD"
	visibleRole     = "visible"
)

// socialTitleKeys are the metadata keys checked for a name when the page has no heading
var socialTitleKeys = []string{"twitter:title", "twitter_title"}

// productTypes maps an incoming __typename to its product type
var productTypes = map[string]string{
	"SimpleProductView":       "simple",
	"ConfigurableProductView": "configurable",
	"ComplexProductView":      "complex",
}

// productTypeValues returns the product type and typename pair for a product.
// Unknown or missing type names fall back to a simple product.
func productTypeValues(product *types.RawProduct) (string, string) {
	typename := product.Meta("__typename")
	if productType, ok := productTypes[typename]; ok {
		return productType, typename
	}
	return "simple", "SimpleProductView"
}

// TransformToPDPFormat converts a merged product record into the product view shape
func TransformToPDPFormat(product *types.RawProduct, location types.PageLocation) *types.ProductView {
	if product == nil {
		return nil
	}

	name := product.Name
	for _, key := range socialTitleKeys {
		if name != "" {
			break
		}
		name = product.Meta(key)
	}

	base, _ := url.Parse(location.Href)
	images := make([]types.ProductImage, 0, len(product.Images))
	for _, src := range product.Images {
		images = append(images, types.ProductImage{URL: resolveImageURL(base, src), Label: "", Roles: []string{}})
	}

	view := &types.ProductView{
		Name:             name,
		SKU:              product.SKU,
		Description:      product.Description,
		ShortDescription: product.Description,
		Images:           images,
		IsBundle:         false,
		AddToCartAllowed: true,
		InStock:          true,
		URLKey:           urlKey(location.Path),
		URL:              location.Href,
	}
	view.ProductType, view.Typename = productTypeValues(product)

	if price := product.Price; price != nil {
		currency := price.Currency
		if currency == "" {
			currency = defaultCurrency
		}
		if price.IsRange() {
			view.PriceRange = &types.PriceRange{
				Minimum: visiblePrice(price.Minimum, currency),
				Maximum: visiblePrice(price.Maximum, currency),
			}
		} else {
			p := visiblePrice(price.Value, currency)
			view.Price = &p
		}
	}

	if len(product.Options) > 0 {
		view.Options = transformOptions(product.Options)
	}

	return view
}

// visiblePrice builds a price whose regular and final amounts are the same value
func visiblePrice(value float64, currency string) types.ProductViewPrice {
	amount := types.Amount{Amount: types.Money{Currency: currency, Value: value}}
	return types.ProductViewPrice{
		Roles:   []string{visibleRole},
		Regular: amount,
		Final:   amount,
	}
}

func transformOptions(options []types.OptionSpec) []types.ProductViewOption {
	result := make([]types.ProductViewOption, 0, len(options))
	for _, option := range options {
		values := make([]types.ProductViewOptionValue, 0, len(option.Items))
		for _, item := range option.Items {
			values = append(values, types.ProductViewOptionValue{
				ID:       item.ID,
				Title:    firstNonEmpty(item.Title, item.Label),
				Value:    item.Value,
				Selected: item.Selected,
				InStock:  item.InStock,
			})
		}
		result = append(result, types.ProductViewOption{
			ID:       option.ID,
			Type:     option.Type,
			Typename: option.Typename,
			Title:    firstNonEmpty(option.Title, option.Label),
			Required: option.Required,
			Multiple: option.Multiple,
			Values:   values,
		})
	}
	return result
}

// urlKey returns the second segment of a page path, e.g. "widget" for "/products/widget/wid-1"
func urlKey(path string) string {
	segments := strings.Split(path, "/")
	if len(segments) < 3 {
		return ""
	}
	return segments[2]
}

// resolveImageURL makes src absolute against the page address.
// Empty sources stay empty; without a usable base src is returned as is.
func resolveImageURL(base *url.URL, src string) string {
	if src == "" || base == nil || !base.IsAbs() {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	return base.ResolveReference(ref).String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// LocationFromURL splits a page address into the path and full URL used by the product view
func LocationFromURL(pageURL string) types.PageLocation {
	location := types.PageLocation{Href: pageURL}
	if parsed, err := url.Parse(pageURL); err == nil {
		location.Path = parsed.Path
	}
	return location
}
