package adapters

import (
	"context"
	"fmt"
	"strings"

	"ssg-pdp/internal/types"
)

// ProductDetailsSelector locates the block a pre-rendered product page is built around
const ProductDetailsSelector = ".product-details"

// PageDetails is what the document extractor reads from a product page body.
// PriceText is kept raw; ParsePrice turns it into a price record.
type PageDetails struct {
	Name        string
	Images      []string
	Description string
	Options     []types.OptionSpec
	PriceText   string

	// OptionsErr reports option rows that could not be read
	OptionsErr error
}

// SSGAdapter loads and reads statically rendered product pages
type SSGAdapter struct {
	*BaseAdapter
}

// NewSSGAdapter creates a new SSG page adapter
func NewSSGAdapter(config *types.Config, logger types.Logger) *SSGAdapter {
	return &SSGAdapter{
		BaseAdapter: NewBaseAdapter(config, logger),
	}
}

// LoadDocument fetches a page and returns its root node
func (s *SSGAdapter) LoadDocument(ctx context.Context, pageURL string) (types.Node, error) {
	s.logger.Debugf("Loading page: %s", pageURL)

	html, err := s.GetPageContent(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get page content: %w", err)
	}

	return s.ParseDocument(html)
}

// ParseDocument parses HTML and returns its root node
func (s *SSGAdapter) ParseDocument(html string) (types.Node, error) {
	doc, err := s.ParseHTML(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return DocumentNode(doc), nil
}

// IsSSGPage reports whether the page carries a non-empty sku meta tag
func IsSSGPage(doc types.Node) bool {
	if doc == nil {
		return false
	}
	tag := doc.FindOne(`meta[name="sku"]`)
	if tag == nil {
		return false
	}
	content, _ := tag.Attr("content")
	return strings.TrimSpace(content) != ""
}

// ParseProductDetails reads name, images, description, options and the price text
// from the product details block. It returns nil when the page has no such block.
func (s *SSGAdapter) ParseProductDetails(doc types.Node) *PageDetails {
	if doc == nil {
		return nil
	}
	productDetails := doc.FindOne(ProductDetailsSelector)
	if productDetails == nil {
		s.logger.Debug("No product details block on page")
		return nil
	}

	options, err := ParseOptions(productDetails)
	if err != nil {
		s.logger.Warnf("Some product options could not be read: %v", err)
	}

	return &PageDetails{
		Name:        parseProductName(productDetails),
		Images:      parseProductImages(productDetails),
		Description: parseProductDescription(productDetails),
		Options:     options,
		PriceText:   parsePriceText(productDetails),
		OptionsErr:  err,
	}
}

func parseProductName(productDetails types.Node) string {
	heading := productDetails.FindOne("h1")
	if heading == nil {
		return ""
	}
	return heading.Text()
}

// parseProductImages reads the image sources listed after the "images" heading row.
// An image without a src yields an empty entry.
func parseProductImages(productDetails types.Node) []string {
	images := []string{}

	list := sectionBody(productDetails, "images", true)
	if list != nil {
		list = list.FindOne("ul")
	}
	if list == nil {
		return images
	}

	for _, img := range list.FindAll("li img") {
		src, _ := img.Attr("src")
		images = append(images, strings.TrimSpace(src))
	}
	return images
}

func parseProductDescription(productDetails types.Node) string {
	body := sectionBody(productDetails, "description", false)
	if body == nil {
		return ""
	}
	return body.Text()
}

func parsePriceText(productDetails types.Node) string {
	body := sectionBody(productDetails, "price", true)
	if body == nil {
		return ""
	}
	return body.Text()
}

// sectionBody returns the block that follows the container of an h2 section heading.
// With closest set the container is the nearest enclosing div, otherwise the direct parent.
func sectionBody(productDetails types.Node, id string, closest bool) types.Node {
	heading := productDetails.FindOne("h2#" + id)
	if heading == nil {
		return nil
	}

	var container types.Node
	if closest {
		container = heading.Closest("div")
	} else {
		container = heading.Parent()
	}
	if container == nil {
		return nil
	}

	return container.NextSibling()
}
