package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ssg-pdp/internal/types"
)

const productPageHTML = `<html>
<head>
  <meta name="sku" content="WID-1">
  <meta name="twitter:title" content="Widget | Shop">
  <meta name="description" content="Meta description">
  <meta property="og:type" content="product">
</head>
<body>
<main>
<div class="product-details">
  <div><div><h1>  Widget </h1></div></div>
  <div>
    <div><h2 id="price">Price</h2></div>
    <div>$19.99</div>
  </div>
  <div>
    <div><h2 id="images">Images</h2></div>
    <div>
      <ul>
        <li><picture><img src="/media/widget-front.jpg" alt=""></picture></li>
        <li><img src="/media/widget-back.jpg"></li>
      </ul>
    </div>
  </div>
  <div>
    <div><h2 id="description">Description</h2></div>
    <div><p>A sturdy widget.</p></div>
  </div>
  <div>
    <div><h2 id="options">Options</h2></div>
    <div>
      <ul>
        <li>
          <p>Color</p><p>color</p><p>true</p>
          <ul>
            <li><p>Red</p><p>red</p><p>true</p></li>
            <li><p>Blue</p><p>blue</p><p>false</p></li>
          </ul>
        </li>
      </ul>
    </div>
  </div>
</div>
</main>
</body>
</html>`

func parseTestDocument(t *testing.T, html string) types.Node {
	t.Helper()
	adapter := NewSSGAdapter(types.DefaultConfig(), logrus.New())
	defer adapter.Close()

	doc, err := adapter.ParseDocument(html)
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc
}

func TestParseProductDetails(t *testing.T) {
	adapter := NewSSGAdapter(types.DefaultConfig(), logrus.New())
	defer adapter.Close()

	details := adapter.ParseProductDetails(parseTestDocument(t, productPageHTML))

	require.NotNil(t, details)
	assert.Equal(t, "Widget", details.Name)
	assert.Equal(t, []string{"/media/widget-front.jpg", "/media/widget-back.jpg"}, details.Images)
	assert.Equal(t, "A sturdy widget.", details.Description)
	assert.Equal(t, "$19.99", details.PriceText)
	assert.Len(t, details.Options, 1)
	assert.NoError(t, details.OptionsErr)
}

func TestParseProductDetails_NoProductDetails(t *testing.T) {
	adapter := NewSSGAdapter(types.DefaultConfig(), logrus.New())
	defer adapter.Close()

	doc := parseTestDocument(t, `<html><body><h1>Blog post</h1></body></html>`)

	assert.Nil(t, adapter.ParseProductDetails(doc))
	assert.Nil(t, adapter.ParseProductDetails(nil))
}

func TestParseProductDetails_MissingSections(t *testing.T) {
	adapter := NewSSGAdapter(types.DefaultConfig(), logrus.New())
	defer adapter.Close()

	doc := parseTestDocument(t, `<div class="product-details"><div><div><h1>Bare</h1></div></div></div>`)
	details := adapter.ParseProductDetails(doc)

	require.NotNil(t, details)
	assert.Equal(t, "Bare", details.Name)
	assert.NotNil(t, details.Images)
	assert.Empty(t, details.Images)
	assert.Empty(t, details.Description)
	assert.Empty(t, details.PriceText)
	assert.NotNil(t, details.Options)
	assert.Empty(t, details.Options)
}

func TestExtractMetaTags(t *testing.T) {
	metadata := ExtractMetaTags(parseTestDocument(t, productPageHTML))

	assert.Equal(t, map[string]string{
		"sku":           "WID-1",
		"twitter:title": "Widget | Shop",
		"description":   "Meta description",
	}, metadata)
	assert.Empty(t, ExtractMetaTags(nil))
}

func TestIsSSGPage(t *testing.T) {
	tests := []struct {
		name string
		html string
		want bool
	}{
		{name: "sku meta", html: productPageHTML, want: true},
		{name: "blank sku", html: `<meta name="sku" content="   ">`, want: false},
		{name: "sku without content", html: `<meta name="sku">`, want: false},
		{name: "no sku", html: `<meta name="description" content="x">`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSSGPage(parseTestDocument(t, tt.html)))
		})
	}
	assert.False(t, IsSSGPage(nil))
}

func TestLoadDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(productPageHTML))
	}))
	defer server.Close()

	config := types.DefaultConfig()
	config.RequestDelay = 10 * time.Millisecond
	adapter := NewSSGAdapter(config, logrus.New())
	defer adapter.Close()

	doc, err := adapter.LoadDocument(context.Background(), server.URL+"/products/widget/wid-1")

	require.NoError(t, err)
	assert.True(t, IsSSGPage(doc))
	assert.NotNil(t, doc.FindOne(ProductDetailsSelector))
}

func TestParseProductDetails_ImageWithoutSource(t *testing.T) {
	adapter := NewSSGAdapter(types.DefaultConfig(), logrus.New())
	defer adapter.Close()

	doc := parseTestDocument(t, `<div class="product-details">
  <div><div><h2 id="images">Images</h2></div><div><ul>
    <li><img src=" /media/a.jpg "></li>
    <li><img data-src="/media/lazy.jpg"></li>
  </ul></div></div>
</div>`)
	details := adapter.ParseProductDetails(doc)

	require.NotNil(t, details)
	assert.Equal(t, []string{"/media/a.jpg", ""}, details.Images)
}
