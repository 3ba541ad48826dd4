package catalog

const priceFieldsFragment = `fragment priceFields on ProductViewPrice {
  roles
  regular {
      amount {
          currency
          value
      }
  }
  final {
      amount {
          currency
          value
      }
  }
}`

// ProductPriceQuery fetches the price of a simple product or the price range of a complex one
const ProductPriceQuery = `query ProductQuery($sku: String!) {
  products(skus: [$sku]) {
    ... on SimpleProductView {
      price {
        ...priceFields
      }
    }
    ... on ComplexProductView {
      priceRange {
        maximum {
          ...priceFields
        }
        minimum {
          ...priceFields
        }
      }
    }
  }
}
` + priceFieldsFragment
