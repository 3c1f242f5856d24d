package commerce

import "encoding/json"

// graphQLRequest is the wire shape of a Storefront GraphQL call
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphQLError is a single error entry in a GraphQL response
type graphQLError struct {
	Message string `json:"message"`
}

// graphQLResponse is the wire shape of a Storefront GraphQL response
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

// Storefront GraphQL queries. Field selections mirror what the storefront
// pages render; the payload passes through to the caller unmodified.
const (
	productByHandleQuery = `query ProductByHandle($handle: String!) {
  product(handle: $handle) {
    id
    handle
    title
    description
    descriptionHtml
    availableForSale
    priceRange {
      minVariantPrice { amount currencyCode }
      maxVariantPrice { amount currencyCode }
    }
    images(first: 10) {
      edges { node { url altText width height } }
    }
    variants(first: 50) {
      edges {
        node {
          id
          title
          sku
          availableForSale
          price { amount currencyCode }
        }
      }
    }
  }
}`

	collectionByHandleQuery = `query CollectionByHandle($handle: String!) {
  collection(handle: $handle) {
    id
    handle
    title
    description
    image { url altText }
    products(first: 50) {
      edges {
        node {
          id
          handle
          title
          availableForSale
          priceRange {
            minVariantPrice { amount currencyCode }
          }
          images(first: 1) {
            edges { node { url altText } }
          }
        }
      }
    }
  }
}`

	searchProductsQuery = `query SearchProducts($query: String!, $first: Int!) {
  products(first: $first, query: $query) {
    edges {
      node {
        id
        handle
        title
        availableForSale
        priceRange {
          minVariantPrice { amount currencyCode }
        }
        images(first: 1) {
          edges { node { url altText } }
        }
      }
    }
  }
}`
)
