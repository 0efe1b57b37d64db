package elasticsearch

// DefaultIndexName is the default Elasticsearch index for product documents.
const DefaultIndexName = "products"

// indexMapping returns the full JSON mapping for the products index.
//
// name, description, image, and the category name/slug are analyzed text;
// tags and category.id are exact-match keywords; id is a keyword so it can
// serve as the stable sort tie-break key.
func indexMapping() string {
	return `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0
  },
  "mappings": {
    "properties": {
      "id":            { "type": "keyword" },
      "name":          { "type": "text" },
      "description":   { "type": "text" },
      "tags":          { "type": "keyword" },
      "price":         { "type": "float" },
      "originalPrice": { "type": "float" },
      "image":         { "type": "text" },
      "category": {
        "properties": {
          "id":   { "type": "keyword" },
          "name": { "type": "text" },
          "slug": { "type": "text" }
        }
      },
      "stock":      { "type": "integer" },
      "rating":     { "type": "float" },
      "isActive":   { "type": "boolean" },
      "isFeatured": { "type": "boolean" },
      "createdAt":  { "type": "date" }
    }
  }
}`
}
