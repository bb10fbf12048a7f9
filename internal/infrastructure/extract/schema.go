package extract

// FieldRule declares how one named field is pulled out of a page: a CSS
// selector, an optional attribute (text content when empty), and whether
// the field collects every match or just the first.
type FieldRule struct {
	Name      string
	Selector  string
	Attribute string
	Multiple  bool
}

// Field names produced by the product schema.
const (
	FieldProductName        = "product_name"
	FieldPrice              = "price"
	FieldRating             = "rating"
	FieldNumReviews         = "num_reviews"
	FieldAvailability       = "availability"
	FieldImage              = "image"
	FieldDescription        = "description"
	FieldTechnicalDetails   = "technical_details"
	FieldProductDescription = "product_description"
	FieldReviews            = "reviews"
)

// ProductSchema returns the selector schema for an Amazon product page.
// The target DOM is assumed stable; a missing selector target is handled
// at extraction time, never here.
func ProductSchema() []FieldRule {
	return []FieldRule{
		{Name: FieldProductName, Selector: "span#productTitle"},
		{Name: FieldPrice, Selector: "span.a-price span.a-offscreen"},
		{Name: FieldRating, Selector: "span.a-icon-alt"},
		{Name: FieldNumReviews, Selector: "span#acrCustomerReviewText"},
		{Name: FieldAvailability, Selector: "div#availability span"},
		{Name: FieldImage, Selector: "img#landingImage", Attribute: "src"},
		{Name: FieldDescription, Selector: "div#feature-bullets .a-list-item", Multiple: true},
		{Name: FieldTechnicalDetails, Selector: "#productDetails_techSpec_section_1 tr, #productDetails_detailBullets_sections1 tr", Multiple: true},
		{Name: FieldProductDescription, Selector: "#productDescription p", Multiple: true},
		{Name: FieldReviews, Selector: "div.review-text-content span", Multiple: true},
	}
}
