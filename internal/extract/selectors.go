package extract

// CSS selectors for the product detail page elements the extractors read.
const (
	LanguageSelector = "html"
	ASINSelector     = `input[name="ASIN"]`

	DetailLinesSelector = "#detailBulletsWrapper_feature_div li, " +
		"#detailBullets_feature_div li, " +
		"#productDetails_detailBullets_sections1 tr, " +
		"#productDetails_db_sections tr, " +
		".detail-bullet-list li"

	PriceSelector        = ".a-price .a-offscreen, #price, .a-price"
	FormatSelector       = "#productSubtitle, #binding"
	ReviewCountSelector  = "#acrCustomerReviewText"
	StarRatingSelector   = ".a-icon-star"
	PagesFallbackSection = ".a-section .a-row"

	// DefaultLanguage is assumed when the page does not declare one.
	DefaultLanguage = "en-US"
)
