package spec

// Kind distinguishes mutually exclusive (single) from independent (multi)
// option groups.
type Kind int

const (
	SingleChoice Kind = iota
	MultiChoice
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Group is a named set of selectable attribute options shown conditionally
// based on product category. Important affects visual emphasis only.
type Group struct {
	Key       string   `json:"key"`
	Label     string   `json:"label"`
	Important bool     `json:"important,omitempty"`
	Kind      Kind     `json:"kind"`
	Options   []Option `json:"options"`
}

// TemplateKey is the tagged variant selecting a group schema. Unknown is an
// explicit variant rather than an implicit empty lookup.
type TemplateKey string

const (
	TemplateUnknown          TemplateKey = "unknown"
	TemplateWheat            TemplateKey = "wheat"
	TemplateRice             TemplateKey = "rice"
	TemplateBrownBasmatiRice TemplateKey = "brownBasmatiRice"
	TemplatePolishedRice     TemplateKey = "polishedRice"
	TemplateSwarnaRice       TemplateKey = "swarnaRice"
	TemplateCereals          TemplateKey = "cereals"
)

// Rice sub-categories a seller can map; mapping narrows which template
// applies, in the priority order of riceVariantPriority.
const (
	SubCategoryBasmatiRice      = "Basmati Rice"
	SubCategoryBrownBasmatiRice = "Brown Basmati Rice"
	SubCategoryPolishedRice     = "Polished Rice"
	SubCategorySwarnaRice       = "Swarna Rice"
)

var RiceSubCategories = []string{
	SubCategoryBasmatiRice,
	SubCategoryBrownBasmatiRice,
	SubCategoryPolishedRice,
	SubCategorySwarnaRice,
}

func wheatGroups() []Group {
	return []Group{
		{Key: "wheatType", Label: "Wheat Type", Important: true, Kind: SingleChoice, Options: []Option{
			{Value: "sharbati", Label: "Sharbati"}, {Value: "desi", Label: "Desi Wheat"}, {Value: "khapli", Label: "Khapli"}, {Value: "lokwan", Label: "Lokwan"},
			{Value: "milling", Label: "Milling Wheat"}, {Value: "red", Label: "Red Wheat"}, {Value: "mp", Label: "MP Wheat"}, {Value: "durum", Label: "Durum"},
			{Value: "soft", Label: "Soft Wheat"}, {Value: "other", Label: "Other"},
		}},
		{Key: "grade", Label: "Grade", Important: true, Kind: SingleChoice, Options: []Option{
			{Value: "food-grade", Label: "Food Grade"}, {Value: "milling-grade", Label: "Milling Grade"}, {Value: "a-grade", Label: "A Grade"},
			{Value: "feed-grade", Label: "Feed Grade"}, {Value: "b-grade", Label: "B Grade"}, {Value: "other", Label: "Other"},
		}},
		{Key: "usage", Label: "Usage", Important: true, Kind: MultiChoice, Options: []Option{
			{Value: "chakki-atta", Label: "Chakki Atta"}, {Value: "pasta", Label: "Pasta"}, {Value: "flour-mill", Label: "Flour Mill"},
			{Value: "feed", Label: "Feed"}, {Value: "bakery", Label: "Bakery"}, {Value: "household", Label: "Household"}, {Value: "other", Label: "Other"},
		}},
		{Key: "cultivationType", Label: "Cultivation Type", Kind: SingleChoice, Options: []Option{
			{Value: "inorganic", Label: "Inorganic"}, {Value: "organic", Label: "Organic"}, {Value: "natural", Label: "Natural"}, {Value: "other", Label: "Other"},
		}},
		{Key: "purity", Label: "Purity", Kind: SingleChoice, Options: []Option{
			{Value: "99", Label: "99 %"}, {Value: "98", Label: "98 %"}, {Value: "97", Label: "97 %"}, {Value: "96", Label: "96 %"}, {Value: "other", Label: "Other"},
		}},
		{Key: "moisture", Label: "Moisture", Kind: SingleChoice, Options: []Option{
			{Value: "10", Label: "Max 10 %"}, {Value: "11", Label: "Max 11 %"}, {Value: "12", Label: "Max 12 %"},
			{Value: "13", Label: "Max 13 %"}, {Value: "14", Label: "Max 14 %"}, {Value: "other", Label: "Other"},
		}},
		{Key: "protein", Label: "Protein", Kind: SingleChoice, Options: []Option{
			{Value: "10-11", Label: "10 % - 11 %"}, {Value: "11-12", Label: "11 % - 12 %"}, {Value: "12-13", Label: "12 % - 13 %"}, {Value: "13-14", Label: "13 % - 14 %"},
		}},
		{Key: "foreignMatter", Label: "Foreign Matter", Kind: SingleChoice, Options: []Option{
			{Value: "0.5", Label: "Max 0.5 %"}, {Value: "1", Label: "Max 1 %"},
		}},
		{Key: "packagingType", Label: "Packaging Type", Kind: SingleChoice, Options: []Option{
			{Value: "jute-bag", Label: "Jute Bag"}, {Value: "pp-bag", Label: "PP Bag"}, {Value: "hdpe-bag", Label: "HDPE Bag"},
			{Value: "bulk", Label: "Bulk"}, {Value: "retail-pack", Label: "Retail Pack"},
		}},
	}
}

func riceGroups() []Group {
	return []Group{
		{Key: "variety", Label: "Variety", Important: true, Kind: SingleChoice, Options: []Option{
			{Value: "1121", Label: "1121"}, {Value: "traditional", Label: "Traditional"}, {Value: "1509", Label: "1509"},
			{Value: "1718", Label: "1718"}, {Value: "pusa", Label: "Pusa"}, {Value: "1401", Label: "1401"}, {Value: "other", Label: "Other"},
		}},
		{Key: "processingType", Label: "Processing Type", Important: true, Kind: SingleChoice, Options: []Option{
			{Value: "steam", Label: "Steam"}, {Value: "raw", Label: "Raw"}, {Value: "golden-sella", Label: "Golden Sella"},
			{Value: "creamy-sella", Label: "Creamy Sella"}, {Value: "white-sella", Label: "White Sella"}, {Value: "other", Label: "Other"},
		}},
		{Key: "packagingSizeRice", Label: "Packaging Size", Kind: SingleChoice, Options: []Option{
			{Value: "25-kg", Label: "25 kg"}, {Value: "30-kg", Label: "30 kg"}, {Value: "26-kg", Label: "26 kg"},
			{Value: "10-kg", Label: "10 kg"}, {Value: "50-kg", Label: "50 kg"}, {Value: "5-kg", Label: "5 kg"},
			{Value: "1-kg", Label: "1 kg"}, {Value: "other", Label: "Other"},
		}},
		{Key: "grainLengthAGL", Label: "Grain Length (AGL)", Kind: SingleChoice, Options: []Option{
			{Value: "8.35", Label: "8.35 mm"}, {Value: "7.70", Label: "7.70 mm"}, {Value: "8.30", Label: "8.30 mm"},
			{Value: "8.40", Label: "8.40 mm"}, {Value: "7.85", Label: "7.85 mm"}, {Value: "7.90", Label: "7.90 mm"},
			{Value: "7.50", Label: "7.50 mm"}, {Value: "7.30", Label: "7.30 mm"}, {Value: "other", Label: "Other"},
		}},
	}
}

func brownBasmatiRiceGroups() []Group {
	return []Group{
		{Key: "variety", Label: "Variety", Important: true, Kind: SingleChoice, Options: []Option{
			{Value: "basmati", Label: "Basmati"}, {Value: "pusa-basmati", Label: "Pusa Basmati"}, {Value: "1121-basmati", Label: "1121 Basmati"},
			{Value: "traditional-basmati", Label: "Traditional Basmati"}, {Value: "1509-basmati", Label: "1509 Basmati"}, {Value: "other", Label: "Other"},
		}},
		{Key: "brokenPercentage", Label: "Broken Percentage", Important: true, Kind: SingleChoice, Options: []Option{
			{Value: "nil", Label: "Nil Broken"}, {Value: "up-to-2", Label: "Up to 2%"}, {Value: "up-to-5", Label: "Up to 5%"},
			{Value: "up-to-10", Label: "Up to 10%"}, {Value: "up-to-25", Label: "Up to 25%"}, {Value: "other", Label: "Other"},
		}},
		{Key: "packagingSizeRice", Label: "Packaging Size", Important: true, Kind: SingleChoice, Options: []Option{
			{Value: "1-kg", Label: "1 kg"}, {Value: "5-kg", Label: "5 kg"}, {Value: "10-kg", Label: "10 kg"},
			{Value: "25-kg", Label: "25 kg"}, {Value: "50-kg", Label: "50 kg"}, {Value: "other", Label: "Other"},
		}},
		{Key: "processingType", Label: "Processing Type", Kind: SingleChoice, Options: []Option{
			{Value: "raw", Label: "Raw"}, {Value: "parboiled", Label: "Parboiled"}, {Value: "other", Label: "Other"},
		}},
		{Key: "sortexQuality", Label: "Sortex Quality", Kind: SingleChoice, Options: []Option{
			{Value: "100-sortex", Label: "100% Sortex"}, {Value: "sortex-clean", Label: "Sortex Clean"}, {Value: "other", Label: "Other"},
		}},
		{Key: "packagingType", Label: "Packaging Type", Kind: SingleChoice, Options: []Option{
			{Value: "pp-bag", Label: "PP Bag"}, {Value: "jute-bag", Label: "Jute Bag"}, {Value: "hdpe-bag", Label: "HDPE Bag"},
			{Value: "bopp-bag", Label: "BOPP Bag"}, {Value: "vacuum-pack", Label: "Vacuum Pack"}, {Value: "other", Label: "Other"},
		}},
		{Key: "grainType", Label: "Grain Type", Kind: SingleChoice, Options: []Option{
			{Value: "long-grain", Label: "Long Grain"}, {Value: "extra-long-grain", Label: "Extra Long Grain"},
		}},
		{Key: "cuisine", Label: "Cuisine", Kind: MultiChoice, Options: []Option{
			{Value: "indian", Label: "Indian"}, {Value: "multi-cuisine", Label: "Multi Cuisine"}, {Value: "mughlai", Label: "Mughlai"}, {Value: "continental", Label: "Continental"},
		}},
		{Key: "brand", Label: "Brand", Kind: SingleChoice, Options: []Option{
			{Value: "unbranded", Label: "Unbranded"}, {Value: "private-label", Label: "Private Label"},
		}},
		{Key: "shelfLife", Label: "Shelf Life", Kind: SingleChoice, Options: []Option{
			{Value: "12-months", Label: "12 Months"}, {Value: "18-months", Label: "18 Months"}, {Value: "24-months", Label: "24 Months"},
		}},
	}
}

func polishedRiceGroups() []Group {
	return []Group{
		{Key: "variety", Label: "Variety", Important: true, Kind: SingleChoice, Options: []Option{
			{Value: "basmati", Label: "Basmati"}, {Value: "swarna", Label: "Swarna"}, {Value: "ponni", Label: "Ponni"},
			{Value: "matta", Label: "Matta"}, {Value: "sona-masoori", Label: "Sona Masoori"}, {Value: "miniket", Label: "Miniket"},
			{Value: "gobindobhog", Label: "Gobindobhog"}, {Value: "ir64", Label: "IR 64"}, {Value: "sugandha", Label: "Sugandha"},
			{Value: "japonica", Label: "Japonica"}, {Value: "other", Label: "Other"},
		}},
		{Key: "typeProcessingStyle", Label: "Type (Processing Style)", Important: true, Kind: SingleChoice, Options: []Option{
			{Value: "parboiled-sella", Label: "Parboiled (Sella)"}, {Value: "brown", Label: "Brown"}, {Value: "raw", Label: "Raw"},
			{Value: "golden-sella", Label: "Golden Sella"}, {Value: "steam", Label: "Steam"}, {Value: "other", Label: "Other"},
		}},
		{Key: "brokenPercentage", Label: "Broken Percentage", Important: true, Kind: SingleChoice, Options: []Option{
			{Value: "5", Label: "5%"}, {Value: "2", Label: "2%"}, {Value: "lt1", Label: "<1%"},
			{Value: "25", Label: "25%"}, {Value: "10", Label: "10%"}, {Value: "100", Label: "100%"},
			{Value: "15", Label: "15%"}, {Value: "other", Label: "Other"},
		}},
		{Key: "grainLength", Label: "Grain Length", Kind: SingleChoice, Options: []Option{
			{Value: "long-grain", Label: "Long Grain"}, {Value: "medium-grain", Label: "Medium Grain"},
			{Value: "short-grain", Label: "Short Grain"}, {Value: "other", Label: "Other"},
		}},
		{Key: "polish", Label: "Polish", Kind: SingleChoice, Options: []Option{
			{Value: "double-polished", Label: "Double Polished"}, {Value: "single-polished", Label: "Single Polished"},
			{Value: "silky-polished", Label: "Silky Polished"}, {Value: "unpolished", Label: "Unpolished"}, {Value: "other", Label: "Other"},
		}},
		{Key: "packagingSizeRice", Label: "Packaging Size", Kind: SingleChoice, Options: []Option{
			{Value: "25-kg", Label: "25 kg"}, {Value: "50-kg", Label: "50 kg"}, {Value: "10-kg", Label: "10 kg"},
			{Value: "5-kg", Label: "5 kg"}, {Value: "1-kg", Label: "1 kg"}, {Value: "30-kg", Label: "30 kg"}, {Value: "other", Label: "Other"},
		}},
		{Key: "moistureContent", Label: "Moisture Content", Kind: SingleChoice, Options: []Option{
			{Value: "14-max", Label: "14% Max"}, {Value: "13-max", Label: "13% Max"},
			{Value: "12.5-max", Label: "12.5% Max"}, {Value: "12-max", Label: "12% Max"},
		}},
		{Key: "cropYear", Label: "Crop Year", Kind: SingleChoice, Options: []Option{
			{Value: "current-crop", Label: "Current Crop"}, {Value: "1-year-old", Label: "1-Year Old"}, {Value: "2-year-old", Label: "2-Year Old"},
		}},
		{Key: "admixture", Label: "Admixture", Kind: SingleChoice, Options: []Option{
			{Value: "1-max", Label: "1% Max"}, {Value: "5-max", Label: "5% Max"}, {Value: "0.5-max", Label: "0.5% Max"},
			{Value: "0.1-max", Label: "0.1% Max"}, {Value: "7-max", Label: "7% Max"},
		}},
		{Key: "damagedDiscolored", Label: "Damaged & Discolored Grains", Kind: SingleChoice, Options: []Option{
			{Value: "1-max", Label: "1% Max"}, {Value: "1.5-max", Label: "1.5% Max"},
			{Value: "2-max", Label: "2% Max"}, {Value: "0.5-max", Label: "0.5% Max"},
		}},
	}
}

func swarnaRiceGroups() []Group {
	return []Group{
		{Key: "processing", Label: "Processing", Important: true, Kind: SingleChoice, Options: []Option{
			{Value: "parboiled", Label: "Parboiled"}, {Value: "raw", Label: "Raw"}, {Value: "steam", Label: "Steam"}, {Value: "other", Label: "Other"},
		}},
		{Key: "brokenPercentage", Label: "Broken Percentage", Important: true, Kind: SingleChoice, Options: []Option{
			{Value: "25-broken", Label: "25% Broken"}, {Value: "100-broken", Label: "100% Broken"}, {Value: "10-broken", Label: "10% Broken"},
			{Value: "5-broken", Label: "5% Broken"}, {Value: "other", Label: "Other"},
		}},
		{Key: "riceGrade", Label: "Rice Grade", Important: true, Kind: SingleChoice, Options: []Option{
			{Value: "common", Label: "Common"}, {Value: "premium", Label: "Premium"}, {Value: "medium-grade", Label: "Medium Grade"},
			{Value: "faq", Label: "FAQ"}, {Value: "other", Label: "Other"},
		}},
		{Key: "grainType", Label: "Grain Type", Kind: SingleChoice, Options: []Option{
			{Value: "medium-grain", Label: "Medium Grain"}, {Value: "long-grain", Label: "Long Grain"}, {Value: "other", Label: "Other"},
		}},
		{Key: "polished", Label: "Polished", Kind: SingleChoice, Options: []Option{
			{Value: "single-polished", Label: "Single Polished"}, {Value: "unpolished", Label: "Unpolished"},
			{Value: "double-polished", Label: "Double Polished"}, {Value: "sortex-cleaned", Label: "Sortex Cleaned"}, {Value: "other", Label: "Other"},
		}},
		{Key: "moisture", Label: "Moisture", Kind: SingleChoice, Options: []Option{
			{Value: "14-max", Label: "14% Max"}, {Value: "13-max", Label: "13% Max"}, {Value: "12-max", Label: "12% Max"}, {Value: "other", Label: "Other"},
		}},
		{Key: "cropYear", Label: "Crop Year", Kind: SingleChoice, Options: []Option{
			{Value: "current-year", Label: "Current Year"}, {Value: "previous-year", Label: "Previous Year"},
		}},
		{Key: "sortex", Label: "Sortex", Kind: SingleChoice, Options: []Option{
			{Value: "sortex", Label: "Sortex"}, {Value: "non-sortex", Label: "Non Sortex"},
		}},
		{Key: "packagingSizeRice", Label: "Packaging Size", Kind: SingleChoice, Options: []Option{
			{Value: "50-kg", Label: "50 kg"}, {Value: "25-kg", Label: "25 kg"}, {Value: "10-kg", Label: "10 kg"},
			{Value: "90-kg", Label: "90 kg"}, {Value: "5-kg", Label: "5 kg"}, {Value: "1000-kg", Label: "1000 kg"},
		}},
	}
}

func cerealsGroups() []Group {
	return []Group{
		{Key: "grade", Label: "Grade", Important: true, Kind: SingleChoice, Options: []Option{
			{Value: "premium", Label: "Premium"}, {Value: "food-grade", Label: "Food Grade"}, {Value: "a-grade", Label: "A Grade"},
			{Value: "b-grade", Label: "B Grade"}, {Value: "standard", Label: "Standard"}, {Value: "other", Label: "Other"},
		}},
		{Key: "cultivationType", Label: "Cultivation Type", Kind: SingleChoice, Options: []Option{
			{Value: "inorganic", Label: "Inorganic"}, {Value: "organic", Label: "Organic"}, {Value: "natural", Label: "Natural"}, {Value: "other", Label: "Other"},
		}},
		{Key: "purity", Label: "Purity", Kind: SingleChoice, Options: []Option{
			{Value: "99", Label: "99 %"}, {Value: "98", Label: "98 %"}, {Value: "97", Label: "97 %"}, {Value: "other", Label: "Other"},
		}},
		{Key: "packagingType", Label: "Packaging Type", Kind: SingleChoice, Options: []Option{
			{Value: "jute-bag", Label: "Jute Bag"}, {Value: "pp-bag", Label: "PP Bag"}, {Value: "hdpe-bag", Label: "HDPE Bag"},
			{Value: "bulk", Label: "Bulk"}, {Value: "retail-pack", Label: "Retail Pack"},
		}},
	}
}

var registry = map[TemplateKey][]Group{
	TemplateWheat:            wheatGroups(),
	TemplateRice:             riceGroups(),
	TemplateBrownBasmatiRice: brownBasmatiRiceGroups(),
	TemplatePolishedRice:     polishedRiceGroups(),
	TemplateSwarnaRice:       swarnaRiceGroups(),
	TemplateCereals:          cerealsGroups(),
}
