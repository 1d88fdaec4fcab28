package workbench

// defaultFragrances is the catalog a fresh workspace starts with.
var defaultFragrances = []Fragrance{
	{ID: "f01", Name: "Lavender", Description: "Relaxing floral scent"},
	{ID: "f02", Name: "Bergamot", Description: "Fresh, refined citrus"},
	{ID: "f03", Name: "Sandalwood", Description: "Warm, sweet woody scent"},
	{ID: "f04", Name: "Rose", Description: "Lavish, deep floral"},
	{ID: "f05", Name: "Hinoki", Description: "Calming Japanese cypress wood"},
	{ID: "f06", Name: "Ylang-ylang", Description: "Sweet, sensual and exotic"},
	{ID: "f07", Name: "Peppermint", Description: "Cool and clean"},
	{ID: "f08", Name: "Vanilla", Description: "Sweet, warm and reassuring"},
	{ID: "f09", Name: "Eucalyptus", Description: "Clear scent that deepens the breath"},
	{ID: "f10", Name: "Jasmine", Description: "Rich, captivating floral"},
	{ID: "f11", Name: "Lemon", Description: "Bright, fresh citrus"},
	{ID: "f12", Name: "Cedarwood", Description: "Calm, deep woody scent"},
	{ID: "f13", Name: "Geranium", Description: "Gentle floral close to rose"},
	{ID: "f14", Name: "Patchouli", Description: "Deep, earthy and heavy"},
	{ID: "f15", Name: "Neroli", Description: "Elegant bitter orange blossom"},
	{ID: "f16", Name: "Tea tree", Description: "Sharp, clean scent"},
	{ID: "f17", Name: "Frankincense", Description: "Sacred, meditative resin"},
	{ID: "f18", Name: "Grapefruit", Description: "Sparkling, bright citrus"},
	{ID: "f19", Name: "Chamomile", Description: "Mild, apple-like sweetness"},
	{ID: "f20", Name: "Vetiver", Description: "Smoky, earthy depth"},
}

// DefaultFragrances returns a copy of the built-in catalog.
func DefaultFragrances() []Fragrance {
	out := make([]Fragrance, len(defaultFragrances))
	copy(out, defaultFragrances)
	return out
}

// DefaultDocument is the document used on first run, or when the stored
// one cannot be read: the built-in catalog and no patterns.
func DefaultDocument() Document {
	return Document{
		Fragrances: DefaultFragrances(),
		Patterns:   []Pattern{},
	}
}
