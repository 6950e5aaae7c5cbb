package models

// ListingFilters — фильтры публичного каталога листингов.
// Нулевые указатели означают отсутствие фильтра по полю.
type ListingFilters struct {
	Industry      *string
	Region        *string
	MinRevenue    *float64
	MaxRevenue    *float64
	MinPrice      *float64
	MaxPrice      *float64
	RiskGrade     *string
	SortBy        string // Поле сортировки, по умолчанию created_at
	SortOrder     string // asc или desc, по умолчанию desc
	FeaturedFirst bool   // Продвигаемые листинги показываются первыми
}

// FilterOption — пара значение/подпись для словарей фильтров
// (отрасли, регионы, рейтинги риска).
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
