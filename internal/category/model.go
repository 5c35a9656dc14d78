package category

type Category struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	NameEn *string `json:"nameEn,omitempty"`
}

type NewCategoryInput struct {
	Name   string  `json:"name"`
	NameEn *string `json:"nameEn"`
}
