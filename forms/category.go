package forms

// CategoryForm is a new product category submission.
type CategoryForm struct {
	Name string `json:"name"`
}

func (f *CategoryForm) Validate() ValidationErrors {
	f.Name = sanitize(f.Name)
	if f.Name == "" {
		return ValidationErrors{"name": "Category name is required"}
	}
	return nil
}
