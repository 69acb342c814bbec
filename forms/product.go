package forms

import "shopkeeper"

// ProductForm is a new product submission. Numeric fields arrive as strings
// and coerce before validation.
type ProductForm struct {
	Name       string `json:"product_name"`
	Desc       string `json:"product_desc"`
	Category   string `json:"product_category"`
	Color      string `json:"product_color"`
	Length     string `json:"product_length"`
	Breadth    string `json:"product_breadth"`
	Height     string `json:"product_height"`
	Price      string `json:"product_price"`
	SKU        string `json:"sku"`
	Archived   bool   `json:"archived"`
	Featured   bool   `json:"featured"`
	ImageCount int    `json:"-"`
}

// Validate checks the submission and returns the coerced product (without
// ID or images, which the handler fills in after upload).
func (f *ProductForm) Validate() (*shopkeeper.Product, ValidationErrors) {
	errs := ValidationErrors{}

	f.Name = sanitize(f.Name)
	f.Desc = sanitize(f.Desc)
	f.Category = sanitize(f.Category)
	if f.Name == "" {
		errs["product_name"] = "Product name is required"
	}
	if f.Desc == "" {
		errs["product_desc"] = "Product description is required"
	}
	if f.Category == "" {
		errs["product_category"] = "Product category is required"
	}
	if f.Color == "" {
		errs["product_color"] = "Product color is required"
	}
	if f.SKU == "" {
		errs["sku"] = "Product SKU is required"
	}
	length := positiveDecimal(f.Length, "Product length must be positive", "product_length", errs)
	breadth := positiveDecimal(f.Breadth, "Product breadth must be positive", "product_breadth", errs)
	height := positiveDecimal(f.Height, "Product height must be positive", "product_height", errs)
	price := positiveDecimal(f.Price, "Product price must be positive", "product_price", errs)
	if f.ImageCount < 1 {
		errs["images"] = "At least one image is required"
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &shopkeeper.Product{
		Name:        f.Name,
		Description: f.Desc,
		Color:       f.Color,
		Length:      length,
		Breadth:     breadth,
		Height:      height,
		Price:       price,
		SKU:         f.SKU,
		Archived:    f.Archived,
		Featured:    f.Featured,
	}, nil
}

// UpdateProductForm is a full-document product edit. The category and
// images are not editable from the update screen.
type UpdateProductForm struct {
	Name     string `json:"product_name"`
	Desc     string `json:"product_desc"`
	Color    string `json:"product_color"`
	Length   string `json:"product_length"`
	Breadth  string `json:"product_breadth"`
	Height   string `json:"product_height"`
	Price    string `json:"product_price"`
	SKU      string `json:"sku"`
	Archived bool   `json:"archived"`
	Featured bool   `json:"featured"`
}

func (f *UpdateProductForm) Validate() (*shopkeeper.Product, ValidationErrors) {
	errs := ValidationErrors{}

	f.Name = sanitize(f.Name)
	f.Desc = sanitize(f.Desc)
	if f.Name == "" {
		errs["product_name"] = "Product name is required"
	}
	if f.Desc == "" {
		errs["product_desc"] = "Product description is required"
	}
	if f.Color == "" {
		errs["product_color"] = "Product color is required"
	}
	if f.SKU == "" {
		errs["sku"] = "Product SKU is required"
	}
	length := positiveDecimal(f.Length, "Product length must be positive", "product_length", errs)
	breadth := positiveDecimal(f.Breadth, "Product breadth must be positive", "product_breadth", errs)
	height := positiveDecimal(f.Height, "Product height must be positive", "product_height", errs)
	price := positiveDecimal(f.Price, "Product price must be positive", "product_price", errs)

	if len(errs) > 0 {
		return nil, errs
	}
	return &shopkeeper.Product{
		Name:        f.Name,
		Description: f.Desc,
		Color:       f.Color,
		Length:      length,
		Breadth:     breadth,
		Height:      height,
		Price:       price,
		SKU:         f.SKU,
		Archived:    f.Archived,
		Featured:    f.Featured,
	}, nil
}
