package forms_test

import (
	"testing"

	"shopkeeper"
	"shopkeeper/forms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductForm() *forms.ProductForm {
	return &forms.ProductForm{
		Name:       "Wool Socks",
		Desc:       "Warm socks",
		Category:   "Socks",
		Color:      "grey",
		Length:     "10",
		Breadth:    "5",
		Height:     "2",
		Price:      "12.50",
		SKU:        "SOCK-01",
		ImageCount: 2,
	}
}

func TestProductFormValid(t *testing.T) {
	form := validProductForm()
	product, errs := form.Validate()
	require.Nil(t, errs)
	require.NotNil(t, product)

	// Numeric fields coerce from their string submission.
	assert.Equal(t, "10", product.Length.String())
	assert.Equal(t, "12.5", product.Price.String())
	assert.Equal(t, "Wool Socks", product.Name)
}

func TestProductFormErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *forms.ProductForm)
		field   string
		message string
	}{
		{"missing_name", func(f *forms.ProductForm) { f.Name = "" }, "product_name", "Product name is required"},
		{"missing_desc", func(f *forms.ProductForm) { f.Desc = "" }, "product_desc", "Product description is required"},
		{"missing_category", func(f *forms.ProductForm) { f.Category = "" }, "product_category", "Product category is required"},
		{"zero_price", func(f *forms.ProductForm) { f.Price = "0" }, "product_price", "Product price must be positive"},
		{"negative_price", func(f *forms.ProductForm) { f.Price = "-5" }, "product_price", "Product price must be positive"},
		{"junk_price", func(f *forms.ProductForm) { f.Price = "abc" }, "product_price", "Product price must be positive"},
		{"zero_length", func(f *forms.ProductForm) { f.Length = "0" }, "product_length", "Product length must be positive"},
		{"negative_breadth", func(f *forms.ProductForm) { f.Breadth = "-1" }, "product_breadth", "Product breadth must be positive"},
		{"no_images", func(f *forms.ProductForm) { f.ImageCount = 0 }, "images", "At least one image is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validProductForm()
			tt.mutate(form)
			product, errs := form.Validate()
			assert.Nil(t, product)
			require.NotNil(t, errs)
			assert.Equal(t, tt.message, errs[tt.field])
		})
	}
}

func TestProductFormSanitises(t *testing.T) {
	form := validProductForm()
	form.Name = `<script>alert(1)</script>Wool Socks`
	product, errs := form.Validate()
	require.Nil(t, errs)
	assert.Equal(t, "Wool Socks", product.Name)
}

func TestCategoryForm(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		form := &forms.CategoryForm{Name: "Hats"}
		assert.Nil(t, form.Validate())
	})
	t.Run("empty_name", func(t *testing.T) {
		form := &forms.CategoryForm{Name: ""}
		errs := form.Validate()
		require.NotNil(t, errs)
		assert.Equal(t, "Category name is required", errs["name"])
	})
	t.Run("markup_only_name", func(t *testing.T) {
		form := &forms.CategoryForm{Name: "<b></b>"}
		errs := form.Validate()
		require.NotNil(t, errs)
		assert.Equal(t, "Category name is required", errs["name"])
	})
}

func TestBillboardForm(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		form := &forms.BillboardForm{Title: "Summer Sale", ImageCount: 1}
		assert.Nil(t, form.Validate())
	})
	t.Run("missing_title", func(t *testing.T) {
		form := &forms.BillboardForm{ImageCount: 1}
		errs := form.Validate()
		require.NotNil(t, errs)
		assert.Equal(t, "Billboard name is required", errs["title"])
	})
	t.Run("missing_image", func(t *testing.T) {
		form := &forms.BillboardForm{Title: "Summer Sale"}
		errs := form.Validate()
		require.NotNil(t, errs)
		assert.Equal(t, "At least one image is required", errs["image"])
	})
}

func TestLoginForm(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		field    string
		message  string
	}{
		{"missing_email", "", "secret", "email", "Email is required"},
		{"bad_email", "not-an-email", "secret", "email", "Invalid email"},
		{"missing_password", "admin@example.com", "", "password", "Password is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := &forms.LoginForm{Email: tt.email, Password: tt.password}
			errs := form.Validate()
			require.NotNil(t, errs)
			assert.Equal(t, tt.message, errs[tt.field])
		})
	}

	t.Run("valid", func(t *testing.T) {
		form := &forms.LoginForm{Email: "admin@example.com", Password: "secret"}
		assert.Nil(t, form.Validate())
	})
}

func TestPageFormHeadingHeader(t *testing.T) {
	form := &forms.PageForm{
		Href:         "/about",
		HeaderOption: "heading",
		PageHeading:  "About Us",
		NavOption:    "text",
		NavLink:      "About",
	}
	draft, errs := form.Validate()
	require.Nil(t, errs)
	assert.Equal(t, shopkeeper.PageHeaderHeading, draft.HeaderKind)
	assert.Equal(t, "About Us", draft.Heading)
	assert.Equal(t, shopkeeper.PageNavLinkText, draft.NavKind)
	assert.Equal(t, "About", draft.NavText)
}

func TestPageFormBillboardHeader(t *testing.T) {
	form := &forms.PageForm{
		Href:         "/sale",
		HeaderOption: "billboard",
		Billboard:    "Summer Sale",
		NavOption:    "image",
		ImageCount:   1,
	}
	draft, errs := form.Validate()
	require.Nil(t, errs)
	assert.Equal(t, shopkeeper.PageHeaderBillboard, draft.HeaderKind)
	assert.Equal(t, "Summer Sale", draft.BillboardTitle)
	assert.Equal(t, shopkeeper.PageNavLinkImage, draft.NavKind)
}

func TestPageFormRejectsStaleBranch(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *forms.PageForm)
		field  string
	}{
		// Toggling the header to billboard must not let the abandoned
		// heading value through.
		{"stale_heading", func(f *forms.PageForm) {
			f.HeaderOption = "billboard"
			f.Billboard = "Summer Sale"
			f.PageHeading = "leftover"
		}, "pageHeading"},
		{"stale_billboard", func(f *forms.PageForm) {
			f.Billboard = "leftover"
		}, "billboard"},
		{"stale_nav_text", func(f *forms.PageForm) {
			f.NavOption = "image"
			f.ImageCount = 1
		}, "navLink"},
		{"stale_nav_image", func(f *forms.PageForm) {
			f.ImageCount = 1
		}, "image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := &forms.PageForm{
				Href:         "/about",
				HeaderOption: "heading",
				PageHeading:  "About Us",
				NavOption:    "text",
				NavLink:      "About",
			}
			tt.mutate(form)
			draft, errs := form.Validate()
			assert.Nil(t, draft)
			require.NotNil(t, errs)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestPageFormRequiredFields(t *testing.T) {
	form := &forms.PageForm{HeaderOption: "heading", NavOption: "text"}
	_, errs := form.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, "href is required", errs["href"])
	assert.Equal(t, "Page heading is required", errs["pageHeading"])
	assert.Equal(t, "Nav link is required", errs["navLink"])
}

func TestPageFormBadDiscriminants(t *testing.T) {
	form := &forms.PageForm{Href: "/x", HeaderOption: "banner", NavOption: "icon"}
	_, errs := form.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "headerOption")
	assert.Contains(t, errs, "navlinkOption")
}

func TestUpdatePageForm(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		form := &forms.UpdatePageForm{PageID: "p1", Href: "/about", PageHeading: "About"}
		assert.Nil(t, form.Validate())
	})
	t.Run("missing_page_id", func(t *testing.T) {
		form := &forms.UpdatePageForm{Href: "/about"}
		errs := form.Validate()
		require.NotNil(t, errs)
		assert.Equal(t, "pageId is required", errs["pageId"])
	})
	t.Run("missing_href", func(t *testing.T) {
		form := &forms.UpdatePageForm{PageID: "p1"}
		errs := form.Validate()
		require.NotNil(t, errs)
		assert.Equal(t, "href is required", errs["href"])
	})
}

func TestValidationErrorsError(t *testing.T) {
	errs := forms.ValidationErrors{"b": "second", "a": "first"}
	// Deterministic field order regardless of map iteration.
	assert.Equal(t, "a: first; b: second", errs.Error())
}
