package forms

// BillboardForm is a new billboard submission. The image files travel
// beside the form as multipart parts; ImageCount is how many arrived.
type BillboardForm struct {
	Title      string `json:"title"`
	ImageCount int    `json:"-"`
}

func (f *BillboardForm) Validate() ValidationErrors {
	errs := ValidationErrors{}
	f.Title = sanitize(f.Title)
	if f.Title == "" {
		errs["title"] = "Billboard name is required"
	}
	if f.ImageCount < 1 {
		errs["image"] = "At least one image is required"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
