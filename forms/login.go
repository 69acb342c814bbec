package forms

import "shopkeeper/helpers"

// LoginForm is the credentials submission for the back office.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f *LoginForm) Validate() ValidationErrors {
	errs := ValidationErrors{}
	f.Email = sanitize(f.Email)
	if f.Email == "" {
		errs["email"] = "Email is required"
	} else if !helpers.IsValidEmail(f.Email) {
		errs["email"] = "Invalid email"
	}
	if f.Password == "" {
		errs["password"] = "Password is required"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
