package shopkeeper

import (
	"fmt"
)

// ErrInvalidCredentials when a login attempt fails
var ErrInvalidCredentials = fmt.Errorf("invalid credentials")

// ErrSessionInvalid when a session cookie no longer resolves to an account
var ErrSessionInvalid = fmt.Errorf("session invalid")

// ErrEmailInvalid when the entered email is invalid
var ErrEmailInvalid = fmt.Errorf("invalid email")

// ErrNotAdmin when the account lacks the admin role
var ErrNotAdmin = fmt.Errorf("not an admin account")
