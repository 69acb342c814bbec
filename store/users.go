package store

import (
	"context"

	"shopkeeper"

	"github.com/ninja-software/terror/v2"
)

// UserCreate adds an account document to the users collection.
func (s *Store) UserCreate(ctx context.Context, email string, password string) (*shopkeeper.User, error) {
	doc, err := s.Conn.CreateDocument(ctx, s.Collections.Users, shopkeeper.NewUserID().String(), map[string]interface{}{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, terror.Error(err, "create user")
	}
	return &shopkeeper.User{
		ID:        shopkeeper.UserID(doc.ID),
		Email:     doc.Str("email"),
		CreatedAt: doc.CreatedAt,
	}, nil
}

// UserUpdate patches an account's profile fields. Empty values are left
// untouched.
func (s *Store) UserUpdate(ctx context.Context, id shopkeeper.UserID, name string, password string, mobileNumber string) error {
	fields := map[string]interface{}{}
	if name != "" {
		fields["name"] = name
	}
	if password != "" {
		fields["password"] = password
	}
	if mobileNumber != "" {
		fields["mobile_number"] = mobileNumber
	}
	if len(fields) == 0 {
		return nil
	}
	_, err := s.Conn.UpdateDocument(ctx, s.Collections.Users, id.String(), fields)
	if err != nil {
		return terror.Error(err, "update user")
	}
	return nil
}
