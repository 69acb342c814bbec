package shopkeeper

import "time"

// Category groups products. Names act as informal unique keys; the store
// resolves them oldest-first when duplicates exist.
type Category struct {
	ID        CategoryID `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
}
