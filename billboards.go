package shopkeeper

import "time"

// Billboard is a promotional image with a title. Deleting a billboard also
// deletes its stored file.
type Billboard struct {
	ID        BillboardID  `json:"id"`
	Title     string       `json:"title"`
	Image     UploadedFile `json:"image"`
	CreatedAt time.Time    `json:"createdAt"`
}
