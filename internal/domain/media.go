package domain

import "time"

// Media is a photo attached to an event. The bytes live in the object store
// under ObjectKey; URL is a presigned link minted at read time and is never
// persisted.
type Media struct {
	ID        int
	EventID   int
	ObjectKey string
	Caption   *string
	URL       string
	CreatedAt time.Time
}
