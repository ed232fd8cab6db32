package models

import "time"

// Professor is the teacher profile linked 1:1 to an Identity.
// Its ID is the identity id; there is no separate user_id column.
type Professor struct {
	ID        string
	Nome      string
	CreatedAt time.Time
}
