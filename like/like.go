package like

import "time"

// Like is a user's like on a review. A pair is stored at most once.
type Like struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	ReviewID  int64     `json:"reviewId"`
	CreatedAt time.Time `json:"createdAt"`
}
