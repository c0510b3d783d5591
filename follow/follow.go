package follow

import (
	"time"

	"moviereview/errs"
)

var ErrSelfFollow = errs.Errorf(errs.EINVALID, "follow: users cannot follow themselves")

// Follow means FollowerID follows FollowedID. A pair is stored at most once.
type Follow struct {
	ID         int64     `json:"id"`
	FollowerID int64     `json:"followerId"`
	FollowedID int64     `json:"followedId"`
	CreatedAt  time.Time `json:"createdAt"`
}
