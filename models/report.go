package models

// Report records who reported a post. Used only for viewer-side feed
// filtering, not moderation action.
type Report struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	PostID    string `bson:"postId" json:"postId"`
	UserID    string `bson:"userId" json:"userId"`
	Reason    string `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt int64  `bson:"createdAt" json:"createdAt"`
}
