package models

// EngagementRecord is the flat join record behind a like or share. It is kept
// in lockstep with the post's likedBy/sharedBy array so membership can be
// answered either way.
type EngagementRecord struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	PostID    string `bson:"postId" json:"postId"`
	UserID    string `bson:"userId" json:"userId"`
	CreatedAt int64  `bson:"createdAt" json:"createdAt"`
}
