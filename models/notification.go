package models

const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationFollow  = "follow"
	NotificationShare   = "share"
	NotificationSystem  = "system"
)

// Notification is created as a side effect of engagement, comment and follow
// events crossing a different-user boundary. Only Read ever mutates.
type Notification struct {
	ID         string `bson:"_id,omitempty" json:"id"`
	Type       string `bson:"type" json:"type"`
	FromUserID string `bson:"fromUserId" json:"fromUserId"`
	ToUserID   string `bson:"toUserId" json:"toUserId"`
	PostID     string `bson:"postId,omitempty" json:"postId,omitempty"`
	Message    string `bson:"message" json:"message"`
	CreatedAt  int64  `bson:"createdAt" json:"createdAt"`
	Read       bool   `bson:"read" json:"read"`
}
