package models

type User struct {
	ID           string   `bson:"_id,omitempty" json:"id"`
	Email        string   `bson:"email" json:"email"`
	PasswordHash *string  `bson:"passwordHash,omitempty" json:"-"`
	Username     string   `bson:"username" json:"username"`
	Description  string   `bson:"description" json:"description"`
	AvatarURL    string   `bson:"avatarURL" json:"avatarURL"`
	Followers    []string `bson:"followers" json:"followers"`
	Following    []string `bson:"following" json:"following"`
	UserPosts    []string `bson:"userPosts" json:"userPosts"` // post ids, insertion order
	CreatedAt    int64    `bson:"createdAt" json:"createdAt"`
	LastSeen     int64    `bson:"lastSeen" json:"lastSeen"`
}

func (u *User) IsFollowing(userID string) bool {
	for _, id := range u.Following {
		if id == userID {
			return true
		}
	}
	return false
}
