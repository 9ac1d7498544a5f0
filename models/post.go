package models

// Post is the unit of content. A comment is a post whose Parent field names
// another post; an empty Parent means a top-level post, so the invalid
// "child without a parent" state cannot be represented.
type Post struct {
	ID         string   `bson:"_id,omitempty" json:"id"`
	UID        string   `bson:"uid" json:"uid"`
	Author     string   `bson:"author" json:"author"`
	Content    string   `bson:"content" json:"content"`
	ImageURL   string   `bson:"imageURL,omitempty" json:"imageURL,omitempty"`
	Images     []string `bson:"images" json:"images"`
	IsPrivate  bool     `bson:"isPrivate" json:"isPrivate"`
	Parent     string   `bson:"parent,omitempty" json:"parent,omitempty"`
	Likes      int      `bson:"likes" json:"likes"`
	LikedBy    []string `bson:"likedBy" json:"likedBy"`
	Shares     int      `bson:"shares" json:"shares"`
	SharedBy   []string `bson:"sharedBy" json:"sharedBy"`
	Comments   []string `bson:"comments" json:"comments"`
	ReportedBy []string `bson:"reportedBy" json:"reportedBy"`
	CreatedAt  int64    `bson:"createdAt" json:"createdAt"` // unix milliseconds
}

func (p *Post) IsComment() bool {
	return p.Parent != ""
}

// ReportedByUser reports whether userID has reported this post. Feeds use it
// to hide reported posts from the reporting viewer.
func (p *Post) ReportedByUser(userID string) bool {
	if userID == "" {
		return false
	}
	for _, id := range p.ReportedBy {
		if id == userID {
			return true
		}
	}
	return false
}
