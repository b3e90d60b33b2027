package domain

import "time"

type Post struct {
	ID      int64  `json:"id"`
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
	// AuthorID becomes nil when the author account is deleted.
	AuthorID *int64     `json:"author_id"`
	Created  time.Time  `json:"created"`
	Cover    string     `json:"cover,omitempty" validate:"max=100"`
	Comments []*Comment `json:"comments,omitempty" validate:"-"`
}

func (p *Post) String() string {
	return p.Title
}

// Comment rows are removed together with their post or their author.
type Comment struct {
	ID       int64     `json:"id"`
	PostID   int64     `json:"post_id" validate:"required"`
	Content  string    `json:"content" validate:"required"`
	AuthorID int64     `json:"author_id" validate:"required"`
	Created  time.Time `json:"created"`
}

func (c *Comment) String() string {
	return c.Content
}
