package entity

import "time"

// Blog is a post owned by exactly one author.
type Blog struct {
	ID        int64     // Database-assigned identifier.
	Title     string    // Unique across all blogs.
	Content   string    // Post body.
	AuthorID  int64     // Owning user. Fixed at creation.
	Author    *User     // Loaded author record, nil when the repository did not join it.
	CreatedAt time.Time // Timestamp of when the post was created.
	UpdatedAt time.Time // Timestamp of the last modification to the post.
}
