package model

import "time"

// BlogModel mirrors the 'blogs' table. AuthorID references users.id and cascades on delete.
type BlogModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Title     string `gorm:"type:varchar(255);uniqueIndex:idx_blogs_title;not null"`
	Content   string `gorm:"type:text;not null"`
	AuthorID  int64  `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Author *UserModel `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (BlogModel) TableName() string {
	return "blogs"
}
