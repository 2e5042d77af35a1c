package model

import "time"

// User is a registered blog account. The password column only ever
// holds a bcrypt hash.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Post struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Title      string    `gorm:"type:text" json:"title"`
	Summary    string    `gorm:"type:text" json:"summary"`
	Content    string    `gorm:"type:text" json:"content"`
	CoverImage string    `json:"coverImage"`
	AuthorID   uint      `gorm:"index;not null" json:"-"`
	Author     *User     `gorm:"foreignKey:AuthorID" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
