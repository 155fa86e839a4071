package model

import "time"

// Prompt is a named text payload. CategoryID is a plain reference: the
// category may be deleted while the prompt keeps pointing at it.
type Prompt struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Contents   string    `gorm:"type:text;not null" json:"contents"`
	CategoryID *uint     `gorm:"index" json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// InCategory reports whether the prompt references exactly the given category.
func (p Prompt) InCategory(categoryID uint) bool {
	return p.CategoryID != nil && *p.CategoryID == categoryID
}
