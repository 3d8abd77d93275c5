package models

import (
	"time"
)

// Definition is an authored explanation of a term. Author is set at creation
// and never reassigned; Updated is refreshed on every mutation.
type Definition struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	Author   string    `gorm:"size:80;not null"`
	Content  string    `gorm:"size:256;not null"`
	Created  time.Time `gorm:"autoCreateTime"`
	Updated  time.Time `gorm:"autoUpdateTime"`
	TermName string    `gorm:"size:80;index;not null"`
}

// TableName overrides the default pluralized table name.
func (Definition) TableName() string {
	return "definition"
}
