package models

// Term is a glossary headword. Definitions hang off it; a term with zero
// definitions is valid (it may be created before any definition is attached).
type Term struct {
	Name        string       `gorm:"primaryKey;size:80"`
	Definitions []Definition `gorm:"foreignKey:TermName;references:Name"`
}

// TableName overrides the default pluralized table name.
func (Term) TableName() string {
	return "term"
}
