package models

import (
	"time"
)

// View structs are the single serialization mapping per entity, kept separate
// from the persistence mapping. Definitions nested under a term omit
// term_name since it is implied by the parent.

// DefinitionView is the wire representation of a Definition.
type DefinitionView struct {
	ID       int64     `json:"id"`
	Author   string    `json:"author"`
	Content  string    `json:"content"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
	TermName string    `json:"term_name,omitempty"`
}

// TermView is the wire representation of a Term with its definitions.
type TermView struct {
	Name        string           `json:"name"`
	Definitions []DefinitionView `json:"definitions"`
}

// NewDefinitionView maps a Definition to its wire form.
func NewDefinitionView(d *Definition) DefinitionView {
	return DefinitionView{
		ID:       d.ID,
		Author:   d.Author,
		Content:  d.Content,
		Created:  d.Created,
		Updated:  d.Updated,
		TermName: d.TermName,
	}
}

// NewTermView maps a Term and its definitions to the wire form.
func NewTermView(t *Term) TermView {
	defs := make([]DefinitionView, 0, len(t.Definitions))
	for i := range t.Definitions {
		v := NewDefinitionView(&t.Definitions[i])
		v.TermName = "" // implied by the parent term
		defs = append(defs, v)
	}
	return TermView{
		Name:        t.Name,
		Definitions: defs,
	}
}
