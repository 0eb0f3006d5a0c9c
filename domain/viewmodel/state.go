// Package viewmodel holds the directory's UI state as an immutable value and
// the pure functions that derive and transform it.
package viewmodel

import (
	"people-directory/domain/models"
)

// Selection is an optional record id.
type Selection struct {
	ID    int  `json:"id"`
	Valid bool `json:"valid"`
}

// Select returns a selection holding id.
func Select(id int) Selection {
	return Selection{ID: id, Valid: true}
}

// Is reports whether the selection holds id.
func (s Selection) Is(id int) bool {
	return s.Valid && s.ID == id
}

// Field names a value in the edit buffer.
type Field string

const (
	FieldAge         Field = "age"
	FieldGender      Field = "gender"
	FieldCountry     Field = "country"
	FieldDescription Field = "description"
)

// EditBuffer holds draft values while a record is being edited.
// Age is the value derived when editing started and is never written back.
type EditBuffer struct {
	Age         int           `json:"age"`
	Gender      models.Gender `json:"gender"`
	Country     string        `json:"country"`
	Description string        `json:"description"`
}

func bufferFor(p models.Person, age int) EditBuffer {
	return EditBuffer{
		Age:         age,
		Gender:      p.Gender,
		Country:     p.Country,
		Description: p.Description,
	}
}

// Differs reports whether any editable field differs from p.
func (b EditBuffer) Differs(p models.Person) bool {
	return b.Gender != p.Gender || b.Country != p.Country || b.Description != p.Description
}

// Apply merges the editable fields into p. Identity and name are untouched.
func (b EditBuffer) Apply(p models.Person) models.Person {
	p.Gender = b.Gender
	p.Country = b.Country
	p.Description = b.Description
	return p
}

// Session is the transient UI state of one viewer. It is never persisted.
type Session struct {
	Search   string     `json:"search"`
	Open     Selection  `json:"open"`
	Editing  Selection  `json:"editing"`
	Buffer   EditBuffer `json:"buffer"`
	DarkMode bool       `json:"darkMode"`
}

// State is the full view-model: the canonical collection plus one session.
// Records is treated as immutable; reducers copy before changing it.
type State struct {
	Records []models.Person
	Session Session
}

// Find returns the record with id and its index.
func (s State) Find(id int) (models.Person, int, bool) {
	for i, r := range s.Records {
		if r.ID == id {
			return r, i, true
		}
	}
	return models.Person{}, -1, false
}

// Visible is the filtered list for the session's search term.
func (s State) Visible() []models.Person {
	return Filter(s.Records, s.Session.Search)
}

// CanSave reports whether the save affordance is enabled.
func (s State) CanSave() bool {
	if !s.Session.Editing.Valid {
		return false
	}
	rec, _, ok := s.Find(s.Session.Editing.ID)
	return ok && s.Session.Buffer.Differs(rec)
}
