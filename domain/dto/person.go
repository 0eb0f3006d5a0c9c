package dto

import (
	"time"

	"people-directory/domain/models"
	"people-directory/domain/viewmodel"
)

// PersonResponse is a record with its derived age.
type PersonResponse struct {
	ID          int           `json:"id"`
	First       string        `json:"first"`
	Last        string        `json:"last"`
	Name        string        `json:"name"`
	Picture     string        `json:"picture"`
	DOB         string        `json:"dob"`
	Age         *int          `json:"age"`
	Gender      models.Gender `json:"gender"`
	Country     string        `json:"country"`
	Description string        `json:"description"`
	Editable    bool          `json:"editable"`
}

func PersonToResponse(p models.Person, now time.Time) PersonResponse {
	resp := PersonResponse{
		ID:          p.ID,
		First:       p.First,
		Last:        p.Last,
		Name:        p.FullName(),
		Picture:     p.Picture,
		DOB:         p.DOB,
		Gender:      p.Gender,
		Country:     p.Country,
		Description: p.Description,
	}
	if age, err := viewmodel.Age(p.DOB, now); err == nil {
		resp.Age = &age
		resp.Editable = age >= viewmodel.AdultAge
	}
	return resp
}

func PersonsToResponse(persons []models.Person, now time.Time) []PersonResponse {
	out := make([]PersonResponse, 0, len(persons))
	for _, p := range persons {
		out = append(out, PersonToResponse(p, now))
	}
	return out
}
