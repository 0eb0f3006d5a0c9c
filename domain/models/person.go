package models

// Gender is one of the fixed values a record may carry.
type Gender string

const (
	GenderMale         Gender = "male"
	GenderFemale       Gender = "female"
	GenderTransgender  Gender = "transgender"
	GenderRatherNotSay Gender = "rather not say"
	GenderOther        Gender = "other"
)

// Genders lists the selectable values in display order.
var Genders = []Gender{
	GenderMale,
	GenderFemale,
	GenderTransgender,
	GenderRatherNotSay,
	GenderOther,
}

// Label is the human readable option text.
func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	case GenderTransgender:
		return "Transgender"
	case GenderRatherNotSay:
		return "Rather not say"
	case GenderOther:
		return "Other"
	}
	return string(g)
}

func (g Gender) Valid() bool {
	for _, v := range Genders {
		if g == v {
			return true
		}
	}
	return false
}

// Person is one directory record. Field names match the seed dataset.
// Age is derived from DOB and never stored.
type Person struct {
	ID          int    `json:"id"`
	First       string `json:"first"`
	Last        string `json:"last"`
	Picture     string `json:"picture"`
	DOB         string `json:"dob"`
	Gender      Gender `json:"gender"`
	Country     string `json:"country"`
	Description string `json:"description"`
}

// FullName joins first and last with a single space.
func (p Person) FullName() string {
	return p.First + " " + p.Last
}
