package viewmodel

import (
	"time"

	"people-directory/domain/models"
)

// Pane names for DetailsView.Mode.
const (
	PaneView = "view"
	PaneEdit = "edit"
)

// View is the presentation of a State at one instant.
type View struct {
	Mode   ModeView  `json:"mode"`
	Search string    `json:"search"`
	Total  int       `json:"total"`
	Rows   []RowView `json:"rows"`
}

// ModeView describes the display-mode toggle.
type ModeView struct {
	Dark  bool   `json:"dark"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Class string `json:"class"`
}

// RowView is one entry of the list.
type RowView struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Picture  string       `json:"picture"`
	Open     bool         `json:"open"`
	Expander string       `json:"expander"`
	Details  *DetailsView `json:"details,omitempty"`
}

// DetailsView is the expanded pane of an open row.
type DetailsView struct {
	Mode          string         `json:"mode"`
	Age           *int           `json:"age"`
	Gender        models.Gender  `json:"gender"`
	Country       string         `json:"country"`
	Description   string         `json:"description"`
	CanEdit       bool           `json:"canEdit"`
	CanDelete     bool           `json:"canDelete"`
	CanSave       bool           `json:"canSave"`
	GenderOptions []GenderOption `json:"genderOptions,omitempty"`
}

type GenderOption struct {
	Value    models.Gender `json:"value"`
	Label    string        `json:"label"`
	Selected bool          `json:"selected"`
}

// Render builds the view for s. Ids that no longer exist render nothing.
func Render(s State, now time.Time) View {
	visible := s.Visible()
	v := View{
		Mode:   renderMode(s.Session.DarkMode),
		Search: s.Session.Search,
		Total:  len(s.Records),
		Rows:   make([]RowView, 0, len(visible)),
	}
	for _, rec := range visible {
		v.Rows = append(v.Rows, renderRow(s, rec, now))
	}
	return v
}

func renderMode(dark bool) ModeView {
	if dark {
		return ModeView{Dark: true, Label: "Light Mode", Icon: "sun", Class: "dark-mode"}
	}
	return ModeView{Label: "Dark Mode", Icon: "moon"}
}

func renderRow(s State, rec models.Person, now time.Time) RowView {
	row := RowView{
		ID:       rec.ID,
		Name:     rec.FullName(),
		Picture:  rec.Picture,
		Open:     s.Session.Open.Is(rec.ID),
		Expander: "angle-down",
	}
	if !row.Open {
		return row
	}
	row.Expander = "angle-up"

	var age *int
	if a, err := Age(rec.DOB, now); err == nil {
		age = &a
	}

	if s.Session.Editing.Is(rec.ID) {
		buf := s.Session.Buffer
		options := make([]GenderOption, 0, len(models.Genders))
		for _, g := range models.Genders {
			options = append(options, GenderOption{Value: g, Label: g.Label(), Selected: g == buf.Gender})
		}
		row.Details = &DetailsView{
			Mode:          PaneEdit,
			Age:           age,
			Gender:        buf.Gender,
			Country:       buf.Country,
			Description:   buf.Description,
			CanSave:       buf.Differs(rec),
			GenderOptions: options,
		}
		return row
	}

	row.Details = &DetailsView{
		Mode:        PaneView,
		Age:         age,
		Gender:      rec.Gender,
		Country:     rec.Country,
		Description: rec.Description,
		CanEdit:     age != nil && *age >= AdultAge,
		CanDelete:   true,
	}
	return row
}
