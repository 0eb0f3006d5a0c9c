package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"people-directory/domain/models"
)

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func ann() models.Person {
	return models.Person{
		ID:          1,
		First:       "Ann",
		Last:        "Lee",
		DOB:         "2000-01-01",
		Gender:      models.GenderFemale,
		Country:     "US",
		Description: "x",
	}
}

func sampleRecords() []models.Person {
	return []models.Person{
		ann(),
		{ID: 2, First: "Bob", Last: "Stone", DOB: "2006-01-01", Gender: models.GenderMale, Country: "US", Description: "twenty"},
		{ID: 3, First: "Cara", Last: "Annis", DOB: "2012-05-05", Gender: models.GenderOther, Country: "CA", Description: "minor"},
	}
}

func TestAge(t *testing.T) {
	tests := []struct {
		name string
		dob  string
		want int
	}{
		{"date only", "2000-01-01", 26},
		{"aged twenty", "2006-01-01", 20},
		{"minor", "2012-05-05", 14},
		{"rfc3339", "1990-06-15T08:30:00Z", 36},
		{"future date is non-negative", "2030-01-01", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Age(tt.dob, testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}

func TestAge_Idempotent(t *testing.T) {
	first, err := Age("1984-02-29", testNow)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Age("1984-02-29", testNow)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAge_InvalidDOB(t *testing.T) {
	_, err := Age("not a date", testNow)
	require.ErrorIs(t, err, ErrInvalidDOB)
	assert.False(t, CanEdit("not a date", testNow))
}

func TestFilter(t *testing.T) {
	records := sampleRecords()

	assert.Equal(t, records, Filter(records, ""))

	got := Filter(records, "ann")
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID, "order follows the collection")

	assert.Empty(t, Filter(records, "zed"))
	assert.Len(t, Filter(records, "N L"), 1, "matches across the name separator")
	assert.Empty(t, Filter(records, " ann"), "term is not trimmed")
}

func TestFilter_AnnLeeScenario(t *testing.T) {
	records := []models.Person{ann()}

	got := Filter(records, "ann")
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)

	assert.Empty(t, Filter(records, "bob"))
}

func TestReduce_ToggleOpenIsSingleOpen(t *testing.T) {
	s := State{Records: sampleRecords()}

	res, err := Reduce(s, ToggleOpen{ID: 1}, testNow)
	require.NoError(t, err)
	assert.True(t, res.State.Session.Open.Is(1))

	res, err = Reduce(res.State, ToggleOpen{ID: 2}, testNow)
	require.NoError(t, err)
	assert.True(t, res.State.Session.Open.Is(2))
	assert.False(t, res.State.Session.Open.Is(1))

	res, err = Reduce(res.State, ToggleOpen{ID: 2}, testNow)
	require.NoError(t, err)
	assert.False(t, res.State.Session.Open.Valid)
	assert.False(t, res.Persist)
}

func TestReduce_SearchAndModeDoNotPersist(t *testing.T) {
	s := State{Records: sampleRecords()}

	res, err := Reduce(s, SetSearch{Term: "Bo"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "Bo", res.State.Session.Search)
	assert.False(t, res.Persist)

	res, err = Reduce(res.State, ToggleMode{}, testNow)
	require.NoError(t, err)
	assert.True(t, res.State.Session.DarkMode)
	assert.False(t, res.Persist)
	assert.Equal(t, s.Records, res.State.Records)
}

func TestReduce_EditSaveScenario(t *testing.T) {
	original := sampleRecords()
	s := State{Records: original}

	res, err := Reduce(s, StartEdit{ID: 2}, testNow)
	require.NoError(t, err)
	assert.True(t, res.State.Session.Editing.Is(2))
	assert.Equal(t, EditBuffer{Age: 20, Gender: models.GenderMale, Country: "US", Description: "twenty"}, res.State.Session.Buffer)
	assert.False(t, res.State.CanSave())

	res, err = Reduce(res.State, ChangeField{Field: FieldCountry, Value: "UK"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "US", res.State.Records[1].Country, "field edits stay in the buffer")
	assert.True(t, res.State.CanSave())

	res, err = Reduce(res.State, Save{}, testNow)
	require.NoError(t, err)
	assert.True(t, res.Persist)
	assert.Equal(t, "UK", res.State.Records[1].Country)
	assert.Equal(t, "Bob", res.State.Records[1].First)
	assert.Equal(t, 2, res.State.Records[1].ID)
	assert.False(t, res.State.Session.Editing.Valid)
	assert.Equal(t, EditBuffer{}, res.State.Session.Buffer)

	assert.Equal(t, "US", original[1].Country, "input collection is not mutated")
}

func TestReduce_SaveWithoutChangesIsRejected(t *testing.T) {
	s := State{Records: sampleRecords()}

	res, err := Reduce(s, StartEdit{ID: 1}, testNow)
	require.NoError(t, err)

	// change and change back
	res, err = Reduce(res.State, ChangeField{Field: FieldDescription, Value: "y"}, testNow)
	require.NoError(t, err)
	res, err = Reduce(res.State, ChangeField{Field: FieldDescription, Value: "x"}, testNow)
	require.NoError(t, err)

	editing := res.State
	res, err = Reduce(editing, Save{}, testNow)
	require.ErrorIs(t, err, ErrNoChanges)
	assert.False(t, res.Persist)
	assert.Equal(t, editing, res.State)
}

func TestReduce_CancelNeverTouchesRecords(t *testing.T) {
	s := State{Records: sampleRecords()}

	res, err := Reduce(s, StartEdit{ID: 1}, testNow)
	require.NoError(t, err)
	res, err = Reduce(res.State, ChangeField{Field: FieldGender, Value: string(models.GenderOther)}, testNow)
	require.NoError(t, err)
	res, err = Reduce(res.State, ChangeField{Field: FieldCountry, Value: "FR"}, testNow)
	require.NoError(t, err)

	res, err = Reduce(res.State, Cancel{}, testNow)
	require.NoError(t, err)
	assert.False(t, res.Persist)
	assert.Equal(t, sampleRecords(), res.State.Records)
	assert.False(t, res.State.Session.Editing.Valid)
	assert.Equal(t, EditBuffer{}, res.State.Session.Buffer)
}

func TestReduce_EditGuards(t *testing.T) {
	s := State{Records: sampleRecords()}

	_, err := Reduce(s, StartEdit{ID: 3}, testNow)
	assert.ErrorIs(t, err, ErrEditNotAllowed)

	_, err = Reduce(s, StartEdit{ID: 99}, testNow)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = Reduce(s, ChangeField{Field: FieldCountry, Value: "UK"}, testNow)
	assert.ErrorIs(t, err, ErrNotEditing)

	_, err = Reduce(s, Save{}, testNow)
	assert.ErrorIs(t, err, ErrNotEditing)

	res, err := Reduce(s, StartEdit{ID: 1}, testNow)
	require.NoError(t, err)

	_, err = Reduce(res.State, ChangeField{Field: FieldAge, Value: "12"}, testNow)
	assert.ErrorIs(t, err, ErrFieldReadOnly)

	_, err = Reduce(res.State, ChangeField{Field: FieldGender, Value: "robot"}, testNow)
	assert.ErrorIs(t, err, ErrInvalidGender)

	_, err = Reduce(res.State, ChangeField{Field: "first", Value: "Zed"}, testNow)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestReduce_SaveRechecksAgeGuard(t *testing.T) {
	// a buffer forged for a minor must not be written
	s := State{
		Records: sampleRecords(),
		Session: Session{
			Editing: Select(3),
			Buffer:  EditBuffer{Gender: models.GenderOther, Country: "US", Description: "minor"},
		},
	}
	res, err := Reduce(s, Save{}, testNow)
	require.ErrorIs(t, err, ErrEditNotAllowed)
	assert.False(t, res.Persist)
	assert.Equal(t, "CA", res.State.Records[2].Country)
}

func TestReduce_DeleteNeedsConfirmation(t *testing.T) {
	s := State{Records: sampleRecords()}

	res, err := Reduce(s, Delete{ID: 1}, testNow)
	require.NoError(t, err)
	assert.False(t, res.Persist)
	assert.Equal(t, s, res.State)

	res, err = Reduce(s, Delete{ID: 1, Confirmed: true}, testNow)
	require.NoError(t, err)
	assert.True(t, res.Persist)
	require.Len(t, res.State.Records, len(s.Records)-1)
	for _, r := range res.State.Records {
		assert.NotEqual(t, 1, r.ID)
	}
	assert.Equal(t, 2, res.State.Records[0].ID)
	assert.Equal(t, 3, res.State.Records[1].ID)

	_, err = Reduce(res.State, Delete{ID: 1, Confirmed: true}, testNow)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestReduce_DeleteClearsDanglingSelections(t *testing.T) {
	s := State{
		Records: sampleRecords(),
		Session: Session{Search: "a", Open: Select(1), Editing: Select(1), Buffer: EditBuffer{Country: "UK"}},
	}

	res, err := Reduce(s, Delete{ID: 1, Confirmed: true}, testNow)
	require.NoError(t, err)
	assert.False(t, res.State.Session.Open.Valid)
	assert.False(t, res.State.Session.Editing.Valid)
	assert.Equal(t, EditBuffer{}, res.State.Session.Buffer)
	assert.Equal(t, "a", res.State.Session.Search)

	s.Session.Open = Select(2)
	res, err = Reduce(s, Delete{ID: 1, Confirmed: true}, testNow)
	require.NoError(t, err)
	assert.True(t, res.State.Session.Open.Is(2), "unrelated selection is kept")
}

func TestReduce_UnknownIntent(t *testing.T) {
	_, err := Reduce(State{}, nil, testNow)
	assert.ErrorIs(t, err, ErrUnknownIntent)
}

func TestRender(t *testing.T) {
	s := State{Records: sampleRecords(), Session: Session{Search: "a", Open: Select(3)}}

	v := Render(s, testNow)
	assert.Equal(t, 3, v.Total)
	assert.Equal(t, "Dark Mode", v.Mode.Label)
	require.Len(t, v.Rows, 2)
	assert.Nil(t, v.Rows[0].Details)
	assert.Equal(t, "angle-down", v.Rows[0].Expander)

	minor := v.Rows[1]
	require.NotNil(t, minor.Details)
	assert.Equal(t, PaneView, minor.Details.Mode)
	require.NotNil(t, minor.Details.Age)
	assert.Equal(t, 14, *minor.Details.Age)
	assert.False(t, minor.Details.CanEdit)
	assert.True(t, minor.Details.CanDelete)
}

func TestRender_EditPane(t *testing.T) {
	s := State{Records: sampleRecords()}
	res, err := Reduce(s, ToggleOpen{ID: 1}, testNow)
	require.NoError(t, err)
	res, err = Reduce(res.State, StartEdit{ID: 1}, testNow)
	require.NoError(t, err)

	row := Render(res.State, testNow).Rows[0]
	require.NotNil(t, row.Details)
	assert.Equal(t, PaneEdit, row.Details.Mode)
	assert.False(t, row.Details.CanSave)
	require.Len(t, row.Details.GenderOptions, len(models.Genders))
	assert.True(t, row.Details.GenderOptions[1].Selected)

	res, err = Reduce(res.State, ChangeField{Field: FieldCountry, Value: "UK"}, testNow)
	require.NoError(t, err)
	row = Render(res.State, testNow).Rows[0]
	assert.True(t, row.Details.CanSave)
	assert.Equal(t, "UK", row.Details.Country)
}

func TestRender_MissingSelectionRendersNothing(t *testing.T) {
	s := State{Records: sampleRecords(), Session: Session{Open: Select(42), Editing: Select(42), DarkMode: true}}

	v := Render(s, testNow)
	assert.Equal(t, "Light Mode", v.Mode.Label)
	assert.Equal(t, "dark-mode", v.Mode.Class)
	for _, row := range v.Rows {
		assert.False(t, row.Open)
		assert.Nil(t, row.Details)
	}
}
