package viewmodel

import (
	"errors"
	"fmt"
	"time"

	"people-directory/domain/models"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrEditNotAllowed = errors.New("record is not editable")
	ErrNotEditing     = errors.New("no record is being edited")
	ErrFieldReadOnly  = errors.New("field is read-only")
	ErrUnknownField   = errors.New("unknown field")
	ErrInvalidGender  = errors.New("invalid gender")
	ErrNoChanges      = errors.New("nothing to save")
	ErrUnknownIntent  = errors.New("unknown intent")
)

// Result is the outcome of reducing one intent.
// Persist is set when Records changed and must be written through.
type Result struct {
	State   State
	Persist bool
}

// Reduce applies in to s. On error the returned state is s, unchanged.
func Reduce(s State, in Intent, now time.Time) (Result, error) {
	switch in := in.(type) {
	case SetSearch:
		s.Session.Search = in.Term
		return Result{State: s}, nil

	case ToggleOpen:
		if s.Session.Open.Is(in.ID) {
			s.Session.Open = Selection{}
		} else {
			s.Session.Open = Select(in.ID)
		}
		return Result{State: s}, nil

	case ToggleMode:
		s.Session.DarkMode = !s.Session.DarkMode
		return Result{State: s}, nil

	case StartEdit:
		return startEdit(s, in, now)

	case ChangeField:
		return changeField(s, in)

	case Save:
		return save(s, now)

	case Cancel:
		s.Session.Editing = Selection{}
		s.Session.Buffer = EditBuffer{}
		return Result{State: s}, nil

	case Delete:
		return deleteRecord(s, in)
	}
	return Result{State: s}, fmt.Errorf("%w: %T", ErrUnknownIntent, in)
}

func startEdit(s State, in StartEdit, now time.Time) (Result, error) {
	rec, _, ok := s.Find(in.ID)
	if !ok {
		return Result{State: s}, fmt.Errorf("%w: id %d", ErrRecordNotFound, in.ID)
	}
	age, err := Age(rec.DOB, now)
	if err != nil || age < AdultAge {
		return Result{State: s}, fmt.Errorf("%w: id %d", ErrEditNotAllowed, in.ID)
	}
	s.Session.Editing = Select(in.ID)
	s.Session.Buffer = bufferFor(rec, age)
	return Result{State: s}, nil
}

func changeField(s State, in ChangeField) (Result, error) {
	if !s.Session.Editing.Valid {
		return Result{State: s}, ErrNotEditing
	}
	switch in.Field {
	case FieldGender:
		g := models.Gender(in.Value)
		if !g.Valid() {
			return Result{State: s}, fmt.Errorf("%w: %q", ErrInvalidGender, in.Value)
		}
		s.Session.Buffer.Gender = g
	case FieldCountry:
		s.Session.Buffer.Country = in.Value
	case FieldDescription:
		s.Session.Buffer.Description = in.Value
	case FieldAge:
		return Result{State: s}, fmt.Errorf("%w: %s", ErrFieldReadOnly, in.Field)
	default:
		return Result{State: s}, fmt.Errorf("%w: %q", ErrUnknownField, in.Field)
	}
	return Result{State: s}, nil
}

func save(s State, now time.Time) (Result, error) {
	if !s.Session.Editing.Valid {
		return Result{State: s}, ErrNotEditing
	}
	id := s.Session.Editing.ID
	rec, idx, ok := s.Find(id)
	if !ok {
		return Result{State: s}, fmt.Errorf("%w: id %d", ErrRecordNotFound, id)
	}
	if !CanEdit(rec.DOB, now) {
		return Result{State: s}, fmt.Errorf("%w: id %d", ErrEditNotAllowed, id)
	}
	if !s.Session.Buffer.Differs(rec) {
		return Result{State: s}, ErrNoChanges
	}

	records := make([]models.Person, len(s.Records))
	copy(records, s.Records)
	records[idx] = s.Session.Buffer.Apply(rec)

	s.Records = records
	s.Session.Editing = Selection{}
	s.Session.Buffer = EditBuffer{}
	return Result{State: s, Persist: true}, nil
}

// deleteRecord also clears this session's open and editing ids when they
// point at the removed record. The search term is kept.
func deleteRecord(s State, in Delete) (Result, error) {
	if !in.Confirmed {
		return Result{State: s}, nil
	}
	_, idx, ok := s.Find(in.ID)
	if !ok {
		return Result{State: s}, fmt.Errorf("%w: id %d", ErrRecordNotFound, in.ID)
	}

	records := make([]models.Person, 0, len(s.Records)-1)
	records = append(records, s.Records[:idx]...)
	records = append(records, s.Records[idx+1:]...)

	s.Records = records
	if s.Session.Open.Is(in.ID) {
		s.Session.Open = Selection{}
	}
	if s.Session.Editing.Is(in.ID) {
		s.Session.Editing = Selection{}
		s.Session.Buffer = EditBuffer{}
	}
	return Result{State: s, Persist: true}, nil
}
