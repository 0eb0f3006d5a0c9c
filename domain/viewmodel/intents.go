package viewmodel

// Intent is a user action. The set is closed: only the types below implement it.
type Intent interface {
	intent() string
}

// SetSearch replaces the search term.
type SetSearch struct {
	Term string
}

// ToggleOpen opens id, or closes it when it is already open.
type ToggleOpen struct {
	ID int
}

// StartEdit puts id into edit mode.
type StartEdit struct {
	ID int
}

// ChangeField edits one buffer value.
type ChangeField struct {
	Field Field
	Value string
}

// Save merges the buffer into the edited record.
type Save struct{}

// Cancel discards the buffer.
type Cancel struct{}

// Delete removes id once the user has confirmed.
type Delete struct {
	ID        int
	Confirmed bool
}

// ToggleMode flips the light/dark presentation.
type ToggleMode struct{}

const (
	IntentSetSearch   = "set_search"
	IntentToggleOpen  = "toggle_open"
	IntentStartEdit   = "start_edit"
	IntentChangeField = "change_field"
	IntentSave        = "save"
	IntentCancel      = "cancel"
	IntentDelete      = "delete"
	IntentToggleMode  = "toggle_mode"
)

func (SetSearch) intent() string   { return IntentSetSearch }
func (ToggleOpen) intent() string  { return IntentToggleOpen }
func (StartEdit) intent() string   { return IntentStartEdit }
func (ChangeField) intent() string { return IntentChangeField }
func (Save) intent() string        { return IntentSave }
func (Cancel) intent() string      { return IntentCancel }
func (Delete) intent() string      { return IntentDelete }
func (ToggleMode) intent() string  { return IntentToggleMode }

// Name returns the wire name of an intent.
func Name(in Intent) string {
	if in == nil {
		return ""
	}
	return in.intent()
}
