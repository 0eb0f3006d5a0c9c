package dto

import (
	"fmt"

	"people-directory/domain/viewmodel"
)

// IntentRequest is the wire form of a viewmodel.Intent.
type IntentRequest struct {
	Type      string `json:"type" validate:"required,oneof=set_search toggle_open start_edit change_field save cancel delete toggle_mode"`
	ID        *int   `json:"id,omitempty"`
	Field     string `json:"field,omitempty" validate:"omitempty,oneof=age gender country description"`
	Value     string `json:"value,omitempty"`
	Term      string `json:"term,omitempty"`
	Confirmed bool   `json:"confirmed,omitempty"`
}

// ToIntent converts a validated request.
func (r IntentRequest) ToIntent() (viewmodel.Intent, error) {
	switch r.Type {
	case viewmodel.IntentSetSearch:
		return viewmodel.SetSearch{Term: r.Term}, nil
	case viewmodel.IntentToggleOpen:
		if r.ID == nil {
			return nil, fmt.Errorf("%s requires id", r.Type)
		}
		return viewmodel.ToggleOpen{ID: *r.ID}, nil
	case viewmodel.IntentStartEdit:
		if r.ID == nil {
			return nil, fmt.Errorf("%s requires id", r.Type)
		}
		return viewmodel.StartEdit{ID: *r.ID}, nil
	case viewmodel.IntentChangeField:
		if r.Field == "" {
			return nil, fmt.Errorf("%s requires field", r.Type)
		}
		return viewmodel.ChangeField{Field: viewmodel.Field(r.Field), Value: r.Value}, nil
	case viewmodel.IntentSave:
		return viewmodel.Save{}, nil
	case viewmodel.IntentCancel:
		return viewmodel.Cancel{}, nil
	case viewmodel.IntentDelete:
		if r.ID == nil {
			return nil, fmt.Errorf("%s requires id", r.Type)
		}
		return viewmodel.Delete{ID: *r.ID, Confirmed: r.Confirmed}, nil
	case viewmodel.IntentToggleMode:
		return viewmodel.ToggleMode{}, nil
	}
	return nil, fmt.Errorf("%w: %q", viewmodel.ErrUnknownIntent, r.Type)
}

// SessionResponse is returned when a session is opened.
type SessionResponse struct {
	SessionID string         `json:"sessionId"`
	Token     string         `json:"token"`
	ExpiresIn int            `json:"expiresIn"`
	View      viewmodel.View `json:"view"`
}

// WSMessage is the envelope used on the websocket.
type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}
