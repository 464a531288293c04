package entity

// State is the single source of truth for one code being edited: its type, every field
// the user has typed so far and the style.
type State struct {
	Type   QRType      `json:"type"`
	Fields FormFields  `json:"data"`
	Style  StyleConfig `json:"styles"`
}

// NewState returns a url-typed state with the default style.
func NewState() State {
	return State{
		Type:   TypeURL,
		Fields: FormFields{},
		Style:  DefaultStyle(),
	}
}

// Clone returns a deep copy, so callers may keep it while the original keeps changing.
func (s State) Clone() State {
	out := s
	out.Fields = s.Fields.Clone()
	return out
}
