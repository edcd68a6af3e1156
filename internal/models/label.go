package models

type Label struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Color   string `json:"color,omitempty"`
	IDBoard string `json:"idBoard,omitempty"`
}

type LabelAction string

const (
	LabelLink   LabelAction = "link"
	LabelCreate LabelAction = "create"
)

// MatchedLabel is either a link to an existing board label (ID set) or a
// label that has to be created first (Name and Color set).
type MatchedLabel struct {
	Type  LabelAction `json:"type"`
	ID    string      `json:"id,omitempty"`
	Name  string      `json:"name,omitempty"`
	Color string      `json:"color,omitempty"`
}

func LinkLabel(id string) MatchedLabel {
	return MatchedLabel{Type: LabelLink, ID: id}
}

func CreateLabel(name, color string) MatchedLabel {
	return MatchedLabel{Type: LabelCreate, Name: name, Color: color}
}
