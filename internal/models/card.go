package models

// NewCard is the card description produced from a form response, before any
// call has been made to the board.
type NewCard struct {
	Title  *string        `json:"title"`
	Body   string         `json:"body"`
	Labels []MatchedLabel `json:"labels"`
}

func (c NewCard) TitleOrEmpty() string {
	if c.Title == nil {
		return ""
	}
	return *c.Title
}

type CardRequest struct {
	Name     string   `json:"name"`
	Desc     string   `json:"desc"`
	IDList   string   `json:"idList"`
	IDLabels []string `json:"idLabels"`
}

type Card struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Desc     string   `json:"desc"`
	IDList   string   `json:"idList"`
	IDBoard  string   `json:"idBoard"`
	IDLabels []string `json:"idLabels"`
	URL      string   `json:"url,omitempty"`
	ShortURL string   `json:"shortUrl,omitempty"`
}
