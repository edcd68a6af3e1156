package trello

type TrelloLabel struct {
	Id      string `json:"id"`
	IdBoard string `json:"idBoard"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	Uses    int    `json:"uses"`
}

type CreateLabelRequest struct {
	Name    string  `json:"name"`
	Color   *string `json:"color"`
	IdBoard string  `json:"idBoard"`
}

type CreateCardRequest struct {
	Name     string   `json:"name"`
	Desc     string   `json:"desc"`
	IdList   string   `json:"idList"`
	IdLabels []string `json:"idLabels"`
	Pos      string   `json:"pos,omitempty"`
}

type TrelloCard struct {
	Id       string        `json:"id"`
	Name     string        `json:"name"`
	Desc     string        `json:"desc"`
	IdList   string        `json:"idList"`
	IdBoard  string        `json:"idBoard"`
	IdLabels []string      `json:"idLabels"`
	Labels   []TrelloLabel `json:"labels"`
	Url      string        `json:"url"`
	ShortUrl string        `json:"shortUrl"`
	Closed   bool          `json:"closed"`
}

// https://developer.atlassian.com/cloud/trello/rest/api-group-boards/
type TrelloBoard struct {
	Id             string `json:"id"`
	Name           string `json:"name"`
	Desc           string `json:"desc"`
	Closed         bool   `json:"closed"`
	IdOrganization string `json:"idOrganization"`
	Pinned         bool   `json:"pinned"`
	Url            string `json:"url"`
	ShortUrl       string `json:"shortUrl"`
}

type TrelloOrganization struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Desc        string   `json:"desc"`
	IdBoards    []string `json:"idBoards"`
	Url         string   `json:"url"`
	Website     string   `json:"website"`
}

type TrelloErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
