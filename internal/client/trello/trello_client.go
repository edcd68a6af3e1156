package trello

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/TWRT/catalyst-bridge/internal/client"
	"github.com/TWRT/catalyst-bridge/internal/models"
)

const (
	defaultBaseUrl   = "https://api.trello.com/1"
	authorizeBaseUrl = "https://trello.com/1/authorize"
)

// APIError is returned for any non-2xx answer from Trello.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("trello: API error status %d", e.StatusCode)
	}
	return fmt.Sprintf("trello: API error status %d: %s", e.StatusCode, e.Message)
}

var _ client.BoardClient = (*TrelloClient)(nil)

type TrelloClient struct {
	baseUrl    string
	appKey     string
	token      string
	httpClient *http.Client
}

func NewTrelloClient(appKey, token string) *TrelloClient {
	return &TrelloClient{
		baseUrl:    defaultBaseUrl,
		appKey:     appKey,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthorizeURL is the page where a user grants appName a never-expiring
// read/write token.
func AuthorizeURL(appKey, appName string) string {
	query := url.Values{}
	query.Set("expiration", "never")
	query.Set("scope", "read,write,account")
	query.Set("response_type", "token")
	query.Set("name", appName)
	query.Set("key", appKey)
	return authorizeBaseUrl + "?" + query.Encode()
}

func (c *TrelloClient) FetchLabels(ctx context.Context, boardId string) ([]models.Label, error) {
	query := url.Values{}
	query.Set("fields", "all")
	query.Set("limit", "1000")

	var trelloLabels []TrelloLabel
	if err := c.do(ctx, http.MethodGet, "/boards/"+url.PathEscape(boardId)+"/labels", query, nil, &trelloLabels); err != nil {
		return nil, fmt.Errorf("fetch labels (trello): %w", err)
	}

	labels := make([]models.Label, len(trelloLabels))
	for i, l := range trelloLabels {
		labels[i] = toLabel(l)
	}
	return labels, nil
}

func (c *TrelloClient) CreateLabel(ctx context.Context, boardId string, label models.Label) (*models.Label, error) {
	reqBody := CreateLabelRequest{
		Name:    label.Name,
		IdBoard: boardId,
	}
	if label.Color != "" {
		color := label.Color
		reqBody.Color = &color
	}

	var created TrelloLabel
	if err := c.do(ctx, http.MethodPost, "/labels", nil, reqBody, &created); err != nil {
		return nil, fmt.Errorf("create label (trello): %w", err)
	}

	result := toLabel(created)
	return &result, nil
}

func (c *TrelloClient) CreateCard(ctx context.Context, req models.CardRequest) (*models.Card, error) {
	reqBody := CreateCardRequest{
		Name:     req.Name,
		Desc:     req.Desc,
		IdList:   req.IDList,
		IdLabels: req.IDLabels,
	}
	if reqBody.IdLabels == nil {
		reqBody.IdLabels = []string{}
	}

	var created TrelloCard
	if err := c.do(ctx, http.MethodPost, "/cards", nil, reqBody, &created); err != nil {
		return nil, fmt.Errorf("create card (trello): %w", err)
	}

	return &models.Card{
		ID:       created.Id,
		Name:     created.Name,
		Desc:     created.Desc,
		IDList:   created.IdList,
		IDBoard:  created.IdBoard,
		IDLabels: created.IdLabels,
		URL:      created.Url,
		ShortURL: created.ShortUrl,
	}, nil
}

func (c *TrelloClient) GetBoards(ctx context.Context) ([]TrelloBoard, error) {
	var boards []TrelloBoard
	if err := c.do(ctx, http.MethodGet, "/members/me/boards", nil, nil, &boards); err != nil {
		return nil, fmt.Errorf("get boards (trello): %w", err)
	}
	return boards, nil
}

func (c *TrelloClient) GetOrganizations(ctx context.Context) ([]TrelloOrganization, error) {
	var orgs []TrelloOrganization
	if err := c.do(ctx, http.MethodGet, "/members/me/organizations", nil, nil, &orgs); err != nil {
		return nil, fmt.Errorf("get organizations (trello): %w", err)
	}
	return orgs, nil
}

func (c *TrelloClient) do(ctx context.Context, method, path string, query url.Values, reqBody any, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("key", c.appKey)
	query.Set("token", c.token)

	var body io.Reader
	if reqBody != nil {
		payload, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseUrl+path+"?"+query.Encode(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// errorMessage extracts the message from a Trello error body, which is either
// JSON or plain text such as "invalid token".
func errorMessage(body []byte) string {
	var trelloErr TrelloErrorBody
	if err := json.Unmarshal(body, &trelloErr); err == nil {
		if trelloErr.Message != "" {
			return trelloErr.Message
		}
		if trelloErr.Error != "" {
			return trelloErr.Error
		}
	}
	return strings.TrimSpace(string(body))
}

func toLabel(l TrelloLabel) models.Label {
	return models.Label{
		ID:      l.Id,
		Name:    l.Name,
		Color:   l.Color,
		IDBoard: l.IdBoard,
	}
}
