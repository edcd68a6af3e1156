package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/TWRT/catalyst-bridge/internal/models"
)

type fakeBoard struct {
	mu sync.Mutex

	labels   []models.Label
	fetchErr error

	createLabelFn func(ctx context.Context, boardID string, label models.Label) (*models.Label, error)
	labelCalls    []models.Label

	cardErr      error
	cardRequests []models.CardRequest
}

func (f *fakeBoard) FetchLabels(_ context.Context, _ string) ([]models.Label, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.labels, nil
}

func (f *fakeBoard) CreateLabel(ctx context.Context, boardID string, label models.Label) (*models.Label, error) {
	f.mu.Lock()
	f.labelCalls = append(f.labelCalls, label)
	f.mu.Unlock()

	if f.createLabelFn != nil {
		return f.createLabelFn(ctx, boardID, label)
	}
	return &models.Label{ID: "id-" + label.Name, Name: label.Name, Color: label.Color, IDBoard: boardID}, nil
}

func (f *fakeBoard) CreateCard(_ context.Context, req models.CardRequest) (*models.Card, error) {
	f.mu.Lock()
	f.cardRequests = append(f.cardRequests, req)
	f.mu.Unlock()

	if f.cardErr != nil {
		return nil, f.cardErr
	}
	return &models.Card{
		ID:       fmt.Sprintf("card-%d", len(f.cardRequests)),
		Name:     req.Name,
		Desc:     req.Desc,
		IDList:   req.IDList,
		IDLabels: req.IDLabels,
	}, nil
}
