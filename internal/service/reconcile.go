package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/TWRT/catalyst-bridge/internal/client"
	"github.com/TWRT/catalyst-bridge/internal/models"
)

type ReconcileStage string

const (
	StageLabels ReconcileStage = "labels"
	StageCard   ReconcileStage = "card"
)

// ReconcileError reports a failed reconciliation together with the labels
// that had already been created on the board when it failed.
type ReconcileError struct {
	Stage   ReconcileStage
	Created []models.Label
	Err     error
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("reconcile card (%s stage, %d labels created): %v", e.Stage, len(e.Created), e.Err)
}

func (e *ReconcileError) Unwrap() error {
	return e.Err
}

type Reconciled struct {
	Card          models.Card    `json:"card"`
	CreatedLabels []models.Label `json:"created_labels"`
}

// ReconcileCard creates the missing labels concurrently, then the card with
// linked ids first (in encounter order) followed by created ids (in request
// order). The first label failure cancels the remaining requests and no card
// is created.
func ReconcileCard(
	ctx context.Context,
	card *models.NewCard,
	board client.CardWriter,
	boardID string,
	listID string,
) (*Reconciled, error) {
	if card == nil {
		return nil, errors.New("reconcile card: card is nil")
	}

	var (
		ids      []string
		toCreate []models.MatchedLabel
	)
	for _, label := range card.Labels {
		switch label.Type {
		case models.LabelLink:
			ids = append(ids, label.ID)
		case models.LabelCreate:
			toCreate = append(toCreate, label)
		default:
			return nil, fmt.Errorf("reconcile card: unknown label action %q", label.Type)
		}
	}

	results := make([]*models.Label, len(toCreate))
	g, gctx := errgroup.WithContext(ctx)
	for i, label := range toCreate {
		g.Go(func() error {
			created, err := board.CreateLabel(gctx, boardID, models.Label{
				Name:  label.Name,
				Color: label.Color,
			})
			if err != nil {
				return fmt.Errorf("create label %q: %w", label.Name, err)
			}
			if created == nil {
				return fmt.Errorf("create label %q: board returned no label", label.Name)
			}
			results[i] = created
			return nil
		})
	}
	err := g.Wait()

	created := make([]models.Label, 0, len(results))
	for _, label := range results {
		if label != nil {
			created = append(created, *label)
		}
	}
	if err != nil {
		return nil, &ReconcileError{Stage: StageLabels, Created: created, Err: err}
	}

	for _, label := range created {
		ids = append(ids, label.ID)
	}
	if ids == nil {
		ids = []string{}
	}

	newCard, err := board.CreateCard(ctx, models.CardRequest{
		Name:     card.TitleOrEmpty(),
		Desc:     card.Body,
		IDList:   listID,
		IDLabels: ids,
	})
	if err != nil {
		return nil, &ReconcileError{Stage: StageCard, Created: created, Err: fmt.Errorf("create card: %w", err)}
	}
	if newCard == nil {
		return nil, &ReconcileError{Stage: StageCard, Created: created, Err: errors.New("create card: board returned no card")}
	}

	return &Reconciled{Card: *newCard, CreatedLabels: created}, nil
}
