package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/AlecAivazis/survey/v2"

	"github.com/TWRT/catalyst-bridge/internal/client/trello"
	"github.com/TWRT/catalyst-bridge/internal/config"
)

const appName = "Not-Equal Catalyst"

func newTrelloClient() (*trello.TrelloClient, error) {
	if err := config.Require(config.EnvTrelloAppKey, config.EnvTrelloToken); err != nil {
		return nil, err
	}
	return trello.NewTrelloClient(os.Getenv(config.EnvTrelloAppKey), os.Getenv(config.EnvTrelloToken)), nil
}

func runBoards(ctx context.Context) error {
	client, err := newTrelloClient()
	if err != nil {
		return err
	}

	orgs, err := client.GetOrganizations(ctx)
	if err != nil {
		return err
	}
	boards, err := client.GetBoards(ctx)
	if err != nil {
		return err
	}

	orgNames := make(map[string]string, len(orgs))
	for _, org := range orgs {
		orgNames[org.Id] = org.DisplayName
	}

	fmt.Printf("Found %d boards\n", len(boards))
	for _, board := range boards {
		if board.Closed {
			continue
		}
		orgName, ok := orgNames[board.IdOrganization]
		if !ok {
			orgName = "Personal"
		}
		fmt.Printf("- %s %s (%s)\n", board.Id, board.Name, orgName)
	}
	return nil
}

func runLabels(ctx context.Context, args []string) error {
	client, err := newTrelloClient()
	if err != nil {
		return err
	}

	boardId := os.Getenv(config.EnvTrelloBoardID)
	if len(args) > 0 {
		boardId = args[0]
	}
	if boardId == "" {
		if !isInteractive() {
			return errors.New("'boardId' not passed and TRELLO_BOARD_ID not set")
		}
		boardId, err = promptBoard(ctx, client)
		if err != nil {
			return err
		}
	}

	labels, err := client.FetchLabels(ctx, boardId)
	if err != nil {
		return err
	}

	sort.Slice(labels, func(i, j int) bool { return labels[i].Name < labels[j].Name })
	fmt.Printf("Found %d labels on %s\n", len(labels), boardId)
	for _, label := range labels {
		color := label.Color
		if color == "" {
			color = "no color"
		}
		fmt.Printf("- %s %q (%s)\n", label.ID, label.Name, color)
	}
	return nil
}

// runAuth only reads the app key; the rest of the configuration may be unset
// or invalid.
func runAuth(args []string) error {
	appKey := os.Getenv(config.EnvTrelloAppKey)
	if len(args) > 0 {
		appKey = args[0]
	}
	if appKey == "" {
		if !isInteractive() {
			return errors.New("no appKey provided")
		}
		prompt := &survey.Input{
			Message: "Trello app key",
			Help:    "Your trello app key, from https://trello.com/app-key",
		}
		if err := survey.AskOne(prompt, &appKey, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	fmt.Printf("Open %s\n", trello.AuthorizeURL(appKey, appName))
	fmt.Println("To get your token")
	return nil
}

func promptBoard(ctx context.Context, client *trello.TrelloClient) (string, error) {
	boards, err := client.GetBoards(ctx)
	if err != nil {
		return "", err
	}

	var options []string
	ids := make(map[string]string)
	for _, board := range boards {
		if board.Closed {
			continue
		}
		option := fmt.Sprintf("%s (%s)", board.Name, board.Id)
		options = append(options, option)
		ids[option] = board.Id
	}
	if len(options) == 0 {
		return "", errors.New("no open boards found")
	}

	var choice string
	prompt := &survey.Select{
		Message: "Choose a board",
		Options: options,
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", err
	}
	return ids[choice], nil
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
