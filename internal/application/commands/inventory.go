package commands

import (
	"context"

	"novella/internal/application"
	"novella/internal/domain"
)

// InventoryResult lists what the reader carries and whom they met
type InventoryResult struct {
	Collectibles  []domain.CollectedItem
	StoryItems    []domain.CollectedItem
	MetCharacters []domain.MetCharacter
	ActivePaths   []string
	PathNames     string
}

// InventoryCommand reports the reader's items, characters and paths
type InventoryCommand struct {
	session *application.Session
}

// NewInventoryCommand creates a new InventoryCommand
func NewInventoryCommand(session *application.Session) *InventoryCommand {
	return &InventoryCommand{session: session}
}

// Execute runs the inventory command
func (c *InventoryCommand) Execute(ctx context.Context) (*InventoryResult, error) {
	p := c.session.Profile()
	result := &InventoryResult{
		Collectibles:  []domain.CollectedItem{},
		StoryItems:    []domain.CollectedItem{},
		MetCharacters: p.MetCharacters,
		ActivePaths:   p.ActivePaths,
		PathNames:     c.session.Novel().PathNames(p.ActivePaths),
	}
	for _, item := range p.CollectedItems {
		if item.ItemType == domain.ItemStory {
			result.StoryItems = append(result.StoryItems, item)
		} else {
			result.Collectibles = append(result.Collectibles, item)
		}
	}
	return result, nil
}
