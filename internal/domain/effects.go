package domain

import (
	"slices"
	"time"
)

// Arrive applies the side effects of entering the profile's current
// position. Item effects run once per position: a position already in
// readParagraphs was visited before and is skipped.
func Arrive(n *Novel, p Profile, env Env) Profile {
	ep := n.Episode(p.CurrentEpisodeID)
	par := ep.Paragraph(p.CurrentParagraphIndex)
	if par == nil {
		return p
	}

	switch par := par.(type) {
	case *DialogueParagraph:
		return meetCharacter(n, p, par, env)
	case *ItemParagraph:
		if p.HasRead(p.Position().Key()) {
			return p
		}
		return applyItem(p, par)
	case *TextParagraph, *ChoiceParagraph, *ImageParagraph, *BackgroundParagraph, *ComicParagraph, *PauseParagraph:
		return p
	}
	return p
}

func meetCharacter(n *Novel, p Profile, par *DialogueParagraph, env Env) Profile {
	if par.CharacterName == "" {
		return p
	}
	for _, c := range p.MetCharacters {
		if c.Name == par.CharacterName && c.EpisodeID == p.CurrentEpisodeID {
			return p
		}
	}

	image := par.CharacterImage
	if lib := n.Character(par.CharacterName); lib != nil {
		if lib.IsStoryCharacter != nil && !*lib.IsStoryCharacter {
			return p
		}
		if lib.DefaultImage != "" {
			image = lib.DefaultImage
		}
	}

	p.MetCharacters = append(slices.Clone(p.MetCharacters), MetCharacter{
		ID:         env.newID(),
		Name:       par.CharacterName,
		Image:      image,
		EpisodeID:  p.CurrentEpisodeID,
		FirstMetAt: env.now(),
	})
	return p
}

func applyItem(p Profile, par *ItemParagraph) Profile {
	entry := CollectedItem{
		ID:          par.EffectiveItemID(),
		Name:        par.Name,
		Description: par.Description,
		ImageURL:    par.ImageURL,
		EpisodeID:   p.CurrentEpisodeID,
		ItemType:    par.EffectiveItemType(),
	}

	switch entry.ItemType {
	case ItemStory:
		if par.EffectiveAction() == ActionLose {
			return LoseStoryItem(p, entry.ID)
		}
		return GainStoryItem(p, entry)
	default:
		if par.EffectiveAction() == ActionGain {
			return GainCollectible(p, entry)
		}
		return p
	}
}

// GainCollectible adds a collectible once, keyed by its id
func GainCollectible(p Profile, item CollectedItem) Profile {
	if hasItem(p.CollectedItems, item.ID) {
		return p
	}
	item.ItemType = ItemCollectible
	p.CollectedItems = append(slices.Clone(p.CollectedItems), item)
	return p
}

// GainStoryItem adds the id to storyItems and mirrors an inventory entry
func GainStoryItem(p Profile, item CollectedItem) Profile {
	if slices.Contains(p.StoryItems, item.ID) {
		return p
	}
	p.StoryItems = addUnique(p.StoryItems, item.ID)
	if !hasItem(p.CollectedItems, item.ID) {
		item.ItemType = ItemStory
		p.CollectedItems = append(slices.Clone(p.CollectedItems), item)
	}
	return p
}

// LoseStoryItem removes the id and its mirrored inventory entry
func LoseStoryItem(p Profile, id string) Profile {
	if !slices.Contains(p.StoryItems, id) {
		return p
	}
	p.StoryItems = slices.DeleteFunc(slices.Clone(p.StoryItems), func(s string) bool { return s == id })
	p.CollectedItems = slices.DeleteFunc(slices.Clone(p.CollectedItems), func(c CollectedItem) bool {
		return c.ID == id && c.ItemType == ItemStory
	})
	return p
}

func hasItem(items []CollectedItem, id string) bool {
	return slices.ContainsFunc(items, func(c CollectedItem) bool { return c.ID == id })
}

// InventoryConsistent checks that storyItems and the story entries of
// collectedItems name the same ids
func InventoryConsistent(p Profile) bool {
	var mirrored []string
	for _, c := range p.CollectedItems {
		if c.ItemType == ItemStory {
			mirrored = append(mirrored, c.ID)
		}
	}
	if len(mirrored) != len(p.StoryItems) {
		return false
	}
	for _, id := range p.StoryItems {
		if !slices.Contains(mirrored, id) {
			return false
		}
	}
	return true
}

// AnnotateCharacter sets the reader's note on a met character
func AnnotateCharacter(p Profile, id, comment string) (Profile, bool) {
	idx := slices.IndexFunc(p.MetCharacters, func(c MetCharacter) bool { return c.ID == id })
	if idx < 0 {
		return p, false
	}
	p.MetCharacters = slices.Clone(p.MetCharacters)
	p.MetCharacters[idx].Comment = comment
	return p, true
}

func (e Env) now() time.Time {
	if e.Now.IsZero() {
		return time.Now()
	}
	return e.Now
}
