package domain

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"time"
)

// Position addresses a paragraph inside an episode
type Position struct {
	EpisodeID      string `json:"episodeId"`
	ParagraphIndex int    `json:"paragraphIndex"`
}

// Key is the progress-tracking identity of the position
func (p Position) Key() string {
	return ReadKey(p.EpisodeID, p.ParagraphIndex)
}

func (p Position) String() string {
	return p.Key()
}

// ReadKey builds the "episodeId-index" key used by readParagraphs.
// It follows paragraph order, so reordering an episode shifts recorded progress.
func ReadKey(episodeID string, index int) string {
	return fmt.Sprintf("%s-%d", episodeID, index)
}

// Bookmark marks a position with a reader note
type Bookmark struct {
	ID             string    `json:"id"`
	EpisodeID      string    `json:"episodeId"`
	ParagraphIndex int       `json:"paragraphIndex"`
	Comment        string    `json:"comment"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CollectedItem is an inventory entry
type CollectedItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
	EpisodeID   string `json:"episodeId"`
	ItemType    string `json:"itemType"`
}

// MetCharacter records the first meeting with a character in an episode
type MetCharacter struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Image      string    `json:"image,omitempty"`
	EpisodeID  string    `json:"episodeId"`
	FirstMetAt time.Time `json:"firstMetAt"`
	Comment    string    `json:"comment,omitempty"`
}

// Profile is a reader's progress through a novel. It is a value: the engine
// returns changed copies and never mutates the one it was given.
type Profile struct {
	Name                     string              `json:"name"`
	CreatedAt                time.Time           `json:"createdAt"`
	CurrentEpisodeID         string              `json:"currentEpisodeId"`
	CurrentParagraphIndex    int                 `json:"currentParagraphIndex"`
	CurrentSubParagraphIndex int                 `json:"currentSubParagraphIndex"`
	ReadParagraphs           []string            `json:"readParagraphs"`
	UsedChoices              []string            `json:"usedChoices"`
	ActivePaths              []string            `json:"activePaths"`
	PathChoices              map[string][]string `json:"pathChoices"`
	CollectedItems           []CollectedItem     `json:"collectedItems"`
	StoryItems               []string            `json:"storyItems"`
	MetCharacters            []MetCharacter      `json:"metCharacters"`
	Bookmarks                []Bookmark          `json:"bookmarks"`
	CompletedEpisodes        []string            `json:"completedEpisodes"`
}

// NewProfile starts a reader at the first paragraph of the novel
func NewProfile(name string, n *Novel, now time.Time) Profile {
	start := n.FirstPosition()
	return Profile{
		Name:                  name,
		CreatedAt:             now,
		CurrentEpisodeID:      start.EpisodeID,
		CurrentParagraphIndex: start.ParagraphIndex,
		ReadParagraphs:        []string{},
		UsedChoices:           []string{},
		ActivePaths:           []string{},
		PathChoices:           map[string][]string{},
		CollectedItems:        []CollectedItem{},
		StoryItems:            []string{},
		MetCharacters:         []MetCharacter{},
		Bookmarks:             []Bookmark{},
		CompletedEpisodes:     []string{},
	}
}

// StartProfile is NewProfile with the arrival effects of the first paragraph
// applied, so a novel opening on a dialogue or item records it
func StartProfile(name string, n *Novel, env Env) Profile {
	return Arrive(n, NewProfile(name, n, env.now()), env)
}

// Position returns the profile's current position
func (p Profile) Position() Position {
	return Position{EpisodeID: p.CurrentEpisodeID, ParagraphIndex: p.CurrentParagraphIndex}
}

// Clone returns a deep copy
func (p Profile) Clone() Profile {
	c := p
	c.ReadParagraphs = slices.Clone(p.ReadParagraphs)
	c.UsedChoices = slices.Clone(p.UsedChoices)
	c.ActivePaths = slices.Clone(p.ActivePaths)
	c.CollectedItems = slices.Clone(p.CollectedItems)
	c.StoryItems = slices.Clone(p.StoryItems)
	c.MetCharacters = slices.Clone(p.MetCharacters)
	c.Bookmarks = slices.Clone(p.Bookmarks)
	c.CompletedEpisodes = slices.Clone(p.CompletedEpisodes)
	if p.PathChoices != nil {
		c.PathChoices = make(map[string][]string, len(p.PathChoices))
		for k, v := range p.PathChoices {
			c.PathChoices[k] = slices.Clone(v)
		}
	}
	return c
}

// Equal reports whether two profiles hold the same state
func (p Profile) Equal(o Profile) bool {
	return reflect.DeepEqual(p, o)
}

// HasRead reports whether the position at key was read
func (p Profile) HasRead(key string) bool {
	return slices.Contains(p.ReadParagraphs, key)
}

// HasPath reports whether a path is active
func (p Profile) HasPath(pathID string) bool {
	return slices.Contains(p.ActivePaths, pathID)
}

// HasUsedChoice reports whether a one-time option was taken
func (p Profile) HasUsedChoice(optionID string) bool {
	return slices.Contains(p.UsedChoices, optionID)
}

// MarkRead adds key to the read set; repeated calls change nothing
func (p Profile) MarkRead(key string) Profile {
	p.ReadParagraphs = addUnique(p.ReadParagraphs, key)
	return p
}

// ActivatePath adds a path to the active set
func (p Profile) ActivatePath(pathID string) Profile {
	p.ActivePaths = addUnique(p.ActivePaths, pathID)
	return p
}

// UseChoice adds an option to the used set
func (p Profile) UseChoice(optionID string) Profile {
	p.UsedChoices = addUnique(p.UsedChoices, optionID)
	return p
}

// RecordPathChoice notes that optionID was picked toward pathID
func (p Profile) RecordPathChoice(pathID, optionID string) Profile {
	if slices.Contains(p.PathChoices[pathID], optionID) {
		return p
	}
	choices := make(map[string][]string, len(p.PathChoices)+1)
	maps.Copy(choices, p.PathChoices)
	choices[pathID] = append(slices.Clone(p.PathChoices[pathID]), optionID)
	p.PathChoices = choices
	return p
}

// MoveTo sets the position and resets the sub-paragraph cursor
func (p Profile) MoveTo(pos Position) Profile {
	p.CurrentEpisodeID = pos.EpisodeID
	p.CurrentParagraphIndex = pos.ParagraphIndex
	p.CurrentSubParagraphIndex = 0
	return p
}

// addUnique appends v when absent. It never writes into the backing array
// of s, so copies of a profile stay independent.
func addUnique(s []string, v string) []string {
	if slices.Contains(s, v) {
		return s
	}
	out := make([]string, len(s), len(s)+1)
	copy(out, s)
	return append(out, v)
}
