package domain

import (
	"fmt"
	"strings"
)

// DefaultPathColor is used when a path has no color of its own
const DefaultPathColor = "#9333ea"

// Timeframe marks a paragraph or episode as happening now or in the past
type Timeframe string

const (
	TimeframePresent       Timeframe = "present"
	TimeframeRetrospective Timeframe = "retrospective"
	TimeframeMixed         Timeframe = "mixed"
)

// PastelColor is the accent tint of an episode or paragraph
type PastelColor string

const (
	PastelPink     PastelColor = "pink"
	PastelBlue     PastelColor = "blue"
	PastelPeach    PastelColor = "peach"
	PastelLavender PastelColor = "lavender"
	PastelMint     PastelColor = "mint"
	PastelYellow   PastelColor = "yellow"
	PastelCoral    PastelColor = "coral"
	PastelSky      PastelColor = "sky"
)

// Novel is the root of the content graph. Episode order is significant:
// it is the fallback successor when an episode names no explicit next one.
type Novel struct {
	ID               string            `json:"id,omitempty" yaml:"id,omitempty"`
	Title            string            `json:"title" yaml:"title" validate:"required"`
	Description      string            `json:"description,omitempty" yaml:"description,omitempty"`
	Episodes         []Episode         `json:"episodes" yaml:"episodes" validate:"required,min=1,dive"`
	Library          Library           `json:"library" yaml:"library"`
	Paths            []Path            `json:"paths,omitempty" yaml:"paths,omitempty" validate:"dive"`
	BackgroundImages *BackgroundImages `json:"backgroundImages,omitempty" yaml:"backgroundImages,omitempty"`
}

// BackgroundImages holds per-page backdrops outside of episode playback
type BackgroundImages struct {
	Episodes string `json:"episodes,omitempty" yaml:"episodes,omitempty"`
	Profile  string `json:"profile,omitempty" yaml:"profile,omitempty"`
	Settings string `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// Library holds reusable characters, items and choices
type Library struct {
	Items      []LibraryItem      `json:"items" yaml:"items" validate:"dive"`
	Characters []LibraryCharacter `json:"characters" yaml:"characters" validate:"dive"`
	Choices    []LibraryChoice    `json:"choices" yaml:"choices"`
}

type LibraryItem struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description" yaml:"description"`
	ImageURL    string `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	ItemType    string `json:"itemType,omitempty" yaml:"itemType,omitempty" validate:"omitempty,oneof=collectible story"`
}

// CharacterImage is one of the portraits a character can be shown with
type CharacterImage struct {
	ID   string `json:"id" yaml:"id"`
	URL  string `json:"url" yaml:"url"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// LibraryCharacter describes a speaker. IsStoryCharacter set to false keeps
// the character out of the reader's met-characters list.
type LibraryCharacter struct {
	ID               string           `json:"id" yaml:"id" validate:"required"`
	Name             string           `json:"name" yaml:"name" validate:"required"`
	DefaultImage     string           `json:"defaultImage,omitempty" yaml:"defaultImage,omitempty"`
	Images           []CharacterImage `json:"images" yaml:"images"`
	Description      string           `json:"description,omitempty" yaml:"description,omitempty"`
	IsStoryCharacter *bool            `json:"isStoryCharacter,omitempty" yaml:"isStoryCharacter,omitempty"`
}

type LibraryChoice struct {
	ID       string         `json:"id" yaml:"id"`
	Question string         `json:"question" yaml:"question"`
	Options  []ChoiceOption `json:"options" yaml:"options"`
}

// Path is a named story flag
type Path struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Color       string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Episode is an ordered run of paragraphs
type Episode struct {
	ID                 string            `json:"id" yaml:"id" validate:"required"`
	Title              string            `json:"title" yaml:"title"`
	ShortDescription   string            `json:"shortDescription,omitempty" yaml:"shortDescription,omitempty"`
	Paragraphs         Paragraphs        `json:"paragraphs" yaml:"paragraphs"`
	BackgroundMusic    string            `json:"backgroundMusic,omitempty" yaml:"backgroundMusic,omitempty"`
	NextEpisodeID      string            `json:"nextEpisodeId,omitempty" yaml:"nextEpisodeId,omitempty"`
	NextParagraphIndex *int              `json:"nextParagraphIndex,omitempty" yaml:"nextParagraphIndex,omitempty" validate:"omitempty,min=0"`
	RequiredPath       string            `json:"requiredPath,omitempty" yaml:"requiredPath,omitempty"`
	RequiredPaths      []string          `json:"requiredPaths,omitempty" yaml:"requiredPaths,omitempty"`
	UnlockedForAll     bool              `json:"unlockedForAll,omitempty" yaml:"unlockedForAll,omitempty"`
	Timeframes         []Timeframe       `json:"timeframes,omitempty" yaml:"timeframes,omitempty"`
	PastelColor        PastelColor       `json:"pastelColor,omitempty" yaml:"pastelColor,omitempty" validate:"omitempty,oneof=pink blue peach lavender mint yellow coral sky"`
	PathNextEpisodes   map[string]string `json:"pathNextEpisodes,omitempty" yaml:"pathNextEpisodes,omitempty"`
}

// Paragraph returns the paragraph at index i, or nil when out of range
func (e *Episode) Paragraph(i int) Paragraph {
	if e == nil || i < 0 || i >= len(e.Paragraphs) {
		return nil
	}
	return e.Paragraphs[i]
}

// Timeframe summarizes the episode's declared timeframes
func (e *Episode) Timeframe() Timeframe {
	return summarizeTimeframes(e.Timeframes)
}

func summarizeTimeframes(tfs []Timeframe) Timeframe {
	var present, retro bool
	for _, tf := range tfs {
		switch tf {
		case TimeframePresent:
			present = true
		case TimeframeRetrospective:
			retro = true
		}
	}
	switch {
	case present && retro:
		return TimeframeMixed
	case retro:
		return TimeframeRetrospective
	default:
		return TimeframePresent
	}
}

const wordsPerMinute = 200

// ReadingMinutes estimates reading time of the episode's prose
func (e *Episode) ReadingMinutes() int {
	words := 0
	for _, p := range e.Paragraphs {
		words += len(strings.Fields(paragraphProse(p)))
		for _, sub := range SubParagraphsOf(p) {
			words += len(strings.Fields(sub.Text))
		}
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Episode looks up an episode by id
func (n *Novel) Episode(id string) *Episode {
	if n == nil {
		return nil
	}
	for i := range n.Episodes {
		if n.Episodes[i].ID == id {
			return &n.Episodes[i]
		}
	}
	return nil
}

// EpisodeIndex returns the sequence position of an episode, or -1
func (n *Novel) EpisodeIndex(id string) int {
	if n == nil {
		return -1
	}
	for i := range n.Episodes {
		if n.Episodes[i].ID == id {
			return i
		}
	}
	return -1
}

// NextEpisodeInSequence returns the episode after id in sequence order
func (n *Novel) NextEpisodeInSequence(id string) *Episode {
	idx := n.EpisodeIndex(id)
	if idx < 0 || idx >= len(n.Episodes)-1 {
		return nil
	}
	return &n.Episodes[idx+1]
}

// Character finds a library character by display name
func (n *Novel) Character(name string) *LibraryCharacter {
	if n == nil {
		return nil
	}
	for i := range n.Library.Characters {
		if n.Library.Characters[i].Name == name {
			return &n.Library.Characters[i]
		}
	}
	return nil
}

// Path finds a path by id
func (n *Novel) Path(id string) *Path {
	if n == nil {
		return nil
	}
	for i := range n.Paths {
		if n.Paths[i].ID == id {
			return &n.Paths[i]
		}
	}
	return nil
}

// PathColor returns the display color of a path
func (n *Novel) PathColor(id string) string {
	if p := n.Path(id); p != nil && p.Color != "" {
		return p.Color
	}
	return DefaultPathColor
}

// PathNames renders path ids as a comma separated list of names
func (n *Novel) PathNames(ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if p := n.Path(id); p != nil {
			names = append(names, p.Name)
		} else {
			names = append(names, id)
		}
	}
	return strings.Join(names, ", ")
}

// ParagraphNumber formats a position as "E.P", 1-based
func (n *Novel) ParagraphNumber(episodeID string, index int) string {
	epIdx := n.EpisodeIndex(episodeID)
	if epIdx < 0 {
		return fmt.Sprintf("0.%d", index+1)
	}
	return fmt.Sprintf("%d.%d", epIdx+1, index+1)
}

// FirstPosition is where a fresh profile starts reading
func (n *Novel) FirstPosition() Position {
	if n == nil || len(n.Episodes) == 0 {
		return Position{}
	}
	return Position{EpisodeID: n.Episodes[0].ID}
}
