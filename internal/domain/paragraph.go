package domain

// Kind is the variant tag of a paragraph
type Kind string

const (
	KindText       Kind = "text"
	KindDialogue   Kind = "dialogue"
	KindChoice     Kind = "choice"
	KindItem       Kind = "item"
	KindImage      Kind = "image"
	KindBackground Kind = "background"
	KindComic      Kind = "comic"
	KindPause      Kind = "pause"
)

// Kinds lists every paragraph variant
var Kinds = []Kind{KindText, KindDialogue, KindChoice, KindItem, KindImage, KindBackground, KindComic, KindPause}

// Valid reports whether k is one of the known variants
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Paragraph is the closed set of paragraph variants. Only types in this
// package implement it; switch on the concrete type to dispatch.
type Paragraph interface {
	Base() *ParagraphBase
	Kind() Kind
	paragraph()
}

// ParagraphBase holds the fields every variant shares
type ParagraphBase struct {
	ID              string      `json:"id" yaml:"id"`
	Type            Kind        `json:"type" yaml:"type"`
	RequiredPaths   []string    `json:"requiredPaths,omitempty" yaml:"requiredPaths,omitempty"`
	Timeframes      []Timeframe `json:"timeframes,omitempty" yaml:"timeframes,omitempty"`
	PastelColor     PastelColor `json:"pastelColor,omitempty" yaml:"pastelColor,omitempty"`
	ComicGroupID    string      `json:"comicGroupId,omitempty" yaml:"comicGroupId,omitempty"`
	ComicGroupIndex int         `json:"comicGroupIndex,omitempty" yaml:"comicGroupIndex,omitempty"`
	MergedWith      string      `json:"mergedWith,omitempty" yaml:"mergedWith,omitempty"`
}

func (b *ParagraphBase) Base() *ParagraphBase { return b }
func (b *ParagraphBase) paragraph()           {}

// SubParagraph is a supplementary text beat shown after the main text
type SubParagraph struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// FrameTransform offsets a comic frame inside its cell
type FrameTransform struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Scale  float64 `json:"scale" yaml:"scale"`
	Rotate float64 `json:"rotate" yaml:"rotate"`
}

// ComicFrame is one cell of a comic layout
type ComicFrame struct {
	ID               string          `json:"id" yaml:"id"`
	Type             string          `json:"type" yaml:"type"` // image | background
	URL              string          `json:"url" yaml:"url"`
	MobileURL        string          `json:"mobileUrl,omitempty" yaml:"mobileUrl,omitempty"`
	Alt              string          `json:"alt,omitempty" yaml:"alt,omitempty"`
	ParagraphTrigger *int            `json:"paragraphTrigger,omitempty" yaml:"paragraphTrigger,omitempty"`
	Animation        string          `json:"animation,omitempty" yaml:"animation,omitempty"`
	ObjectFit        string          `json:"objectFit,omitempty" yaml:"objectFit,omitempty"`
	ObjectPosition   string          `json:"objectPosition,omitempty" yaml:"objectPosition,omitempty"`
	Shape            string          `json:"shape,omitempty" yaml:"shape,omitempty"`
	Transform        *FrameTransform `json:"transform,omitempty" yaml:"transform,omitempty"`
}

type TextParagraph struct {
	ParagraphBase `yaml:",inline"`
	Content       string         `json:"content" yaml:"content"`
	SubParagraphs []SubParagraph `json:"subParagraphs,omitempty" yaml:"subParagraphs,omitempty"`
	ComicFrames   []ComicFrame   `json:"comicFrames,omitempty" yaml:"comicFrames,omitempty"`
	FrameLayout   string         `json:"frameLayout,omitempty" yaml:"frameLayout,omitempty"`
}

type DialogueParagraph struct {
	ParagraphBase  `yaml:",inline"`
	CharacterName  string         `json:"characterName" yaml:"characterName"`
	CharacterImage string         `json:"characterImage,omitempty" yaml:"characterImage,omitempty"`
	Text           string         `json:"text" yaml:"text"`
	SubParagraphs  []SubParagraph `json:"subParagraphs,omitempty" yaml:"subParagraphs,omitempty"`
	ComicFrames    []ComicFrame   `json:"comicFrames,omitempty" yaml:"comicFrames,omitempty"`
	FrameLayout    string         `json:"frameLayout,omitempty" yaml:"frameLayout,omitempty"`
}

// ChoiceOption is one branch of a choice paragraph
type ChoiceOption struct {
	ID                 string `json:"id" yaml:"id"`
	Text               string `json:"text" yaml:"text"`
	NextEpisodeID      string `json:"nextEpisodeId,omitempty" yaml:"nextEpisodeId,omitempty"`
	NextParagraphIndex *int   `json:"nextParagraphIndex,omitempty" yaml:"nextParagraphIndex,omitempty"`
	RequiredPath       string `json:"requiredPath,omitempty" yaml:"requiredPath,omitempty"`
	ActivatesPath      string `json:"activatesPath,omitempty" yaml:"activatesPath,omitempty"`
	OneTime            bool   `json:"oneTime,omitempty" yaml:"oneTime,omitempty"`
}

type ChoiceParagraph struct {
	ParagraphBase   `yaml:",inline"`
	Question        string         `json:"question" yaml:"question"`
	LockAfterChoice bool           `json:"lockAfterChoice,omitempty" yaml:"lockAfterChoice,omitempty"`
	OneTime         bool           `json:"oneTime,omitempty" yaml:"oneTime,omitempty"`
	Options         []ChoiceOption `json:"options" yaml:"options"`
}

// Option finds an option by id
func (c *ChoiceParagraph) Option(id string) *ChoiceOption {
	for i := range c.Options {
		if c.Options[i].ID == id {
			return &c.Options[i]
		}
	}
	return nil
}

const (
	ItemCollectible = "collectible"
	ItemStory       = "story"

	ActionGain = "gain"
	ActionLose = "lose"
)

type ItemParagraph struct {
	ParagraphBase `yaml:",inline"`
	Name          string `json:"name" yaml:"name"`
	Description   string `json:"description" yaml:"description"`
	ImageURL      string `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	ItemID        string `json:"itemId,omitempty" yaml:"itemId,omitempty"` // library item; defaults to the paragraph id
	ItemType      string `json:"itemType,omitempty" yaml:"itemType,omitempty"`
	Action        string `json:"action,omitempty" yaml:"action,omitempty"`
}

// EffectiveItemID is the inventory key of the item
func (p *ItemParagraph) EffectiveItemID() string {
	if p.ItemID != "" {
		return p.ItemID
	}
	return p.ID
}

// EffectiveItemType defaults to collectible
func (p *ItemParagraph) EffectiveItemType() string {
	if p.ItemType == "" {
		return ItemCollectible
	}
	return p.ItemType
}

// EffectiveAction defaults to gain
func (p *ItemParagraph) EffectiveAction() string {
	if p.Action == "" {
		return ActionGain
	}
	return p.Action
}

type ImageParagraph struct {
	ParagraphBase `yaml:",inline"`
	URL           string `json:"url" yaml:"url"`
	Alt           string `json:"alt,omitempty" yaml:"alt,omitempty"`
}

type BackgroundParagraph struct {
	ParagraphBase  `yaml:",inline"`
	URL            string `json:"url" yaml:"url"`
	MobileURL      string `json:"mobileUrl,omitempty" yaml:"mobileUrl,omitempty"`
	ObjectFit      string `json:"objectFit,omitempty" yaml:"objectFit,omitempty"`
	ObjectPosition string `json:"objectPosition,omitempty" yaml:"objectPosition,omitempty"`
}

type ComicParagraph struct {
	ParagraphBase           `yaml:",inline"`
	Frames                  []ComicFrame `json:"frames" yaml:"frames"`
	Layout                  string       `json:"layout,omitempty" yaml:"layout,omitempty"`
	PersistAcrossParagraphs bool         `json:"persistAcrossParagraphs,omitempty" yaml:"persistAcrossParagraphs,omitempty"`
}

// DefaultPauseMillis is the pause length when none is given
const DefaultPauseMillis = 500

type PauseParagraph struct {
	ParagraphBase `yaml:",inline"`
	Duration      int `json:"duration,omitempty" yaml:"duration,omitempty"` // milliseconds
}

// Millis returns the pause length, defaulting to DefaultPauseMillis
func (p *PauseParagraph) Millis() int {
	if p.Duration <= 0 {
		return DefaultPauseMillis
	}
	return p.Duration
}

func (p *TextParagraph) Kind() Kind       { return KindText }
func (p *DialogueParagraph) Kind() Kind   { return KindDialogue }
func (p *ChoiceParagraph) Kind() Kind     { return KindChoice }
func (p *ItemParagraph) Kind() Kind       { return KindItem }
func (p *ImageParagraph) Kind() Kind      { return KindImage }
func (p *BackgroundParagraph) Kind() Kind { return KindBackground }
func (p *ComicParagraph) Kind() Kind      { return KindComic }
func (p *PauseParagraph) Kind() Kind      { return KindPause }

// NewParagraph returns an empty paragraph of kind k with its tag set
func NewParagraph(k Kind, id string) (Paragraph, bool) {
	base := ParagraphBase{ID: id, Type: k}
	switch k {
	case KindText:
		return &TextParagraph{ParagraphBase: base}, true
	case KindDialogue:
		return &DialogueParagraph{ParagraphBase: base}, true
	case KindChoice:
		return &ChoiceParagraph{ParagraphBase: base}, true
	case KindItem:
		return &ItemParagraph{ParagraphBase: base}, true
	case KindImage:
		return &ImageParagraph{ParagraphBase: base}, true
	case KindBackground:
		return &BackgroundParagraph{ParagraphBase: base}, true
	case KindComic:
		return &ComicParagraph{ParagraphBase: base}, true
	case KindPause:
		return &PauseParagraph{ParagraphBase: base}, true
	}
	return nil, false
}

// SubParagraphsOf returns the sub-beats of text and dialogue paragraphs
func SubParagraphsOf(p Paragraph) []SubParagraph {
	switch p := p.(type) {
	case *TextParagraph:
		return p.SubParagraphs
	case *DialogueParagraph:
		return p.SubParagraphs
	}
	return nil
}

// ComicFramesOf returns the frames a paragraph contributes to a comic layout
func ComicFramesOf(p Paragraph) []ComicFrame {
	switch p := p.(type) {
	case *TextParagraph:
		return p.ComicFrames
	case *DialogueParagraph:
		return p.ComicFrames
	case *ComicParagraph:
		return p.Frames
	}
	return nil
}

// paragraphProse is the main readable text of a paragraph
func paragraphProse(p Paragraph) string {
	switch p := p.(type) {
	case *TextParagraph:
		return p.Content
	case *DialogueParagraph:
		return p.Text
	case *ChoiceParagraph:
		return p.Question
	case *ItemParagraph:
		return p.Description
	case *ImageParagraph:
		return p.Alt
	case *BackgroundParagraph, *ComicParagraph, *PauseParagraph:
		return ""
	}
	return ""
}
