package domain

// Background is the backdrop in effect at a position
type Background struct {
	URL            string `json:"url"`
	MobileURL      string `json:"mobileUrl,omitempty"`
	ObjectFit      string `json:"objectFit"`
	ObjectPosition string `json:"objectPosition"`
}

// View is what a front-end needs to render the current position
type View struct {
	Found              bool           `json:"found"`
	Position           Position       `json:"position"`
	Number             string         `json:"number"`
	EpisodeTitle       string         `json:"episodeTitle"`
	Kind               Kind           `json:"kind"`
	Paragraph          Paragraph      `json:"paragraph"`
	Text               string         `json:"text"`
	Speaker            string         `json:"speaker,omitempty"`
	SubParagraphIndex  int            `json:"subParagraphIndex"`
	SubParagraphCount  int            `json:"subParagraphCount"`
	HasSubParagraphs   bool           `json:"hasSubParagraphs"`
	IsLastSubParagraph bool           `json:"isLastSubParagraph"`
	Options            []ChoiceOption `json:"options,omitempty"`
	Background         *Background    `json:"background,omitempty"`
	ComicFrames        []ComicFrame   `json:"comicFrames,omitempty"`
	ComicLayout        string         `json:"comicLayout,omitempty"`
	Timeframe          Timeframe      `json:"timeframe"`
	PastelColor        PastelColor    `json:"pastelColor,omitempty"`
	Accessible         bool           `json:"accessible"`
	Bookmarked         bool           `json:"bookmarked"`
}

// Snapshot projects the profile's position into a View. An unknown position
// yields a View with Found false.
func Snapshot(n *Novel, p Profile) View {
	pos := p.Position()
	v := View{Position: pos, Number: n.ParagraphNumber(pos.EpisodeID, pos.ParagraphIndex)}

	ep := n.Episode(pos.EpisodeID)
	par := ep.Paragraph(pos.ParagraphIndex)
	if par == nil {
		return v
	}

	subs := SubParagraphsOf(par)
	cursor := p.CurrentSubParagraphIndex
	if cursor > len(subs) {
		cursor = len(subs)
	}
	if cursor < 0 {
		cursor = 0
	}

	v.Found = true
	v.EpisodeTitle = ep.Title
	v.Kind = par.Kind()
	v.Paragraph = par
	v.SubParagraphIndex = cursor
	v.SubParagraphCount = len(subs)
	v.HasSubParagraphs = len(subs) > 0
	v.IsLastSubParagraph = cursor == len(subs)
	v.Accessible = IsParagraphAccessible(p, pos.EpisodeID, pos.ParagraphIndex)
	_, v.Bookmarked = BookmarkAt(p, pos)
	v.Background = ResolveBackground(ep, pos.ParagraphIndex)
	v.ComicFrames, v.ComicLayout = ComicGroupFrames(ep, pos.ParagraphIndex)

	v.Timeframe = ep.Timeframe()
	if tfs := par.Base().Timeframes; len(tfs) > 0 {
		v.Timeframe = summarizeTimeframes(tfs)
	}
	v.PastelColor = ep.PastelColor
	if c := par.Base().PastelColor; c != "" {
		v.PastelColor = c
	}

	switch par := par.(type) {
	case *TextParagraph:
		v.Text = par.Content
	case *DialogueParagraph:
		v.Text = par.Text
		v.Speaker = par.CharacterName
	case *ChoiceParagraph:
		v.Text = par.Question
		v.Options = VisibleOptions(par, p)
	case *ItemParagraph:
		v.Text = par.Description
	case *ImageParagraph:
		v.Text = par.Alt
	case *BackgroundParagraph, *ComicParagraph, *PauseParagraph:
	}
	if cursor > 0 {
		v.Text = subs[cursor-1].Text
	}
	return v
}

// ResolveBackground walks back from index to the latest background
// paragraph, or to a comic that persists across paragraphs, whose first
// frame then serves as the backdrop
func ResolveBackground(ep *Episode, index int) *Background {
	if ep == nil {
		return nil
	}
	if index >= len(ep.Paragraphs) {
		index = len(ep.Paragraphs) - 1
	}
	for i := index; i >= 0; i-- {
		switch p := ep.Paragraphs[i].(type) {
		case *BackgroundParagraph:
			return &Background{
				URL:            p.URL,
				MobileURL:      p.MobileURL,
				ObjectFit:      orDefault(p.ObjectFit, "cover"),
				ObjectPosition: orDefault(p.ObjectPosition, "center"),
			}
		case *ComicParagraph:
			if p.PersistAcrossParagraphs && len(p.Frames) > 0 {
				f := p.Frames[0]
				return &Background{
					URL:            f.URL,
					MobileURL:      f.MobileURL,
					ObjectFit:      orDefault(f.ObjectFit, "cover"),
					ObjectPosition: orDefault(f.ObjectPosition, "center"),
				}
			}
		}
	}
	return nil
}

// ComicGroupFrames gathers the frames of the comic group the paragraph at
// index belongs to. Members up to index contribute, and a frame with a
// paragraph trigger appears once the reader reaches that group index.
func ComicGroupFrames(ep *Episode, index int) ([]ComicFrame, string) {
	cur := ep.Paragraph(index)
	if cur == nil {
		return nil, ""
	}
	group := cur.Base().ComicGroupID
	if group == "" {
		return ComicFramesOf(cur), frameLayoutOf(cur)
	}

	reached := cur.Base().ComicGroupIndex
	var frames []ComicFrame
	layout := ""
	for i := 0; i <= index; i++ {
		member := ep.Paragraphs[i]
		if member.Base().ComicGroupID != group {
			continue
		}
		if l := frameLayoutOf(member); l != "" {
			layout = l
		}
		for _, f := range ComicFramesOf(member) {
			if f.ParagraphTrigger != nil && *f.ParagraphTrigger > reached {
				continue
			}
			frames = append(frames, f)
		}
	}
	return frames, layout
}

func frameLayoutOf(p Paragraph) string {
	switch p := p.(type) {
	case *TextParagraph:
		return p.FrameLayout
	case *DialogueParagraph:
		return p.FrameLayout
	case *ComicParagraph:
		return p.Layout
	}
	return ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
