package domain

import (
	"fmt"
	"time"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func intPtr(i int) *int { return &i }

func boolPtr(b bool) *bool { return &b }

func text(id, content string, subs ...string) *TextParagraph {
	p := &TextParagraph{ParagraphBase: ParagraphBase{ID: id, Type: KindText}, Content: content}
	for i, s := range subs {
		p.SubParagraphs = append(p.SubParagraphs, SubParagraph{ID: fmt.Sprintf("%s-sub-%d", id, i), Text: s})
	}
	return p
}

func dialogue(id, speaker, line string) *DialogueParagraph {
	return &DialogueParagraph{ParagraphBase: ParagraphBase{ID: id, Type: KindDialogue}, CharacterName: speaker, Text: line}
}

func choice(id, question string, opts ...ChoiceOption) *ChoiceParagraph {
	return &ChoiceParagraph{ParagraphBase: ParagraphBase{ID: id, Type: KindChoice}, Question: question, Options: opts}
}

func item(id, itemID, itemType, action string) *ItemParagraph {
	return &ItemParagraph{
		ParagraphBase: ParagraphBase{ID: id, Type: KindItem},
		Name:          "Item " + itemID,
		Description:   "A thing called " + itemID,
		ItemID:        itemID,
		ItemType:      itemType,
		Action:        action,
	}
}

func background(id, url string) *BackgroundParagraph {
	return &BackgroundParagraph{ParagraphBase: ParagraphBase{ID: id, Type: KindBackground}, URL: url}
}

// twoEpisodeNovel is the canonical branching scenario: ep1 has a text
// paragraph then a choice that activates "good" and jumps to ep2.
func twoEpisodeNovel() *Novel {
	return &Novel{
		Title: "Two Roads",
		Episodes: []Episode{
			{
				ID:    "ep1",
				Title: "Departure",
				Paragraphs: Paragraphs{
					text("p1", "The road forks."),
					choice("c1", "Which way?",
						ChoiceOption{ID: "opt1", Text: "Left", ActivatesPath: "good", NextEpisodeID: "ep2", NextParagraphIndex: intPtr(0)},
						ChoiceOption{ID: "opt2", Text: "Right"},
					),
				},
			},
			{
				ID:    "ep2",
				Title: "Arrival",
				Paragraphs: Paragraphs{
					text("p2", "You arrive."),
					text("p3", "The end."),
				},
			},
		},
		Paths: []Path{{ID: "good", Name: "Good Path", Color: "#10b981"}},
	}
}

// linearNovel has two plain episodes; ep2 is locked for guests
func linearNovel() *Novel {
	return &Novel{
		Title: "Straight Line",
		Episodes: []Episode{
			{ID: "ep1", Title: "One", Paragraphs: Paragraphs{text("a", "A."), text("b", "B.")}},
			{ID: "ep2", Title: "Two", Paragraphs: Paragraphs{text("c", "C.")}},
		},
	}
}

func startAt(n *Novel, episodeID string, index int) Profile {
	p := NewProfile("reader", n, testNow)
	return p.MoveTo(Position{EpisodeID: episodeID, ParagraphIndex: index})
}

func testEnv() Env {
	seq := 0
	return Env{
		Now: testNow,
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
	}
}
