package domain

import (
	"time"

	"github.com/google/uuid"
)

// IntentKind names a navigation input
type IntentKind int

const (
	IntentNext IntentKind = iota
	IntentPrevious
	IntentChoose
	IntentNextSub
	IntentPreviousSub
)

func (k IntentKind) String() string {
	switch k {
	case IntentNext:
		return "next"
	case IntentPrevious:
		return "previous"
	case IntentChoose:
		return "choose"
	case IntentNextSub:
		return "next-sub"
	case IntentPreviousSub:
		return "previous-sub"
	default:
		return "unknown"
	}
}

// Forward reports whether the intent moves reading forward
func (k IntentKind) Forward() bool {
	return k == IntentNext || k == IntentChoose || k == IntentNextSub
}

// Intent is a discrete navigation input
type Intent struct {
	Kind   IntentKind
	Choice Choice // IntentChoose only
}

// Env carries the reader's access class and the sources of time and ids
type Env struct {
	Guest     bool
	GuestGate func(episodeID string) bool // nil lets guests through
	Now       time.Time
	NewID     func() string
}

func (e Env) guestAllowed(episodeID string) bool {
	if !e.Guest || e.GuestGate == nil {
		return true
	}
	return e.GuestGate(episodeID)
}

func (e Env) newID() string {
	if e.NewID != nil {
		return e.NewID()
	}
	return uuid.NewString()
}

// Outcome is the result of one reducer step
type Outcome struct {
	Profile           Profile
	From              Position
	To                Position
	Moved             bool
	GuestLimitReached bool
	Reason            string // why nothing moved
}

// Changed reports whether the step produced a visible effect
func (o Outcome) Changed() bool {
	return o.Moved || o.GuestLimitReached
}

// Reduce applies one intent to p. The returned profile contains every
// mutation of the step at once; p itself is never modified.
func Reduce(n *Novel, p Profile, in Intent, env Env) Outcome {
	p = p.Clone()
	switch in.Kind {
	case IntentNext:
		return NextParagraph(n, p, env)
	case IntentPrevious:
		return PreviousParagraph(n, p)
	case IntentChoose:
		return HandleChoice(n, p, in.Choice, env)
	case IntentNextSub:
		return NextSubParagraph(n, p)
	case IntentPreviousSub:
		return PreviousSubParagraph(n, p)
	}
	return noop(p, "unknown intent")
}

func noop(p Profile, reason string) Outcome {
	pos := p.Position()
	return Outcome{Profile: p, From: pos, To: pos, Reason: reason}
}

// NextParagraph marks the current paragraph read and advances. At the end of
// an episode it follows the episode's explicit successor, or the next episode
// in sequence. A guest blocked by the gate stays in place with only the
// read-mark applied.
func NextParagraph(n *Novel, p Profile, env Env) Outcome {
	from := p.Position()
	ep := n.Episode(from.EpisodeID)
	cur := ep.Paragraph(from.ParagraphIndex)
	if cur == nil {
		return noop(p, "current position not found")
	}
	if cur.Kind() == KindChoice {
		return noop(p, "choice paragraphs advance through a choice")
	}

	p = p.MarkRead(from.Key())
	return advance(n, p, ep, cur, env)
}

func advance(n *Novel, p Profile, ep *Episode, cur Paragraph, env Env) Outcome {
	from := p.Position()
	nextIndex := from.ParagraphIndex + 1
	// a merged pair shows as one paragraph; the partner must be the neighbour
	if merged := cur.Base().MergedWith; merged != "" && nextIndex < len(ep.Paragraphs) && ep.Paragraph(nextIndex).Base().ID == merged {
		nextIndex++
	}

	if nextIndex < len(ep.Paragraphs) {
		return moveTo(n, p, from, Position{EpisodeID: ep.ID, ParagraphIndex: nextIndex}, env)
	}

	target, ok := episodeSuccessor(n, ep)
	if !ok {
		return noop(p, "end of novel")
	}
	return jump(n, p, from, target, env)
}

// episodeSuccessor resolves where reading continues after ep
func episodeSuccessor(n *Novel, ep *Episode) (Position, bool) {
	if ep.NextEpisodeID != "" {
		idx := 0
		if ep.NextParagraphIndex != nil {
			idx = *ep.NextParagraphIndex
		}
		return Position{EpisodeID: ep.NextEpisodeID, ParagraphIndex: idx}, true
	}
	if next := n.NextEpisodeInSequence(ep.ID); next != nil {
		return Position{EpisodeID: next.ID}, true
	}
	return Position{}, false
}

// jump crosses into another episode behind the guest gate
func jump(n *Novel, p Profile, from, to Position, env Env) Outcome {
	if !env.guestAllowed(to.EpisodeID) {
		return guestBlocked(p, from)
	}
	if n.Episode(to.EpisodeID).Paragraph(to.ParagraphIndex) == nil {
		return noop(p, "target position not found")
	}
	return moveTo(n, p, from, to, env)
}

func moveTo(n *Novel, p Profile, from, to Position, env Env) Outcome {
	p = p.MoveTo(to)
	p = Arrive(n, p, env)
	return Outcome{Profile: p, From: from, To: to, Moved: true}
}

// PreviousParagraph steps back inside the current episode. It never crosses
// into the previous episode and never forgets read progress.
func PreviousParagraph(n *Novel, p Profile) Outcome {
	from := p.Position()
	ep := n.Episode(from.EpisodeID)
	if ep.Paragraph(from.ParagraphIndex) == nil {
		return noop(p, "current position not found")
	}
	if from.ParagraphIndex == 0 {
		return noop(p, "start of episode")
	}

	prev := from.ParagraphIndex - 1
	if prev > 0 {
		before := ep.Paragraph(prev - 1)
		if mergedWith := before.Base().MergedWith; mergedWith != "" && mergedWith == ep.Paragraph(prev).Base().ID {
			prev--
		}
	}

	to := Position{EpisodeID: from.EpisodeID, ParagraphIndex: prev}
	p = p.MoveTo(to)
	return Outcome{Profile: p, From: from, To: to, Moved: true}
}

// HandleChoice records a choice and moves to its target. A one-time choice is
// marked used and an activated path joins activePaths. An explicit target
// jumps behind the guest gate; a missing or unresolvable target continues
// with the next paragraph. A guest blocked by the gate gets none of the
// choice's effects.
func HandleChoice(n *Novel, p Profile, c Choice, env Env) Outcome {
	from := p.Position()
	ep := n.Episode(from.EpisodeID)
	cur := ep.Paragraph(from.ParagraphIndex)
	if cur == nil {
		return noop(p, "current position not found")
	}

	var target *Position
	if c.NextEpisodeID != "" {
		t := Position{EpisodeID: c.NextEpisodeID}
		if c.NextParagraphIndex != nil {
			t.ParagraphIndex = *c.NextParagraphIndex
		}
		if n.Episode(t.EpisodeID).Paragraph(t.ParagraphIndex) != nil {
			target = &t
		}
	}
	if target != nil && !env.guestAllowed(target.EpisodeID) {
		return guestBlocked(p, from)
	}

	before := p
	if c.OneTime {
		p = p.UseChoice(c.OptionID)
	}
	if c.PathID != "" {
		p = p.ActivatePath(c.PathID)
		p = p.RecordPathChoice(c.PathID, c.OptionID)
	}
	p = p.MarkRead(from.Key())

	if target != nil {
		return moveTo(n, p, from, *target, env)
	}

	out := advance(n, p, ep, cur, env)
	if out.GuestLimitReached {
		return guestBlocked(before, from)
	}
	return out
}

func guestBlocked(p Profile, at Position) Outcome {
	return Outcome{Profile: p, From: at, To: at, GuestLimitReached: true, Reason: "episode locked for guests"}
}

// ChooseOption resolves optionID against the current choice paragraph and
// applies it. Hidden and unknown options leave the profile untouched.
func ChooseOption(n *Novel, p Profile, optionID string, env Env) Outcome {
	ep := n.Episode(p.CurrentEpisodeID)
	c, ok := ep.Paragraph(p.CurrentParagraphIndex).(*ChoiceParagraph)
	if !ok {
		return noop(p, "current paragraph is not a choice")
	}
	opt := c.Option(optionID)
	if opt == nil {
		return noop(p, "unknown option "+optionID)
	}
	if !IsOptionVisible(c, p, optionID) {
		return noop(p, "option "+optionID+" is not available")
	}
	return Reduce(n, p, Intent{Kind: IntentChoose, Choice: ChoiceFromOption(c, *opt)}, env)
}
