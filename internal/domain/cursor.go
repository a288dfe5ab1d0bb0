package domain

// A paragraph with N sub-beats has N+1 cursor positions: 0 is the main
// text, 1..N are SubParagraphs[0..N-1].

// SubParagraphCount returns N for the paragraph at the profile's position
func SubParagraphCount(n *Novel, p Profile) int {
	par := n.Episode(p.CurrentEpisodeID).Paragraph(p.CurrentParagraphIndex)
	return len(SubParagraphsOf(par))
}

// HasSubParagraphs reports whether the current paragraph has sub-beats
func HasSubParagraphs(n *Novel, p Profile) bool {
	return SubParagraphCount(n, p) > 0
}

// IsLastSubParagraph is true when the cursor shows the final sub-beat. A
// paragraph without sub-beats is always on its last one.
func IsLastSubParagraph(n *Novel, p Profile) bool {
	return p.CurrentSubParagraphIndex == SubParagraphCount(n, p)
}

// NextSubParagraph moves the cursor forward. Moved is false at the last
// sub-beat, telling the caller to advance the paragraph instead.
func NextSubParagraph(n *Novel, p Profile) Outcome {
	count := SubParagraphCount(n, p)
	if p.CurrentSubParagraphIndex >= count {
		return noop(p, "last sub-paragraph")
	}
	p.CurrentSubParagraphIndex++
	pos := p.Position()
	return Outcome{Profile: p, From: pos, To: pos, Moved: true}
}

// PreviousSubParagraph moves the cursor back, stopping at the main text
func PreviousSubParagraph(n *Novel, p Profile) Outcome {
	if p.CurrentSubParagraphIndex <= 0 {
		return noop(p, "first sub-paragraph")
	}
	p.CurrentSubParagraphIndex--
	if count := SubParagraphCount(n, p); p.CurrentSubParagraphIndex > count {
		p.CurrentSubParagraphIndex = count
	}
	pos := p.Position()
	return Outcome{Profile: p, From: pos, To: pos, Moved: true}
}

// RestoreSubParagraph clamps a stored cursor to the current paragraph, for
// resuming a session in the middle of a paragraph
func RestoreSubParagraph(n *Novel, p Profile) Profile {
	count := SubParagraphCount(n, p)
	switch {
	case p.CurrentSubParagraphIndex < 0:
		p.CurrentSubParagraphIndex = 0
	case p.CurrentSubParagraphIndex > count:
		p.CurrentSubParagraphIndex = count
	}
	return p
}

// TapIntent maps a forward tap to an intent: sub-beats first, then the next
// paragraph. Choice paragraphs ignore taps.
func TapIntent(n *Novel, p Profile) (Intent, bool) {
	par := n.Episode(p.CurrentEpisodeID).Paragraph(p.CurrentParagraphIndex)
	if par == nil || par.Kind() == KindChoice {
		return Intent{}, false
	}
	if HasSubParagraphs(n, p) && !IsLastSubParagraph(n, p) {
		return Intent{Kind: IntentNextSub}, true
	}
	return Intent{Kind: IntentNext}, true
}

// Tap applies TapIntent
func Tap(n *Novel, p Profile, env Env) Outcome {
	in, ok := TapIntent(n, p)
	if !ok {
		return noop(p, "nothing to advance")
	}
	return Reduce(n, p, in, env)
}
