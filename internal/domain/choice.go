package domain

// VisibleOptions returns the options a reader may pick right now. It hides
// used one-time options and options whose required path is inactive. When the
// paragraph is locked after a choice, or is one-time as a whole, any recorded
// pick hides every option.
func VisibleOptions(c *ChoiceParagraph, p Profile) []ChoiceOption {
	if c == nil {
		return nil
	}
	if (c.LockAfterChoice || c.OneTime) && choiceTaken(c, p) {
		return []ChoiceOption{}
	}

	visible := make([]ChoiceOption, 0, len(c.Options))
	for _, opt := range c.Options {
		if opt.OneTime && p.HasUsedChoice(opt.ID) {
			continue
		}
		if opt.RequiredPath != "" && !p.HasPath(opt.RequiredPath) {
			continue
		}
		visible = append(visible, opt)
	}
	return visible
}

// IsOptionVisible reports whether optionID survives VisibleOptions
func IsOptionVisible(c *ChoiceParagraph, p Profile, optionID string) bool {
	for _, opt := range VisibleOptions(c, p) {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}

func choiceTaken(c *ChoiceParagraph, p Profile) bool {
	for _, opt := range c.Options {
		if p.HasUsedChoice(opt.ID) {
			return true
		}
	}
	return false
}

// Choice is the selectChoice intent payload
type Choice struct {
	OptionID           string
	PathID             string
	OneTime            bool
	NextEpisodeID      string
	NextParagraphIndex *int
}

// ChoiceFromOption builds the intent for picking opt inside c
func ChoiceFromOption(c *ChoiceParagraph, opt ChoiceOption) Choice {
	return Choice{
		OptionID:           opt.ID,
		PathID:             opt.ActivatesPath,
		OneTime:            opt.OneTime || c.OneTime || c.LockAfterChoice,
		NextEpisodeID:      opt.NextEpisodeID,
		NextParagraphIndex: opt.NextParagraphIndex,
	}
}
