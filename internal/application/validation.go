package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"novella/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "optionID" -> "option ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"optionID":     "option ID",
		"bookmarkID":   "bookmark ID",
		"episodeID":    "episode ID",
		"transitionID": "transition ID",
		"characterID":  "character ID",
		"profile":      "profile name",
		"comment":      "comment",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateNovel checks struct constraints first, then the content graph:
// unique episode ids, reachable targets, merge partners and item actions.
// Every problem found is returned, joined.
func ValidateNovel(n *domain.Novel) error {
	if n == nil {
		return &ValidationError{Field: "novel", Message: "novel is required"}
	}

	var errs []error
	if err := validate.Struct(n); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = append(errs, &ValidationError{
				Field:   fe.Namespace(),
				Message: fmt.Sprintf("failed %q constraint", fe.Tag()),
			})
		}
	}

	seen := make(map[string]bool, len(n.Episodes))
	for _, ep := range n.Episodes {
		if seen[ep.ID] {
			errs = append(errs, &ContentError{EpisodeID: ep.ID, Index: -1, Reason: "duplicate episode id"})
		}
		seen[ep.ID] = true
	}

	for i := range n.Episodes {
		errs = append(errs, validateEpisode(n, &n.Episodes[i])...)
	}
	return errors.Join(errs...)
}

func validateEpisode(n *domain.Novel, ep *domain.Episode) []error {
	var errs []error
	if ep.NextEpisodeID != "" {
		idx := 0
		if ep.NextParagraphIndex != nil {
			idx = *ep.NextParagraphIndex
		}
		if !targetExists(n, ep.NextEpisodeID, idx) {
			errs = append(errs, &ContentError{EpisodeID: ep.ID, Index: -1, Reason: fmt.Sprintf("next episode target %s-%d does not exist", ep.NextEpisodeID, idx)})
		}
	}
	for target := range ep.PathNextEpisodes {
		if n.Path(target) == nil {
			errs = append(errs, &ContentError{EpisodeID: ep.ID, Index: -1, Reason: fmt.Sprintf("unknown path %s in path next episodes", target)})
		}
	}

	ids := make(map[string]bool, len(ep.Paragraphs))
	for _, par := range ep.Paragraphs {
		ids[par.Base().ID] = true
	}

	for i, par := range ep.Paragraphs {
		if merged := par.Base().MergedWith; merged != "" && !ids[merged] {
			errs = append(errs, &ContentError{EpisodeID: ep.ID, Index: i, Reason: fmt.Sprintf("merged partner %s does not exist", merged)})
		}

		switch par := par.(type) {
		case *domain.ChoiceParagraph:
			if len(par.Options) == 0 {
				errs = append(errs, &ContentError{EpisodeID: ep.ID, Index: i, Reason: "choice has no options"})
			}
			for _, opt := range par.Options {
				if opt.NextEpisodeID == "" {
					continue
				}
				idx := 0
				if opt.NextParagraphIndex != nil {
					idx = *opt.NextParagraphIndex
				}
				if !targetExists(n, opt.NextEpisodeID, idx) {
					errs = append(errs, &ContentError{EpisodeID: ep.ID, Index: i, Reason: fmt.Sprintf("option %s targets missing %s-%d", opt.ID, opt.NextEpisodeID, idx)})
				}
			}
		case *domain.ItemParagraph:
			switch par.EffectiveAction() {
			case domain.ActionGain, domain.ActionLose:
			default:
				errs = append(errs, &ContentError{EpisodeID: ep.ID, Index: i, Reason: fmt.Sprintf("unknown item action %q", par.Action)})
			}
			switch par.EffectiveItemType() {
			case domain.ItemCollectible, domain.ItemStory:
			default:
				errs = append(errs, &ContentError{EpisodeID: ep.ID, Index: i, Reason: fmt.Sprintf("unknown item type %q", par.ItemType)})
			}
		case *domain.TextParagraph, *domain.DialogueParagraph, *domain.ImageParagraph,
			*domain.BackgroundParagraph, *domain.ComicParagraph, *domain.PauseParagraph:
		}
	}
	return errs
}

func targetExists(n *domain.Novel, episodeID string, index int) bool {
	return n.Episode(episodeID).Paragraph(index) != nil
}
