package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Paragraphs decodes the tagged paragraph union from JSON and YAML
type Paragraphs []Paragraph

// ParagraphDecodeError reports a paragraph that could not be decoded
type ParagraphDecodeError struct {
	EpisodeID string
	Index     int
	ID        string
	Err       error
}

func (e *ParagraphDecodeError) Error() string {
	where := fmt.Sprintf("paragraph %d", e.Index)
	if e.ID != "" {
		where += fmt.Sprintf(" (%s)", e.ID)
	}
	if e.EpisodeID != "" {
		where = fmt.Sprintf("episode %s %s", e.EpisodeID, where)
	}
	return fmt.Sprintf("%s: %v", where, e.Err)
}

func (e *ParagraphDecodeError) Unwrap() error {
	return e.Err
}

type paragraphProbe struct {
	ID   string `json:"id" yaml:"id"`
	Type Kind   `json:"type" yaml:"type"`
}

func (ps *Paragraphs) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	out := make(Paragraphs, 0, len(raws))
	for i, raw := range raws {
		var probe paragraphProbe
		if err := json.Unmarshal(raw, &probe); err != nil {
			return &ParagraphDecodeError{Index: i, Err: err}
		}
		p, ok := NewParagraph(probe.Type, probe.ID)
		if !ok {
			return &ParagraphDecodeError{Index: i, ID: probe.ID, Err: fmt.Errorf("unknown paragraph type %q", probe.Type)}
		}
		if err := json.Unmarshal(raw, p); err != nil {
			return &ParagraphDecodeError{Index: i, ID: probe.ID, Err: err}
		}
		out = append(out, p)
	}

	*ps = out
	return nil
}

// MarshalJSON writes each paragraph with its type tag in sync with its kind
func (ps Paragraphs) MarshalJSON() ([]byte, error) {
	for _, p := range ps {
		p.Base().Type = p.Kind()
	}
	return json.Marshal([]Paragraph(ps))
}

func (ps *Paragraphs) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: paragraphs must be a list", value.Line)
	}

	out := make(Paragraphs, 0, len(value.Content))
	for i, node := range value.Content {
		var probe paragraphProbe
		if err := node.Decode(&probe); err != nil {
			return &ParagraphDecodeError{Index: i, Err: err}
		}
		p, ok := NewParagraph(probe.Type, probe.ID)
		if !ok {
			return &ParagraphDecodeError{Index: i, ID: probe.ID, Err: fmt.Errorf("line %d: unknown paragraph type %q", node.Line, probe.Type)}
		}
		if err := node.Decode(p); err != nil {
			return &ParagraphDecodeError{Index: i, ID: probe.ID, Err: err}
		}
		out = append(out, p)
	}

	*ps = out
	return nil
}

func (ps Paragraphs) MarshalYAML() (interface{}, error) {
	for _, p := range ps {
		p.Base().Type = p.Kind()
	}
	return []Paragraph(ps), nil
}

// episodeFields lets Episode decode without recursing into its own hooks
type episodeFields Episode

func (e *Episode) UnmarshalJSON(data []byte) error {
	var f episodeFields
	err := json.Unmarshal(data, &f)
	*e = Episode(f)
	return tagEpisode(err, e.ID)
}

func (e *Episode) UnmarshalYAML(value *yaml.Node) error {
	var f episodeFields
	err := value.Decode(&f)
	*e = Episode(f)
	return tagEpisode(err, e.ID)
}

func tagEpisode(err error, episodeID string) error {
	var pe *ParagraphDecodeError
	if errors.As(err, &pe) && pe.EpisodeID == "" {
		pe.EpisodeID = episodeID
	}
	return err
}

// DecodeNovelJSON parses a novel document
func DecodeNovelJSON(data []byte) (*Novel, error) {
	var n Novel
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// DecodeNovelYAML parses a novel document written in YAML
func DecodeNovelYAML(data []byte) (*Novel, error) {
	var n Novel
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}
