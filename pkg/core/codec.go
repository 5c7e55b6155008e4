package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// documentFields mirrors WritingDocument with every key optional so absent
// and null keys can be told apart from zero values.
type documentFields struct {
	Name     *string `json:"name"`
	Text     *string `json:"text"`
	Font     *string `json:"font"`
	FontSize *uint32 `json:"font_size"`
	Theme    *string `json:"theme"`
}

func (f documentFields) document() (WritingDocument, error) {
	switch {
	case f.Name == nil:
		return WritingDocument{}, errors.New("missing field `name`")
	case f.Text == nil:
		return WritingDocument{}, errors.New("missing field `text`")
	case f.Font == nil:
		return WritingDocument{}, errors.New("missing field `font`")
	case f.FontSize == nil:
		return WritingDocument{}, errors.New("missing field `font_size`")
	case f.Theme == nil:
		return WritingDocument{}, errors.New("missing field `theme`")
	}
	return WritingDocument{
		Name:     *f.Name,
		Text:     *f.Text,
		Font:     *f.Font,
		FontSize: *f.FontSize,
		Theme:    *f.Theme,
	}, nil
}

// UnmarshalJSON requires all five keys to be present and non-null.
// Unknown keys are ignored here; DecodeDocument rejects them.
func (d *WritingDocument) UnmarshalJSON(data []byte) error {
	var f documentFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	doc, err := f.document()
	if err != nil {
		return err
	}
	*d = doc
	return nil
}

// DecodeDocument parses a stored document. Unknown keys, missing or null
// keys, trailing data and invalid values are all rejected.
func DecodeDocument(data []byte) (WritingDocument, error) {
	var f documentFields
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return WritingDocument{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return WritingDocument{}, errors.New("invalid character after top-level value")
	}
	doc, err := f.document()
	if err != nil {
		return WritingDocument{}, err
	}
	if err := doc.Validate(); err != nil {
		return WritingDocument{}, fmt.Errorf("stored document: %w", err)
	}
	return doc, nil
}
