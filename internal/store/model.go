package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// PropertyKind discriminates the closed set of field-value kinds the store
// can hold. Anything outside this set is treated as a text span list.
type PropertyKind string

const (
	KindTitle       PropertyKind = "title"
	KindRichText    PropertyKind = "rich_text"
	KindNumber      PropertyKind = "number"
	KindSelect      PropertyKind = "select"
	KindMultiSelect PropertyKind = "multi_select"
	KindDate        PropertyKind = "date"
	KindURL         PropertyKind = "url"
	KindEmail       PropertyKind = "email"
	KindPhone       PropertyKind = "phone_number"
	KindCheckbox    PropertyKind = "checkbox"
	KindStatus      PropertyKind = "status"
	KindUniqueID    PropertyKind = "unique_id"
)

// RichText is a single text span. Formatting annotations are carried as raw
// payload so spans round-trip verbatim.
type RichText struct {
	Type        string          `json:"type,omitempty"`
	Text        json.RawMessage `json:"text,omitempty"`
	Annotations json.RawMessage `json:"annotations,omitempty"`
	PlainText   string          `json:"plain_text,omitempty"`
	Href        *string         `json:"href,omitempty"`
}

// SelectOption is one choice of a select, multi-select or status field.
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// DateRange mirrors the store's date value: an optional open interval.
type DateRange struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// UniqueID is the store-assigned immutable numeric identifier property.
type UniqueID struct {
	Prefix *string `json:"prefix"`
	Number *int    `json:"number"`
}

// PropertyValue is a tagged union over the known field-value kinds. Exactly
// one of the kind-specific fields is meaningful, selected by Kind.
type PropertyValue struct {
	Kind        PropertyKind
	Title       []RichText
	RichText    []RichText
	Number      *float64
	Select      *SelectOption
	MultiSelect []SelectOption
	Date        *DateRange
	URL         *string
	Email       *string
	Phone       *string
	Checkbox    bool
	Status      *SelectOption
	UniqueID    *UniqueID
}

// MarshalJSON emits the discriminator plus exactly one kind-specific key.
// A select value with no selection marshals an explicit null so the target
// field is cleared rather than left untouched.
func (v PropertyValue) MarshalJSON() ([]byte, error) {
	m := map[string]any{"type": v.Kind}
	switch v.Kind {
	case KindTitle:
		m["title"] = spansOrEmpty(v.Title)
	case KindRichText:
		m["rich_text"] = spansOrEmpty(v.RichText)
	case KindNumber:
		m["number"] = v.Number
	case KindSelect:
		if v.Select != nil {
			m["select"] = v.Select
		} else {
			m["select"] = nil
		}
	case KindMultiSelect:
		opts := v.MultiSelect
		if opts == nil {
			opts = []SelectOption{}
		}
		m["multi_select"] = opts
	case KindDate:
		m["date"] = v.Date
	case KindURL:
		m["url"] = v.URL
	case KindEmail:
		m["email"] = v.Email
	case KindPhone:
		m["phone_number"] = v.Phone
	case KindCheckbox:
		m["checkbox"] = v.Checkbox
	case KindStatus:
		if v.Status != nil {
			m["status"] = v.Status
		} else {
			m["status"] = nil
		}
	case KindUniqueID:
		m["unique_id"] = v.UniqueID
	default:
		// Unrecognized kinds resubmit as plain text spans.
		m["type"] = KindRichText
		m["rich_text"] = spansOrEmpty(v.RichText)
	}
	return json.Marshal(m)
}

func spansOrEmpty(spans []RichText) []RichText {
	if spans == nil {
		return []RichText{}
	}
	return spans
}

// UnmarshalJSON reads the discriminator and every kind-specific key the
// store may send; fields for other kinds stay zero.
func (v *PropertyValue) UnmarshalJSON(data []byte) error {
	var aux struct {
		Kind        PropertyKind   `json:"type"`
		Title       []RichText     `json:"title"`
		RichText    []RichText     `json:"rich_text"`
		Number      *float64       `json:"number"`
		Select      *SelectOption  `json:"select"`
		MultiSelect []SelectOption `json:"multi_select"`
		Date        *DateRange     `json:"date"`
		URL         *string        `json:"url"`
		Email       *string        `json:"email"`
		Phone       *string        `json:"phone_number"`
		Checkbox    bool           `json:"checkbox"`
		Status      *SelectOption  `json:"status"`
		UniqueID    *UniqueID      `json:"unique_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("decoding property value: %w", err)
	}
	*v = PropertyValue{
		Kind:        aux.Kind,
		Title:       aux.Title,
		RichText:    aux.RichText,
		Number:      aux.Number,
		Select:      aux.Select,
		MultiSelect: aux.MultiSelect,
		Date:        aux.Date,
		URL:         aux.URL,
		Email:       aux.Email,
		Phone:       aux.Phone,
		Checkbox:    aux.Checkbox,
		Status:      aux.Status,
		UniqueID:    aux.UniqueID,
	}
	return nil
}

// Document is a record in a collection.
type Document struct {
	ID             string                   `json:"id"`
	CreatedTime    time.Time                `json:"created_time"`
	LastEditedTime time.Time                `json:"last_edited_time"`
	Archived       bool                     `json:"archived"`
	Properties     map[string]PropertyValue `json:"properties"`
}

// ContentBlock is one typed unit of nested page content. The kind-specific
// payload is kept raw; server-assigned attributes are captured separately so
// a sanitized block can be rebuilt from Kind and Payload alone.
type ContentBlock struct {
	ID             string
	Kind           string
	HasChildren    bool
	Archived       bool
	CreatedTime    string
	LastEditedTime string
	CreatedBy      json.RawMessage
	LastEditedBy   json.RawMessage
	Parent         json.RawMessage
	Payload        json.RawMessage
}

func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding block: %w", err)
	}
	unquote := func(key string) string {
		var s string
		if v, ok := raw[key]; ok {
			_ = json.Unmarshal(v, &s)
		}
		return s
	}
	unbool := func(key string) bool {
		var f bool
		if v, ok := raw[key]; ok {
			_ = json.Unmarshal(v, &f)
		}
		return f
	}
	b.ID = unquote("id")
	b.Kind = unquote("type")
	b.HasChildren = unbool("has_children")
	b.Archived = unbool("archived")
	b.CreatedTime = unquote("created_time")
	b.LastEditedTime = unquote("last_edited_time")
	b.CreatedBy = raw["created_by"]
	b.LastEditedBy = raw["last_edited_by"]
	b.Parent = raw["parent"]
	b.Payload = raw[b.Kind]
	return nil
}

// MarshalJSON writes only the fields that are set, so a sanitized block
// serializes to object, type and the kind payload and nothing else.
func (b ContentBlock) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"object": "block",
		"type":   b.Kind,
	}
	payload := b.Payload
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}
	m[b.Kind] = payload
	if b.ID != "" {
		m["id"] = b.ID
	}
	if b.CreatedTime != "" {
		m["created_time"] = b.CreatedTime
	}
	if b.LastEditedTime != "" {
		m["last_edited_time"] = b.LastEditedTime
	}
	if b.CreatedBy != nil {
		m["created_by"] = b.CreatedBy
	}
	if b.LastEditedBy != nil {
		m["last_edited_by"] = b.LastEditedBy
	}
	if b.Parent != nil {
		m["parent"] = b.Parent
	}
	if b.HasChildren {
		m["has_children"] = true
	}
	if b.Archived {
		m["archived"] = true
	}
	return json.Marshal(m)
}

// Filter is a single-field equality predicate.
type Filter struct {
	Property string
	Status   string
	Number   *float64
}

// StatusEquals matches documents whose status field equals value.
func StatusEquals(property, value string) Filter {
	return Filter{Property: property, Status: value}
}

// NumberEquals matches documents whose number field equals n.
func NumberEquals(property string, n float64) Filter {
	return Filter{Property: property, Number: &n}
}

func (f Filter) MarshalJSON() ([]byte, error) {
	m := map[string]any{"property": f.Property}
	if f.Number != nil {
		m["number"] = map[string]any{"equals": *f.Number}
	} else {
		m["status"] = map[string]any{"equals": f.Status}
	}
	return json.Marshal(m)
}
