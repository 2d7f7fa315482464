package listing

import (
	"jobmirror/internal/store"
)

// DefaultCopyFields is the declarative copy-list for the job-listing
// schema: every master field replicated onto public records. Name and
// Description appear here for completeness but take the dedicated title
// and content paths.
var DefaultCopyFields = []string{
	"Name",
	"Description",
	"Category",
	"Tier",
	"Rate",
	"Budget",
	"Deadline",
	"Posted",
	"Apply URL",
	"Contact Email",
	"Contact Phone",
	"Remote",
	"Skills",
}

// MapProperties converts a master document's fields into a field set
// writable against a public collection.
//
// Fields not listed, or listed but absent on the source, are omitted — with
// one deliberate exception: a select field that is present with no
// selection emits an explicit null marker so the value is cleared on
// re-creation. The title and the masterId back-reference are always
// emitted.
func MapProperties(doc store.Document, copyFields []string) map[string]store.PropertyValue {
	out := make(map[string]store.PropertyValue, len(copyFields)+2)

	for _, name := range copyFields {
		// Description travels as page content, Name is handled below.
		if name == PropContent || name == PropTitle {
			continue
		}
		pv, ok := doc.Properties[name]
		if !ok {
			continue
		}
		out[name] = mapValue(pv)
	}

	rec := MasterRecord{Document: doc}
	out[PropTitle] = store.PropertyValue{
		Kind:  store.KindTitle,
		Title: rec.Title(),
	}
	if id, ok := rec.MasterID(); ok {
		n := float64(id)
		out[PropBackRef] = store.PropertyValue{
			Kind:   store.KindNumber,
			Number: &n,
		}
	}
	return out
}

// mapValue rebuilds a property value in its target-writable shape,
// dropping server-side option metadata (ids, colors) along the way.
func mapValue(pv store.PropertyValue) store.PropertyValue {
	switch pv.Kind {
	case store.KindRichText:
		return store.PropertyValue{Kind: store.KindRichText, RichText: pv.RichText}
	case store.KindNumber:
		return store.PropertyValue{Kind: store.KindNumber, Number: pv.Number}
	case store.KindSelect:
		mapped := store.PropertyValue{Kind: store.KindSelect}
		if pv.Select != nil {
			mapped.Select = &store.SelectOption{Name: pv.Select.Name}
		}
		return mapped
	case store.KindMultiSelect:
		opts := make([]store.SelectOption, 0, len(pv.MultiSelect))
		for _, o := range pv.MultiSelect {
			opts = append(opts, store.SelectOption{Name: o.Name})
		}
		return store.PropertyValue{Kind: store.KindMultiSelect, MultiSelect: opts}
	case store.KindDate:
		return store.PropertyValue{Kind: store.KindDate, Date: pv.Date}
	case store.KindURL:
		return store.PropertyValue{Kind: store.KindURL, URL: pv.URL}
	case store.KindEmail:
		return store.PropertyValue{Kind: store.KindEmail, Email: pv.Email}
	case store.KindPhone:
		return store.PropertyValue{Kind: store.KindPhone, Phone: pv.Phone}
	case store.KindCheckbox:
		return store.PropertyValue{Kind: store.KindCheckbox, Checkbox: pv.Checkbox}
	default:
		// Unknown kinds degrade to whatever text spans they carry.
		return store.PropertyValue{Kind: store.KindRichText, RichText: pv.RichText}
	}
}
