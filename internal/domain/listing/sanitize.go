package listing

import (
	"encoding/json"

	"jobmirror/internal/store"
)

// FilterCopyable drops blocks that cannot be duplicated by value: embedded
// sub-databases and child pages are references to other documents, not
// content.
func FilterCopyable(blocks []store.ContentBlock) []store.ContentBlock {
	out := make([]store.ContentBlock, 0, len(blocks))
	for _, b := range blocks {
		if b.Kind == "child_page" || b.Kind == "child_database" {
			continue
		}
		out = append(out, b)
	}
	return out
}

// SanitizeBlocks strips server-assigned attributes (identifier, timestamps,
// authorship, parent linkage, has-children, archived flag) from each block
// so the content can be resubmitted under a new parent. The kind tag and
// kind-specific payload survive unchanged.
func SanitizeBlocks(blocks []store.ContentBlock) []store.ContentBlock {
	out := make([]store.ContentBlock, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, sanitizeBlock(b))
	}
	return out
}

func sanitizeBlock(b store.ContentBlock) store.ContentBlock {
	payload := b.Payload
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}
	return store.ContentBlock{
		Kind:    b.Kind,
		Payload: payload,
	}
}
