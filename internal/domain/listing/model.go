package listing

import (
	"strings"

	"jobmirror/internal/store"
)

// Category of a job listing. The set is fixed by the catalog schema.
type Category string

const (
	CategoryVideoProduction  Category = "video-production"
	CategoryDesignProduction Category = "design-production"
)

// Tier is the ordinal exclusivity classification. Tier1 is the most
// exclusive, Tier3 the broadest.
type Tier string

const (
	Tier1 Tier = "Tier1"
	Tier2 Tier = "Tier2"
	Tier3 Tier = "Tier3"
)

// Status of a listing in the master catalog.
type Status string

const (
	StatusOpen   Status = "Open"
	StatusClosed Status = "Closed"
)

// CollectionKey names one of the six public catalogs.
type CollectionKey string

const (
	KeyVideoTier1  CollectionKey = "video.tier1"
	KeyVideoTier2  CollectionKey = "video.tier2"
	KeyVideoTier3  CollectionKey = "video.tier3"
	KeyDesignTier1 CollectionKey = "design.tier1"
	KeyDesignTier2 CollectionKey = "design.tier2"
	KeyDesignTier3 CollectionKey = "design.tier3"
)

// AllCollectionKeys returns every public catalog key in a fixed order.
// Cleanup fans out over all of them regardless of routing.
func AllCollectionKeys() []CollectionKey {
	return []CollectionKey{
		KeyVideoTier1, KeyVideoTier2, KeyVideoTier3,
		KeyDesignTier1, KeyDesignTier2, KeyDesignTier3,
	}
}

// Property names on the master schema.
const (
	PropTitle    = "Name"
	PropContent  = "Description"
	PropMasterID = "ID"
	PropCategory = "Category"
	PropTier     = "Tier"
	PropStatus   = "Status"

	// PropBackRef is written on every public record and is the sole
	// correlation key back to the master record.
	PropBackRef = "masterId"
)

// MasterRecord wraps a document from the master collection with typed
// accessors for the fields the replication protocol depends on.
type MasterRecord struct {
	store.Document
}

// MasterID returns the store-assigned unique identifier, false when the
// field is missing or empty.
func (r MasterRecord) MasterID() (int, bool) {
	pv, ok := r.Properties[PropMasterID]
	if !ok || pv.Kind != store.KindUniqueID || pv.UniqueID == nil || pv.UniqueID.Number == nil {
		return 0, false
	}
	return *pv.UniqueID.Number, true
}

// Category returns the listing category, false when no selection is set.
func (r MasterRecord) Category() (Category, bool) {
	name, ok := r.selection(PropCategory)
	if !ok {
		return "", false
	}
	return Category(name), true
}

// Tier returns the listing tier, false when no selection is set.
func (r MasterRecord) Tier() (Tier, bool) {
	name, ok := r.selection(PropTier)
	if !ok {
		return "", false
	}
	return Tier(name), true
}

// Status returns the lifecycle status, empty when unset.
func (r MasterRecord) Status() Status {
	pv, ok := r.Properties[PropStatus]
	if !ok || pv.Status == nil {
		return ""
	}
	return Status(pv.Status.Name)
}

func (r MasterRecord) selection(property string) (string, bool) {
	pv, ok := r.Properties[property]
	if !ok || pv.Select == nil || pv.Select.Name == "" {
		return "", false
	}
	return pv.Select.Name, true
}

// Title returns the title spans, possibly empty.
func (r MasterRecord) Title() []store.RichText {
	pv, ok := r.Properties[PropTitle]
	if !ok {
		return nil
	}
	return pv.Title
}

// TitleText flattens the title spans for log context.
func (r MasterRecord) TitleText() string {
	var b strings.Builder
	for _, span := range r.Title() {
		b.WriteString(span.PlainText)
	}
	return b.String()
}
