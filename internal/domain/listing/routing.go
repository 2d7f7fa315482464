package listing

// Router resolves which public catalogs a master record fans out to.
// Lower tiers are more exclusive feeds that also appear in the broader
// ones, so the fan-out is a monotone cascade, not a partition.
type Router struct {
	prefixes map[Category]string
}

func NewRouter() *Router {
	return &Router{
		prefixes: map[Category]string{
			CategoryVideoProduction:  "video",
			CategoryDesignProduction: "design",
		},
	}
}

// Targets returns the ordered set of public catalogs for a (category, tier)
// pair. An unknown category or tier yields no targets; the caller treats
// that as out-of-scope, not an error.
func (r *Router) Targets(category Category, tier Tier) []CollectionKey {
	prefix, ok := r.prefixes[category]
	if !ok {
		return nil
	}
	switch tier {
	case Tier1:
		return []CollectionKey{
			CollectionKey(prefix + ".tier1"),
			CollectionKey(prefix + ".tier2"),
			CollectionKey(prefix + ".tier3"),
		}
	case Tier2:
		return []CollectionKey{
			CollectionKey(prefix + ".tier2"),
			CollectionKey(prefix + ".tier3"),
		}
	case Tier3:
		return []CollectionKey{
			CollectionKey(prefix + ".tier3"),
		}
	default:
		return nil
	}
}
