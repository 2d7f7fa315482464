package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouterTargets(t *testing.T) {
	r := NewRouter()

	tests := []struct {
		name     string
		category Category
		tier     Tier
		want     []CollectionKey
	}{
		{
			name:     "video tier1 cascades to all three",
			category: CategoryVideoProduction,
			tier:     Tier1,
			want:     []CollectionKey{KeyVideoTier1, KeyVideoTier2, KeyVideoTier3},
		},
		{
			name:     "video tier2 cascades to tier2 and tier3",
			category: CategoryVideoProduction,
			tier:     Tier2,
			want:     []CollectionKey{KeyVideoTier2, KeyVideoTier3},
		},
		{
			name:     "video tier3 reaches only tier3",
			category: CategoryVideoProduction,
			tier:     Tier3,
			want:     []CollectionKey{KeyVideoTier3},
		},
		{
			name:     "design tier1 cascades to all three",
			category: CategoryDesignProduction,
			tier:     Tier1,
			want:     []CollectionKey{KeyDesignTier1, KeyDesignTier2, KeyDesignTier3},
		},
		{
			name:     "design tier2 cascades to tier2 and tier3",
			category: CategoryDesignProduction,
			tier:     Tier2,
			want:     []CollectionKey{KeyDesignTier2, KeyDesignTier3},
		},
		{
			name:     "design tier3 reaches only tier3",
			category: CategoryDesignProduction,
			tier:     Tier3,
			want:     []CollectionKey{KeyDesignTier3},
		},
		{
			name:     "unknown category yields no targets",
			category: Category("audio-production"),
			tier:     Tier1,
			want:     nil,
		},
		{
			name:     "empty category yields no targets",
			category: Category(""),
			tier:     Tier2,
			want:     nil,
		},
		{
			name:     "unknown tier yields no targets",
			category: CategoryVideoProduction,
			tier:     Tier("Tier4"),
			want:     nil,
		},
		{
			name:     "empty tier yields no targets",
			category: CategoryDesignProduction,
			tier:     Tier(""),
			want:     nil,
		},
		{
			name:     "unknown category and tier yield no targets",
			category: Category("music-production"),
			tier:     Tier("Premium"),
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Targets(tt.category, tt.tier))
		})
	}
}

func TestAllCollectionKeysCoversEveryCatalog(t *testing.T) {
	keys := AllCollectionKeys()
	assert.Len(t, keys, 6)

	seen := make(map[CollectionKey]bool)
	for _, k := range keys {
		seen[k] = true
	}
	r := NewRouter()
	for _, category := range []Category{CategoryVideoProduction, CategoryDesignProduction} {
		for _, target := range r.Targets(category, Tier1) {
			assert.True(t, seen[target], "routing target %s missing from fan-out set", target)
		}
	}
}
