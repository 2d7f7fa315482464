package syncer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobmirror/internal/domain/listing"
	"jobmirror/internal/store"
)

func closedFilter() any {
	return mock.MatchedBy(func(f store.Filter) bool {
		return f.Property == listing.PropStatus && f.Status == string(listing.StatusClosed)
	})
}

func TestCleanupRunNoClosedListings(t *testing.T) {
	ms := new(MockStore)
	ms.On("Query", mock.Anything, "coll-master", closedFilter()).Return([]store.Document{}, nil)

	result, err := testApp(ms).Cleaner().Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, result.Archived)
	assert.Equal(t, 0, result.Errors)
	ms.AssertNotCalled(t, "Archive", mock.Anything, mock.Anything)
	ms.AssertExpectations(t)
}

func TestCleanupRunSearchesEveryCatalog(t *testing.T) {
	ms := new(MockStore)
	doc := openListing(7, "video-production", "Tier2")
	ms.On("Query", mock.Anything, "coll-master", closedFilter()).Return([]store.Document{doc}, nil)

	// Copies sit in two catalogs; the other four come back empty. One of
	// the hits is outside the listing's routed set, simulating a category
	// change after replication.
	for _, key := range listing.AllCollectionKeys() {
		matches := []store.Document{}
		switch key {
		case listing.KeyVideoTier2:
			matches = []store.Document{{ID: "copy-v2"}}
		case listing.KeyDesignTier3:
			matches = []store.Document{{ID: "copy-d3"}}
		}
		ms.On("Query", mock.Anything, "coll-"+string(key), backRefEquals(7)).Return(matches, nil)
	}
	ms.On("Archive", mock.Anything, "copy-v2").Return(&store.Document{ID: "copy-v2", Archived: true}, nil)
	ms.On("Archive", mock.Anything, "copy-d3").Return(&store.Document{ID: "copy-d3", Archived: true}, nil)

	result, err := testApp(ms).Cleaner().Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.Archived)
	assert.Equal(t, 0, result.Errors)
	ms.AssertNumberOfCalls(t, "Query", 7)
	ms.AssertNumberOfCalls(t, "Archive", 2)
	ms.AssertExpectations(t)
}

func TestCleanupRunArchivesDuplicates(t *testing.T) {
	ms := new(MockStore)
	doc := openListing(7, "video-production", "Tier3")
	ms.On("Query", mock.Anything, "coll-master", closedFilter()).Return([]store.Document{doc}, nil)

	for _, key := range listing.AllCollectionKeys() {
		matches := []store.Document{}
		if key == listing.KeyVideoTier3 {
			matches = []store.Document{{ID: "copy-a"}, {ID: "copy-b"}}
		}
		ms.On("Query", mock.Anything, "coll-"+string(key), backRefEquals(7)).Return(matches, nil)
	}
	ms.On("Archive", mock.Anything, "copy-a").Return(&store.Document{ID: "copy-a", Archived: true}, nil)
	ms.On("Archive", mock.Anything, "copy-b").Return(&store.Document{ID: "copy-b", Archived: true}, nil)

	result, err := testApp(ms).Cleaner().Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.Archived, "every match is archived, not just the first")
	ms.AssertExpectations(t)
}

func TestCleanupRunMissingMasterID(t *testing.T) {
	ms := new(MockStore)
	doc := openListing(7, "video-production", "Tier1")
	delete(doc.Properties, listing.PropMasterID)
	ms.On("Query", mock.Anything, "coll-master", closedFilter()).Return([]store.Document{doc}, nil)

	result, err := testApp(ms).Cleaner().Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, 0, result.Archived)
	// no correlation key, no catalog search
	ms.AssertNumberOfCalls(t, "Query", 1)
	ms.AssertExpectations(t)
}

func TestCleanupRunSearchFailureIsolated(t *testing.T) {
	ms := new(MockStore)
	doc := openListing(7, "design-production", "Tier1")
	ms.On("Query", mock.Anything, "coll-master", closedFilter()).Return([]store.Document{doc}, nil)

	for _, key := range listing.AllCollectionKeys() {
		if key == listing.KeyVideoTier1 {
			ms.On("Query", mock.Anything, "coll-"+string(key), backRefEquals(7)).
				Return(nil, errors.New("store unavailable"))
			continue
		}
		matches := []store.Document{}
		if key == listing.KeyDesignTier1 {
			matches = []store.Document{{ID: "copy-d1"}}
		}
		ms.On("Query", mock.Anything, "coll-"+string(key), backRefEquals(7)).Return(matches, nil)
	}
	ms.On("Archive", mock.Anything, "copy-d1").Return(&store.Document{ID: "copy-d1", Archived: true}, nil)

	result, err := testApp(ms).Cleaner().Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Archived, "one broken catalog must not stop the sweep")
	assert.Equal(t, 1, result.Errors)
	ms.AssertExpectations(t)
}

func TestCleanupRunArchiveFailureIsolated(t *testing.T) {
	ms := new(MockStore)
	doc := openListing(7, "video-production", "Tier2")
	ms.On("Query", mock.Anything, "coll-master", closedFilter()).Return([]store.Document{doc}, nil)

	for _, key := range listing.AllCollectionKeys() {
		matches := []store.Document{}
		switch key {
		case listing.KeyVideoTier2:
			matches = []store.Document{{ID: "copy-v2"}}
		case listing.KeyVideoTier3:
			matches = []store.Document{{ID: "copy-v3"}}
		}
		ms.On("Query", mock.Anything, "coll-"+string(key), backRefEquals(7)).Return(matches, nil)
	}
	ms.On("Archive", mock.Anything, "copy-v2").Return(nil, errors.New("conflict"))
	ms.On("Archive", mock.Anything, "copy-v3").Return(&store.Document{ID: "copy-v3", Archived: true}, nil)

	result, err := testApp(ms).Cleaner().Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Archived)
	assert.Equal(t, 1, result.Errors)
	ms.AssertExpectations(t)
}

func TestCleanupRunMissingTargetCollectionIsolated(t *testing.T) {
	ms := new(MockStore)
	doc := openListing(7, "video-production", "Tier1")
	ms.On("Query", mock.Anything, "coll-master", closedFilter()).Return([]store.Document{doc}, nil)

	for _, key := range listing.AllCollectionKeys() {
		if key == listing.KeyVideoTier1 {
			continue
		}
		matches := []store.Document{}
		if key == listing.KeyVideoTier2 {
			matches = []store.Document{{ID: "copy-v2"}}
		}
		ms.On("Query", mock.Anything, "coll-"+string(key), backRefEquals(7)).Return(matches, nil)
	}
	ms.On("Archive", mock.Anything, "copy-v2").Return(&store.Document{ID: "copy-v2", Archived: true}, nil)

	app := testApp(ms)
	delete(app.config.PublicCollections, listing.KeyVideoTier1)

	result, err := app.Cleaner().Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Archived, "the remaining catalogs are still swept")
	assert.Equal(t, 1, result.Errors, "a misconfigured catalog is tallied, not searched")
	ms.AssertExpectations(t)
}

func TestCleanupRunFatalWhenMasterListingFails(t *testing.T) {
	ms := new(MockStore)
	ms.On("Query", mock.Anything, "coll-master", closedFilter()).
		Return(nil, errors.New("store unavailable"))

	result, err := testApp(ms).Cleaner().Run(context.Background())

	require.Error(t, err)
	assert.Nil(t, result)
	ms.AssertExpectations(t)
}
