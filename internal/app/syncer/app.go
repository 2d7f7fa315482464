package syncer

import (
	"context"

	"golang.org/x/exp/slog"

	"jobmirror/internal/config"
	"jobmirror/internal/domain/listing"
	"jobmirror/internal/store"
)

// Store is the slice of the remote document store the orchestrators
// consume. Query and ListBlocks exhaust pagination before returning.
type Store interface {
	Query(ctx context.Context, collectionID string, filter store.Filter) ([]store.Document, error)
	Create(ctx context.Context, collectionID string, properties map[string]store.PropertyValue, children []store.ContentBlock) (*store.Document, error)
	Archive(ctx context.Context, documentID string) (*store.Document, error)
	ListBlocks(ctx context.Context, documentID string) ([]store.ContentBlock, error)
}

// App wires the store client, the routing table and the copy-list together
// for the two run modes. Built once per invocation, before any remote call.
type App struct {
	config     *config.Config
	log        *slog.Logger
	store      Store
	router     *listing.Router
	copyFields []string
}

func New(cfg *config.Config, log *slog.Logger) *App {
	return &App{
		config:     cfg,
		log:        log,
		store:      store.NewClient(cfg.StoreBaseURL, cfg.StoreToken, log),
		router:     listing.NewRouter(),
		copyFields: listing.DefaultCopyFields,
	}
}

type ctxKey struct{}

// NewContext returns a context carrying the app for command handlers.
func NewContext(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, ctxKey{}, app)
}

// FromContext extracts the app placed by NewContext, false when absent.
func FromContext(ctx context.Context) (*App, bool) {
	app, ok := ctx.Value(ctxKey{}).(*App)
	return app, ok
}

// Syncer returns the forward-sync orchestrator.
func (a *App) Syncer() *SyncService {
	return &SyncService{
		app: a,
		log: a.log.With("component", "sync_service"),
	}
}

// Cleaner returns the retract orchestrator.
func (a *App) Cleaner() *CleanupService {
	return &CleanupService{
		app: a,
		log: a.log.With("component", "cleanup_service"),
	}
}
