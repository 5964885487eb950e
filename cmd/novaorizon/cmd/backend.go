package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/catalog"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/collection"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/core/config"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/core/db"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/store/mongostore"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/store/sqlstore"
)

// backend is a store serving both the catalog and collection services.
type backend interface {
	catalog.Store
	collection.Store
}

// openBackend opens the store selected by the database URL scheme. The
// returned close function releases the connection.
func openBackend(ctx context.Context, dbCfg config.DatabaseConfig, logger *zap.Logger) (backend, func(), error) {
	if dbCfg.IsDocumentStore() {
		store, err := mongostore.Connect(ctx, dbCfg.URL, dbCfg.Name, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(context.Background())
			return nil, nil, fmt.Errorf("failed to ensure indexes: %w", err)
		}
		return store, func() { _ = store.Close(context.Background()) }, nil
	}

	database, err := db.Open(dbCfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	statuses, err := db.MigrateStatus(database)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to check migrations: %w", err)
	}
	for _, s := range statuses {
		if !s.Applied {
			database.Close()
			return nil, nil, fmt.Errorf("migration %s not applied - run 'novaorizon migrate up' first", s.ID)
		}
	}
	queries, err := db.LoadQueries(database)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to load queries: %w", err)
	}
	return sqlstore.New(queries, logger), func() { database.Close() }, nil
}
