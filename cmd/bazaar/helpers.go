package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/datafoundry/bazaar/internal/api"
	"github.com/datafoundry/bazaar/internal/auth"
	"github.com/datafoundry/bazaar/internal/config"
	"github.com/datafoundry/bazaar/internal/marketplace"
	"github.com/datafoundry/bazaar/internal/service"
	"github.com/datafoundry/bazaar/internal/storage"
)

// services bundles everything a command needs, wired either to the real
// marketplace API or to the built-in demo catalog.
type services struct {
	catalog   service.DatasetCatalog
	directory service.OrganizationDirectory
	profile   service.UserProfile
	session   *auth.Manager
	store     *storage.SQLiteStore
}

// initStore opens the local database with proper path expansion and runs
// migrations.
func initStore(ctx context.Context) (*storage.SQLiteStore, error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initServices wires the full service set. With no API base URL configured,
// everything runs against the in-memory demo catalog.
func initServices(ctx context.Context) (*services, error) {
	store, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	session := auth.NewManager(store, auth.NewDemoAuthenticator())
	if err := session.Rehydrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	svcs := &services{
		session: session,
		store:   store,
	}

	baseURL := viper.GetString("api.base_url")
	if baseURL == "" {
		demo := marketplace.NewFixtureCatalog()
		svcs.catalog = demo
		svcs.directory = demo
		svcs.profile = demo
		return svcs, nil
	}

	var opts []api.Option
	if timeout := viper.GetDuration("api.timeout"); timeout > 0 {
		opts = append(opts, api.WithTimeout(timeout))
	}

	client := api.NewClient(baseURL, opts...)
	if token := viper.GetString("api.token"); token != "" {
		client.SetAuthToken(token)
	}

	svcs.catalog = marketplace.NewCatalog(client)
	svcs.directory = marketplace.NewDirectory(client)
	svcs.profile = marketplace.NewProfile(client)
	return svcs, nil
}

// close releases the service set's resources.
func (s *services) close() {
	if s.store != nil {
		_ = s.store.Close()
	}
}
