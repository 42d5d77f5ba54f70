//go:build wireinject
// +build wireinject

package di

import (
	"SigBoard/pkg/config"
	"SigBoard/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideRedisClient,
		ProvideClickHouseClient,
		ProvideKafkaConsumer,

		// Repositories
		ProvideRecordStore,
		ProvideArchive,

		// Use cases
		ProvideReader,
		ProvideSnapshotService,
		ProvideIngestHandler,

		// HTTP surface
		ProvideWSHub,
		ProvideBoardHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
