package main

import (
	"log"
	"net/http"
	"time"

	"github.com/agneltms/procurement-service/internal/db"
	"github.com/agneltms/procurement-service/internal/handlers"
	"github.com/agneltms/procurement-service/internal/repository"
	"github.com/agneltms/procurement-service/internal/router"
	"github.com/agneltms/procurement-service/internal/router/config"
	"github.com/agneltms/procurement-service/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot create logger: %v", err)
	}
	defer logger.Sync()

	runDBMigration(cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		logger.Fatal("error initializing database", zap.Error(err))
	}
	defer dbPool.Close()

	tenderRepo := repository.NewPostgresTenderRepository(dbPool)
	proposalRepo := repository.NewPostgresProposalRepository(dbPool)
	collaboratorRepo := repository.NewPostgresCollaboratorRepository(dbPool)
	commentRepo := repository.NewPostgresCommentRepository(dbPool)
	uploadedTenderRepo := repository.NewPostgresUploadedTenderRepository(dbPool)
	evaluationRepo := repository.NewPostgresEvaluationRepository(dbPool)

	resolver := services.NewPermissionResolver(collaboratorRepo)

	tenderService := services.NewTenderService(tenderRepo)
	proposalService := services.NewProposalService(proposalRepo, tenderRepo)
	collaborationService := services.NewCollaborationService(collaboratorRepo, commentRepo, proposalRepo, uploadedTenderRepo, resolver)
	evaluationService := services.NewEvaluationService(evaluationRepo, tenderRepo, proposalRepo)

	tenderHandler := handlers.NewTenderHandler(tenderService, logger, 5*time.Second)
	proposalHandler := handlers.NewProposalHandler(proposalService, logger, 5*time.Second)
	collaborationHandler := handlers.NewCollaborationHandler(collaborationService, logger, 5*time.Second)
	evaluationHandler := handlers.NewEvaluationHandler(evaluationService, logger, 5*time.Second)

	routes := router.InitRoutes(tenderHandler, proposalHandler, collaborationHandler, evaluationHandler)

	logger.Info("server is listening", zap.String("address", cfg.ServerAddress))
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", err)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up:", err)
	}
	log.Println("db migrated successfully")
}
