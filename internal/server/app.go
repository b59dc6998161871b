package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/sakif/qa-backend/internal/cascade"
	"github.com/sakif/qa-backend/internal/config"
	"github.com/sakif/qa-backend/internal/events"
	"github.com/sakif/qa-backend/internal/repository/sqldb"
	"github.com/sakif/qa-backend/internal/resolver"
	"github.com/sakif/qa-backend/internal/service"
)

// App owns every long-lived dependency. The HTTP server and the CLI
// subcommands both build one and call the same services.
type App struct {
	DB        *sqldb.DB
	Events    events.Publisher
	Users     *service.UserService
	Questions *service.QuestionService
	Answers   *service.AnswerService
	Comments  *service.CommentService
}

// NewApp opens the database, connects the event publisher and wires the
// services. The caller must Close the returned App.
func NewApp(ctx context.Context, cfg config.AppConfig, logger *zap.Logger) (*App, error) {
	if cfg.DB.Driver == config.DriverSQLite {
		if dir := filepath.Dir(cfg.DB.URL); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating data directory: %w", err)
			}
		}
	}

	db, err := sqldb.Open(ctx, sqldb.Dialect(cfg.DB.Driver), cfg.DB.URL, sqldb.Options{
		MaxOpenConns: cfg.DB.MaxOpenConns,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pub, err := events.Connect(cfg.NATSURL, logger.Named("events"))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting event publisher: %w", err)
	}

	engine := cascade.New(db, logger.Named("cascade"))
	parents := resolver.New(db)
	svcLog := logger.Named("service")

	return &App{
		DB:     db,
		Events: pub,
		Users:  service.NewUserService(db.Users(), engine, pub, svcLog),
		Questions: service.NewQuestionService(service.QuestionDeps{
			Questions: db.Questions(),
			Comments:  db.Comments(),
			Users:     db.Users(),
			Existence: db,
			Deleter:   engine,
			Events:    pub,
			Logger:    svcLog,
		}),
		Answers: service.NewAnswerService(service.AnswerDeps{
			Answers:   db.Answers(),
			Comments:  db.Comments(),
			Users:     db.Users(),
			Existence: db,
			Deleter:   engine,
			Events:    pub,
			Logger:    svcLog,
		}),
		Comments: service.NewCommentService(service.CommentDeps{
			Comments:  db.Comments(),
			Users:     db.Users(),
			Existence: db,
			Resolver:  parents,
			Deleter:   engine,
			Events:    pub,
			Logger:    svcLog,
		}),
	}, nil
}

// Close drains the publisher, then closes the database.
func (a *App) Close() error {
	a.Events.Close()
	return a.DB.Close()
}
