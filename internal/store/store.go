package store

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store holds the gorm handle and hands out repositories.
type Store struct {
	db *gorm.DB
}

// Open connects to the configured database and runs auto-migration.
// driver is "postgres" or "sqlite"; dsn is the connection string or the
// sqlite file path.
func Open(driver, dsn string) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	default:
		return nil, fmt.Errorf("unknown db driver: %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(
		&User{},
		&Resume{},
		&GeneratedTest{},
		&TestResult{},
		&LLMRequest{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying gorm handle for raw queries.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) Users() UserRepo             { return &userRepo{db: s.db} }
func (s *Store) Resumes() ResumeRepo         { return &resumeRepo{db: s.db} }
func (s *Store) Tests() TestRepo             { return &testRepo{db: s.db} }
func (s *Store) Results() ResultRepo         { return &resultRepo{db: s.db} }
func (s *Store) LLMEvents() LLMEventRepo     { return &llmEventRepo{db: s.db} }
