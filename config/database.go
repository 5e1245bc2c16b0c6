package config

import (
	"SteamProfile/models/postgres"
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionString builds the DSN for the configured dialect unless one was given
func (d DatabaseConfig) ConnectionString() string {
	if d.DSN != "" {
		return d.DSN
	}
	switch d.Type {
	case "sqlserver":
		port := d.Port
		if port == "" {
			port = "1433"
		}
		u := &url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(d.User, d.Password),
			Host:     fmt.Sprintf("%s:%s", d.Host, port),
			RawQuery: url.Values{"database": {d.Name}}.Encode(),
		}
		return u.String()
	case "sqlite":
		return fmt.Sprintf("file:%s.db?_pragma=foreign_keys(1)", d.Name)
	default:
		port := d.Port
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
			url.QueryEscape(d.User), url.QueryEscape(d.Password), d.Host, port, d.Name)
	}
}

// ConnectGORM returns a GORM DB instance for the configured dialect
func ConnectGORM(cfg DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{TranslateError: true}
	if cfg.Verbose {
		gormConfig.Logger = logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Info,
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Warn)
	}

	dsn := cfg.ConnectionString()
	var dialector gorm.Dialector
	switch cfg.Type {
	case "sqlserver":
		dialector = sqlserver.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres", "":
		// NOTE: the pool is opened through lib/pq and handed to gorm
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("error opening PostgreSQL: %w", err)
		}
		dialector = pgdriver.New(pgdriver.Config{
			Conn:                 sqlDB,
			PreferSimpleProtocol: true,
		})
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", cfg.Type)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("error connecting to %s with GORM: %w", cfg.Type, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting underlying SQL DB: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	if cfg.Type == "sqlite" {
		// a single writer avoids SQLITE_BUSY on shared in-memory databases
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

// MigrateDatabase migrates every model and seeds the feature and achievement catalogs
func MigrateDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		&postgres.User{},
		&postgres.Session{},
		&postgres.PasswordResetCode{},
		&postgres.Friendship{},
		&postgres.FriendRequest{},
		&postgres.Wallet{},
		&postgres.Feature{},
		&postgres.FeatureUser{},
		&postgres.OwnedGame{},
		&postgres.Collection{},
		&postgres.CollectionGame{},
		&postgres.NewsPost{},
		&postgres.NewsComment{},
		&postgres.NewsRating{},
		&postgres.ForumPost{},
		&postgres.ForumComment{},
		&postgres.ForumPostVote{},
		&postgres.ForumCommentVote{},
		&postgres.Review{},
		&postgres.ReviewVote{},
		&postgres.Achievement{},
		&postgres.UserAchievement{},
	)
	if err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	return SeedCatalog(db)
}

// SeedCatalog inserts the default features and achievements that are missing
func SeedCatalog(db *gorm.DB) error {
	for _, feature := range postgres.DefaultFeatures() {
		f := feature
		if err := db.Where(postgres.Feature{Name: f.Name}).FirstOrCreate(&f).Error; err != nil {
			return fmt.Errorf("seeding feature %s: %w", f.Name, err)
		}
	}
	for _, achievement := range postgres.DefaultAchievements() {
		a := achievement
		if err := db.Where(postgres.Achievement{Code: a.Code}).FirstOrCreate(&a).Error; err != nil {
			return fmt.Errorf("seeding achievement %s: %w", a.Code, err)
		}
	}
	return nil
}
