package gormstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	pg "virtual-pet/internal/adapters/storage/postgres"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// petRow es el modelo de la tabla pets. Los tipos van explícitos para que
// AutoMigrate cree las mismas columnas que schemaSQL del adapter postgres.
type petRow struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Food      float64   `gorm:"type:double precision;not null"`
	Water     float64   `gorm:"type:double precision;not null"`
	Fun       float64   `gorm:"type:double precision;not null"`
	XP        float64   `gorm:"column:xp;type:double precision;not null"`
	Level     int       `gorm:"type:integer;not null"`
	LastDecay time.Time `gorm:"type:timestamptz;not null"`
}

func (petRow) TableName() string { return "pets" }

// OpenPostgres monta gorm sobre el pool pgx del adapter postgres.
// El *sql.DB devuelto es el que hay que cerrar; gorm no expone Close.
func OpenPostgres(dsn string) (*gorm.DB, *sql.DB, error) {
	sqlDB, err := pg.Open(dsn)
	if err != nil {
		return nil, nil, err
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("open gorm: %w", err)
	}
	return db, sqlDB, nil
}

// EnsureSchema corre AutoMigrate sobre pets. Se llama una vez al arrancar.
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&petRow{}); err != nil {
		return fmt.Errorf("automigrate pets: %w", err)
	}
	return nil
}
