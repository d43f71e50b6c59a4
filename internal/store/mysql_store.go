package store

import (
	"context"
	"fmt"
	"time"

	"github.com/evyataryagoni/aqi2cigarette/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// BreakpointModel is the GORM model for the aqi_breakpoints table
type BreakpointModel struct {
	ID       uint    `gorm:"column:id;primaryKey"`
	AQILow   float64 `gorm:"column:aqi_low"`
	AQIHigh  float64 `gorm:"column:aqi_high"`
	PM25Low  float64 `gorm:"column:pm25_low"`
	PM25High float64 `gorm:"column:pm25_high"`
}

// TableName overrides GORM's pluralized default
func (BreakpointModel) TableName() string {
	return "aqi_breakpoints"
}

// MySQLStore implements Store using MySQL with GORM
type MySQLStore struct {
	db *gorm.DB
}

// NewMySQLStore connects to MySQL.
// dsn format: user:password@tcp(host:port)/dbname?parseTime=true
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL with GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// only read at startup, a couple of connections is plenty
	sqlDB.SetMaxOpenConns(2)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping MySQL database: %w", err)
	}

	return &MySQLStore{db: db}, nil
}

// LoadBreakpoints implements Store
func (s *MySQLStore) LoadBreakpoints(ctx context.Context) ([]models.Breakpoint, error) {
	var rows []BreakpointModel

	// SELECT * FROM aqi_breakpoints ORDER BY aqi_low
	if err := s.db.WithContext(ctx).Order("aqi_low").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoBreakpoints
	}

	bands := make([]models.Breakpoint, 0, len(rows))
	for _, row := range rows {
		bands = append(bands, models.Breakpoint{
			AQILow:   row.AQILow,
			AQIHigh:  row.AQIHigh,
			PM25Low:  row.PM25Low,
			PM25High: row.PM25High,
		})
	}
	return bands, nil
}

// Close closes the database connection
func (s *MySQLStore) Close() error {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
