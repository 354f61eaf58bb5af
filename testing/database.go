// Package testing provides test utilities and database setup for testing the application
package testing

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/brandscope-io/brandscope/models"
	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDBConfig holds configuration for test database connections
type TestDBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	SSLMode  string
}

// GetTestDBConfig loads test database configuration from environment variables
func GetTestDBConfig() *TestDBConfig {
	config := &TestDBConfig{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     getEnvAsInt("TEST_DB_PORT", 5432),
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		SSLMode:  getEnv("TEST_DB_SSL_MODE", "disable"),
	}
	return config
}

// TestDB represents a test database instance
type TestDB struct {
	DB     *gorm.DB
	Name   string
	config *TestDBConfig
}

// SetupTestDB creates a new test database with a unique name and runs migrations
func SetupTestDB() (*TestDB, error) {
	config := GetTestDBConfig()

	// Generate unique database name using timestamp and random number
	dbName := fmt.Sprintf("brandscope_test_%d_%d", time.Now().Unix(), rand.Intn(10000))

	// Connect to PostgreSQL server (without specific database)
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.SSLMode)

	adminDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// Create test database
	err = adminDB.Exec(fmt.Sprintf("CREATE DATABASE %s", dbName)).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create test database %s: %w", dbName, err)
	}

	// Close admin connection
	sqlDB, _ := adminDB.DB()
	sqlDB.Close()

	// Connect to the new test database
	testDSN := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, dbName, config.SSLMode)

	testDB, err := gorm.Open(postgres.Open(testDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database %s: %w", dbName, err)
	}

	// Build the schema
	if err := runTestMigrations(testDB); err != nil {
		// Clean up on migration failure
		testDB.Exec("DROP DATABASE IF EXISTS " + dbName)
		return nil, fmt.Errorf("failed to run migrations on test database %s: %w", dbName, err)
	}

	return &TestDB{
		DB:     testDB,
		Name:   dbName,
		config: config,
	}, nil
}

// TeardownTestDB drops the test database and closes connections
func (tdb *TestDB) TeardownTestDB() error {
	if tdb.DB == nil {
		return nil
	}

	// Close test database connection
	sqlDB, err := tdb.DB.DB()
	if err == nil {
		sqlDB.Close()
	}

	// Connect to PostgreSQL server to drop the test database
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s sslmode=%s",
		tdb.config.Host, tdb.config.Port, tdb.config.User, tdb.config.Password, tdb.config.SSLMode)

	adminDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Printf("Warning: failed to connect to PostgreSQL for cleanup: %v", err)
		return err
	}
	defer func() {
		sqlDB, _ := adminDB.DB()
		sqlDB.Close()
	}()

	// Force disconnect all connections to the test database
	err = adminDB.Exec(fmt.Sprintf(
		"SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = '%s' AND pid <> pg_backend_pid()",
		tdb.Name)).Error
	if err != nil {
		log.Printf("Warning: failed to terminate connections to test database %s: %v", tdb.Name, err)
	}

	// Drop the test database
	err = adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %s", tdb.Name)).Error
	if err != nil {
		log.Printf("Warning: failed to drop test database %s: %v", tdb.Name, err)
		return err
	}

	return nil
}

// runTestMigrations builds the schema from the model definitions
func runTestMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.BrandInfo{},
		&models.ICPPersona{},
		&models.CitedDomain{},
		&models.ChatSample{},
		&models.RecommendationSession{},
		&models.RecommendationAction{},
		&models.RecommendationExample{},
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// CreateTestContext creates a context for testing
func CreateTestContext() context.Context {
	return context.Background()
}
