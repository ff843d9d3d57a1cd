package configs

import (
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DSN builds the connection string for the configured driver.
func (e ENV) DSN() string {
	if e.DBDriver == "postgres" {
		return fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			e.DBHost,
			e.DBUser,
			e.DBPassword,
			e.DBName,
			e.DBPort,
			e.DBSSLMode,
		)
	}

	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
		e.DBUser,
		e.DBPassword,
		e.DBHost,
		e.DBPort,
		e.DBName,
	)
}

func dialector(env ENV) (gorm.Dialector, error) {
	switch env.DBDriver {
	case "mysql":
		return mysql.Open(env.DSN()), nil
	case "postgres":
		return postgres.Open(env.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", env.DBDriver)
	}
}

func OpenConnection() (*gorm.DB, error) {

	dial, err := dialector(LoadENV)
	if err != nil {
		return nil, err
	}

	maxRetries := 10
	retryDelay := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		log.Printf("Attempting to connect to %s database (Attempt %d/%d) at %s:%s", LoadENV.DBDriver, i+1, maxRetries, LoadENV.DBHost, LoadENV.DBPort)
		db, err := gorm.Open(dial, &gorm.Config{})
		if err == nil {

			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					log.Println("Database connection successful")
					return db, nil
				}
			}

			log.Printf("Failed to ping database: %v. Retrying in %v...", pingErr, retryDelay)
		} else {
			log.Printf("Failed to open GORM connection: %v. Retrying in %v...", err, retryDelay)
		}

		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect to the %s database after %d retries", LoadENV.DBDriver, maxRetries)
}
