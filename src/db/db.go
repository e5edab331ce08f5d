package db

import (
	"bookit/src/config"
	"log"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
)

// GetDb returns the shared connection pool, opening it exactly once even
// under concurrent first use.
func GetDb() *gorm.DB {
	once.Do(func() {
		if db != nil {
			return
		}
		_db, err := gorm.Open(postgres.Open(config.GetDSN()))
		if err != nil {
			log.Printf("Error connecting to database: %s\n", err.Error())
			panic(err)
		}
		sqlDB, err := _db.DB()
		if err != nil {
			log.Fatalf("Error establishing connection to database: %s\n", err.Error())
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)

		db = _db
	})
	return db
}

// NewDB swaps the shared handle, used by tests to inject a mock connection.
func NewDB(newdb *gorm.DB) {
	once.Do(func() {})
	db = newdb
}
