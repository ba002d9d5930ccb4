package db

import (
	"fmt"
	"log"
	"os"

	"toolshare/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Tool{}, &models.BorrowRequest{}); err != nil {
		return err
	}

	// 同一 (tool, borrower) 最多一条 pending 请求；历史记录不受限
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_pending_per_pair
	  ON %s (tool_id, borrower_id)
	  WHERE status = 'pending';
	`, models.RequestTable, models.RequestTable)).Error; err != nil {
		return err
	}

	// 通知计数扫描更快
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_borrower_status
	  ON %s (borrower_id, status)
	  WHERE borrower_notified = FALSE;
	`, models.RequestTable, models.RequestTable)).Error; err != nil {
		return err
	}

	return nil
}
