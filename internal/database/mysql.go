package database

import (
	"fmt"
	"time"

	driver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Lio2412/recipe_go_server/config"
	"github.com/Lio2412/recipe_go_server/internal/model"
)

// NewMySQL 建立 MySQL 连接并执行自动迁移
func NewMySQL(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsnCfg := driver.NewConfig()
	dsnCfg.User = cfg.Username
	dsnCfg.Passwd = cfg.Password
	dsnCfg.Net = "tcp"
	dsnCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	dsnCfg.DBName = cfg.Database
	dsnCfg.ParseTime = true
	dsnCfg.Loc = time.Local
	dsnCfg.Params = map[string]string{"charset": "utf8mb4"}

	db, err := gorm.Open(mysql.Open(dsnCfg.FormatDSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Recipe{},
		&model.Article{},
		&model.Comment{},
		&model.Media{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
