package mysql

import (
	"fmt"
	"time"

	"accountd/be/biz/config"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbConn *gorm.DB

// Init opens the pooled connection shared by every repository. A failure here
// is a startup failure, never a per-request one.
func Init() {
	conf := config.GetMySQLConf()
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.Username, conf.Password, conf.IP, conf.Port, conf.DBName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		panic(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(defaultInt(conf.MaxOpenConns, 64))
	sqlDB.SetMaxIdleConns(defaultInt(conf.MaxIdleConns, 16))
	sqlDB.SetConnMaxLifetime(time.Duration(defaultInt(conf.ConnMaxLifetimeSec, 3600)) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		panic(err)
	}

	hlog.Infof("mysql connected: %s:%d/%s", conf.IP, conf.Port, conf.DBName)
	dbConn = db
}

func GetDbConn() *gorm.DB {
	return dbConn
}

func defaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
