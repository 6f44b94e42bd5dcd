package mysql

import (
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// New 建立 MySQL 连接并返回句柄。
// 句柄由 main 显式持有并注入各组件，不再挂在包级全局变量上。
func New(dsn string) (*sqlx.DB, error) {
	// "user:password@tcp(host:port)/dbname?parseTime=true"
	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(32)
	db.SetMaxIdleConns(16)
	return db, nil
}
