package db

import (
	"accountd/be/biz/db/mysql"
	"accountd/be/biz/db/redis"
)

func Init() {
	mysql.Init()
	redis.Init()
}
