package main

import (
	"flag"

	be "accountd/be"
	"accountd/be/biz/config"
	"accountd/be/biz/db"
	"accountd/be/biz/util/logger"
)

func main() {
	confPath := flag.String("conf", "conf/deploy.yml", "path of the yaml configuration")
	flag.Parse()

	config.Init(*confPath)
	logger.Init()
	db.Init()

	be.NewEngine().Spin()
}
