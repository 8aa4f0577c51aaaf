package main

import (
	"log"

	"verve-storefront-io/api/internal/common"
	"verve-storefront-io/api/internal/routers"
	"verve-storefront-io/api/pkg/util"
)

func main() {
	router := routers.InitRoute()

	addr := util.LoadEnvFor("LISTEN_ADDR")
	if common.IsEmptyString(addr) {
		addr = "localhost:8080"
	}

	if err := router.Run(addr); err != nil {
		log.Fatal(err)
	}
}
