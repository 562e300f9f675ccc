// dev-token mints an identity token for local development against the API.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/itchan-dev/boards/shared/config"
	"github.com/itchan-dev/boards/shared/domain"
	"github.com/itchan-dev/boards/shared/jwt"
)

func main() {
	var (
		configFolder string
		id           int64
		name         string
		admin        bool
		ttl          time.Duration
	)
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Int64Var(&id, "uid", 1, "user id")
	flag.StringVar(&name, "name", "dev", "display name")
	flag.BoolVar(&admin, "admin", false, "grant admin rights")
	flag.DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to jwt_ttl from config)")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	if ttl <= 0 {
		ttl = cfg.JwtTTL()
	}

	token, err := jwt.New(cfg.JwtKey(), ttl).NewToken(domain.User{Id: id, Name: name, Admin: admin})
	if err != nil {
		log.Fatalf("failed to mint token: %v", err)
	}

	fmt.Println(token)
	fmt.Println()
	fmt.Printf("curl -H 'Authorization: Bearer %s' http://localhost%s/v1/boards\n", token, cfg.Public.HttpAddr)
}
