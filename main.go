package main

import (
	"context"
	"flag"
	"net/http"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/MixinNetwork/mixin/logger"
	"github.com/rentable/rental/api"
	"github.com/rentable/rental/market"
	"github.com/rentable/rental/metadata"
	"github.com/rentable/rental/store"
)

func main() {
	ctx := context.Background()

	bp := flag.String("d", "~/.rentable/data", "database directory path")
	cp := flag.String("c", "~/.rentable/config.toml", "configuration file path")
	flag.Parse()

	if strings.HasPrefix(*cp, "~/") {
		usr, _ := user.Current()
		*cp = filepath.Join(usr.HomeDir, (*cp)[2:])
	}
	conf, err := market.Setup(*cp)
	if err != nil {
		panic(err)
	}
	logger.SetLevel(conf.Node.LogLevel)

	if strings.HasPrefix(*bp, "~/") {
		usr, _ := user.Current()
		*bp = filepath.Join(usr.HomeDir, (*bp)[2:])
	}
	db, err := store.OpenBadger(ctx, *bp)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	mkt, err := market.BuildMarketplace(ctx, db, conf)
	if err != nil {
		panic(err)
	}
	registrar := metadata.NewRegistrar(db)
	mkt.SetMetadataService(registrar)
	if conf.Node.VerifyOwnership {
		mkt.SetTokenVerifier(registrar)
	}

	logger.Printf("marketplace listening on %s\n", conf.Node.Listen)
	err = http.ListenAndServe(conf.Node.Listen, api.NewRouter(mkt))
	if err != nil {
		panic(err)
	}
}
