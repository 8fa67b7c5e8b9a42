package main

import (
	"log"
	"net/http"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/migrate"
	"github.com/legit-games/oauth2-server/resource"
	"github.com/legit-games/oauth2-server/seed"
	"github.com/legit-games/oauth2-server/server"
	"github.com/legit-games/oauth2-server/store"
)

func main() {
	appCfg := server.GetConfig()

	if err := migrate.RunFromEnv(); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}
	if err := seed.RunFromEnv(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	var (
		factory oauth2.ModelManagerFactory
		users   oauth2.UserProvider
	)
	if dsn := appCfg.DBDSN(); dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		factory = store.NewDBFactory(db)
		users = store.NewDBUserProvider(db)
		log.Printf("Using Postgres model managers")
	} else {
		mem := store.NewMemoryFactory()
		factory = mem
		users = store.NewMemoryUserProvider(mem)
		log.Printf("No database configured, using in-memory model managers")
	}

	// Access tokens can live in a TTL-aware store: Valkey when shared
	// across instances, BuntDB when embedded.
	switch {
	case appCfg.Debug.ValkeyAddr != "":
		cache, err := store.NewValkeyAccessTokenStore(appCfg.Debug.ValkeyAddr, "oauth2:")
		if err != nil {
			log.Fatalf("open valkey token store: %v", err)
		}
		factory = store.NewCacheFactory(factory, cache)
		log.Printf("Access tokens on Valkey at %s", appCfg.Debug.ValkeyAddr)
	case appCfg.Debug.CachePath != "":
		cache, err := store.NewBuntAccessTokenStore(appCfg.Debug.CachePath)
		if err != nil {
			log.Fatalf("open buntdb token store: %v", err)
		}
		factory = store.NewCacheFactory(factory, cache)
		log.Printf("Access tokens on BuntDB at %s", appCfg.Debug.CachePath)
	}

	cfg := server.NewConfig()
	if appCfg.Token.Type == oauth2.MAC.String() {
		cfg.TokenType = oauth2.MAC
	}
	cfg.RotateRefreshTokens = appCfg.Token.Rotate

	srv := server.NewDefaultServer(cfg, factory, users)
	srv.UserAuthorizationHandler = func(w http.ResponseWriter, r *http.Request) (string, error) {
		// The engine carries no login UI of its own; deployments supply
		// their own session-backed handler (see example/server).
		return "", nil
	}

	// Federated token validation against another authorization server.
	if d := appCfg.Debug; d.TokenPath != "" && d.DebugPath != "" {
		srv.ResourceTypes.Register(oauth2.ResourceDebugEndpoint,
			resource.NewDebugEndpointResourceTypeHandler(
				resource.NewHTTPTokenIssuer(nil),
				resource.NewHTTPIntrospector(nil),
				resource.DebugEndpointOptions{
					TokenPath:    d.TokenPath,
					DebugPath:    d.DebugPath,
					ClientID:     d.ClientID,
					ClientSecret: d.ClientSecret,
					DisableCache: d.DisableCache,
				}))
		srv.Config.ResourceType = oauth2.ResourceDebugEndpoint
	}

	engine := server.NewGinEngine(srv)
	log.Printf("oauth2d listening on %s", appCfg.Addr)
	log.Fatal(engine.Run(appCfg.Addr))
}
