package main

import (
	"context"
	"flag"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/thirdevent/gatekeeper/adapters/events"
	"github.com/thirdevent/gatekeeper/adapters/indexer"
	"github.com/thirdevent/gatekeeper/adapters/store"
	"github.com/thirdevent/gatekeeper/adapters/tokenizer"
	"github.com/thirdevent/gatekeeper/internal/config"
	"github.com/thirdevent/gatekeeper/internal/eth"
	"github.com/thirdevent/gatekeeper/service"
	transport "github.com/thirdevent/gatekeeper/transport/http"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	signer, err := eth.NewSigner(cfg.Operator.PrivateKey)
	if err != nil {
		log.Fatalf("Failed to load operator key: %v", err)
	}
	log.Printf("Operator address: %s", signer.Address().Hex())

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer pool.Close()

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opts)

	wmLogger := watermill.NewStdLogger(false, false)
	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client: redisClient,
		},
		wmLogger,
	)
	if err != nil {
		log.Fatalf("Failed to create Redis publisher: %v", err)
	}

	records := store.NewPgxStore(pool)
	revocations := store.NewRedisRevocations(redisClient)
	nftIndexer := indexer.NewAlchemyClient(cfg.Indexer.BaseURL, cfg.Indexer.APIKey)
	eventPub := events.NewWatermillPublisher(publisher)
	sessionTokenizer := tokenizer.NewJWTTokenizer([]byte(cfg.Session.Secret))

	authService := service.NewAuthService(records, sessionTokenizer, revocations, eventPub)
	authService.SetSessionTTL(cfg.Session.TTL)
	mintService := service.NewMintService(records, nftIndexer, signer, revocations, eventPub)

	router := transport.SetupRouter(authService, mintService, cfg.Server.SecureCookies)

	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
