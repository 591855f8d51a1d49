package main

import (
	"context"
	"log"

	"github.com/y0usad/lyoki-site/cmd/server"
	"github.com/y0usad/lyoki-site/internal/auth"
	"github.com/y0usad/lyoki-site/internal/config"
	"github.com/y0usad/lyoki-site/internal/storage"
)

var (
	srvAddr                 = config.Env.ServerAddr
	postgresConnStr         = config.Env.PostgresConnStr
	accessTokenSecret       = config.Env.AccessTokenSecret
	accessTokenExpiryInSecs = config.Env.AccessTokenExpiryInSecs
)

func main() {
	log.SetFlags(log.Ldate | log.Llongfile)

	db, err := storage.NewPostgresDB(postgresConnStr)
	if err != nil {
		log.Fatal(err)
	}

	if err := storage.RunMigrations(
		context.Background(),
		db,
		"db/migrations",
	); err != nil {
		log.Fatal(err)
	}

	redisClient, err := storage.NewRedisClient(&storage.RedisConfig{
		Addr:     config.Env.RedisAddr,
		Password: config.Env.RedisPassword,
		DB:       config.Env.RedisDB,
	})
	if err != nil {
		log.Fatal(err)
	}

	srv := server.NewServer(&server.ServerConfig{
		Addr:        srvAddr,
		DB:          db,
		RedisClient: redisClient,
		TokenManager: auth.NewTokenService(
			accessTokenSecret,
			accessTokenExpiryInSecs,
		),
		GoogleClientID:         config.Env.GoogleClientID,
		MercadoPagoAccessToken: config.Env.MercadoPagoAccessToken,
		FrontendBaseURL:        config.Env.FrontendBaseURL,
		BackendBaseURL:         config.Env.BackendBaseURL,
	},
	)
	srv.Run()
}
