package main

import (
	"crypto/tls"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"taskdesk/api"
	"taskdesk/storage"
)

func main() {
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}

	repo := buildRepository()

	e := echo.New()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	logger := log.New()
	api.Register(e, repo, logger)

	listenAddr := ":8080"
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		listenAddr = v
	}
	if val, ok := os.LookupEnv("FUNCTIONS_CUSTOMHANDLER_PORT"); ok {
		listenAddr = ":" + val
	}

	e.Logger.Fatal(e.Start(listenAddr))
}

// buildRepository selects the storage backend from the environment. Whatever
// the backend, the server wraps it in storage.Serialized: the repositories
// expect a single actor per instance and the HTTP host is the one
// responsible for serializing access.
func buildRepository() storage.TaskRepository {
	backend := strings.ToLower(strings.TrimSpace(os.Getenv("REPOSITORY_BACKEND")))
	if backend == "" {
		backend = "memory"
	}

	switch backend {
	case "memory":
		return storage.NewSerialized(storage.NewMemory())
	case "redis":
		redisConn := os.Getenv("REDIS_CONNECTION_STRING")
		if redisConn == "" {
			log.Fatal("missing redis config")
		}
		rc := redis.NewClient(parseRedisOptions(redisConn))

		var repo storage.TaskRepository = storage.NewRedis(rc)
		if v := os.Getenv("CACHE_TTL"); v != "" {
			ttl, err := time.ParseDuration(v)
			if err != nil || ttl <= 0 {
				log.Fatalf("invalid CACHE_TTL: %v", err)
			}
			repo = storage.NewCache(repo, rc, ttl)
		}
		return storage.NewSerialized(repo)
	default:
		log.Fatalf("invalid REPOSITORY_BACKEND: %s", backend)
		return nil
	}
}

// parseRedisOptions accepts either a redis URL or the comma-separated
// "host:port,password=...,ssl=true" form used by managed redis offerings.
func parseRedisOptions(connStr string) *redis.Options {
	opts, err := redis.ParseURL(connStr)
	if err == nil {
		return opts
	}
	parts := strings.Split(connStr, ",")
	opts = &redis.Options{Addr: parts[0]}
	for _, p := range parts[1:] {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.ToLower(kv[0]) {
		case "password":
			opts.Password = kv[1]
		case "ssl":
			if strings.ToLower(kv[1]) == "true" {
				opts.TLSConfig = &tls.Config{}
			}
		}
	}
	return opts
}
