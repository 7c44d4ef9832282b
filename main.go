package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matst80/skill-finder/pkg/common"
	"github.com/matst80/skill-finder/pkg/messaging"
	"github.com/matst80/skill-finder/pkg/server"
	"github.com/matst80/skill-finder/pkg/skills"
	"github.com/matst80/skill-finder/pkg/storage"
	"github.com/matst80/skill-finder/pkg/tracking"
	"github.com/matst80/skill-finder/pkg/urlstate"
	"github.com/matst80/skill-finder/pkg/watch"
)

var enableProfiling = flag.Bool("profiling", true, "enable profiling endpoints")
var enableWatch = flag.Bool("watch", true, "reload when the data files change")

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	_ = godotenv.Load()
	flag.Parse()

	dataDir := env("DATA_DIR", "data")
	listenAddress := env("LISTEN_ADDRESS", ":8080")
	debugAddress := env("DEBUG_ADDRESS", ":8081")
	redisUrl := os.Getenv("REDIS_URL")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	rabbitConfig := messaging.RabbitConfig{
		Url:    os.Getenv("RABBIT_URL"),
		Prefix: env("RABBIT_PREFIX", "skills"),
	}

	disk := storage.NewDiskStorage(dataDir)
	srv, err := server.NewWebServer(func() (*skills.Catalogue, error) {
		return skills.LoadCatalogue(disk)
	})
	if err != nil {
		log.Fatalf("Failed to load skills from %s: %v", dataDir, err)
	}
	srv.Origin = os.Getenv("CORS_ORIGIN")
	if prefix := os.Getenv("FILTER_PREFIX"); prefix != "" {
		srv.Codec = urlstate.Codec{CategoryPrefix: prefix}
	}

	hooks := []common.ShutdownHook{}

	if redisUrl != "" {
		db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
		srv.Cache = server.NewCache(redisUrl, redisPassword, db)
		log.Printf("Response cache enabled, url: %s", redisUrl)
		hooks = append(hooks, func(context.Context) error {
			return srv.Cache.Close()
		})
	}

	if rabbitConfig.Url != "" {
		trk, err := tracking.NewRabbitTracking(rabbitConfig)
		if err != nil {
			log.Fatalf("Failed to create rabbit tracking: %v", err)
		}
		srv.Tracking = trk
		hooks = append(hooks, func(context.Context) error {
			return trk.Close()
		})

		conn, err := messaging.Connect(rabbitConfig, messaging.SkillsChanged)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		err = messaging.ListenForReload(conn, rabbitConfig.Prefix, func(notice messaging.ReloadNotice) error {
			log.Printf("Reload requested: %s %v", notice.Reason, notice.Files)
			if err := srv.Reload(); err != nil {
				log.Printf("Keeping current skills: %v", err)
			}
			return nil
		})
		if err != nil {
			log.Fatalf("Failed to listen for reloads: %v", err)
		}
		hooks = append(hooks, func(context.Context) error {
			return conn.Close()
		})
		log.Printf("Listening for %s", messaging.TopicName(rabbitConfig.Prefix, messaging.SkillsChanged))
	}

	if *enableWatch {
		w, err := watch.New(dataDir, skills.DataFiles, watch.DefaultDelay, func(files []string) {
			log.Printf("Data files changed: %v", files)
			if err := srv.Reload(); err != nil {
				log.Printf("Keeping current skills: %v", err)
			}
		})
		if err != nil {
			log.Printf("File watch disabled: %v", err)
		} else {
			w.Start()
			hooks = append(hooks, func(context.Context) error {
				w.Stop()
				return nil
			})
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", srv.Handle()))

	debugMux := http.NewServeMux()
	debugMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if srv.Catalogue() == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("not ready"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	debugMux.Handle("/metrics", promhttp.Handler())
	if *enableProfiling {
		log.Println("Profiling enabled")
		debugMux.HandleFunc("/debug/pprof/", pprof.Index)
		debugMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		debugMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		debugMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		debugMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}

	timeouts := common.LoadTimeoutConfig(common.DefaultTimeouts)
	servers := []*http.Server{
		common.NewServer(listenAddress, mux, timeouts),
		common.NewServer(debugAddress, debugMux, timeouts),
	}
	if err := common.RunServersWithShutdown(context.Background(), servers, timeouts, hooks...); err != nil {
		log.Fatal(err)
	}
}
