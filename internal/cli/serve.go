package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Xavi-Linux/geoapy"
	"github.com/Xavi-Linux/geoapy/internal/server"
	"github.com/Xavi-Linux/geoapy/pkg/geoloc"
	"github.com/Xavi-Linux/geoapy/pkg/keystore"
	"github.com/Xavi-Linux/geoapy/pkg/store"
)

// defaultServeAddr is the default bind address for the local proxy.
const defaultServeAddr = "127.0.0.1:8338"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local lookup proxy",
		Long: `Run a small HTTP proxy in front of the provider so other local
tools can share one registered key and one cache store.

Environment (also read from a .env file in the working directory):
  GEOAPY_ADDR         bind address (default ` + defaultServeAddr + `)
  GEOAPY_REDIS_ADDR   use a Redis cache store at this host:port
  GEOAPY_MONGO_URI    use a MongoDB cache store at this URI

Endpoints:
  GET /healthz
  GET /v1/fields
  GET /v1/lookup?ip=<ipv4>&fields=<a,b>&excludes=<c>&cached=1&save=1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env file is fine; explicit env always wins.
			_ = godotenv.Load()

			if addr == "" {
				addr = os.Getenv("GEOAPY_ADDR")
			}
			if addr == "" {
				addr = defaultServeAddr
			}

			ks, err := keystore.New("")
			if err != nil {
				return fmt.Errorf("open key store: %w", err)
			}
			key, err := ks.Current()
			if err != nil {
				return err
			}

			backend, desc, err := serveStore(cmd)
			if err != nil {
				return err
			}
			defer backend.Close()
			c.Logger.Info("cache store ready", "backend", desc)

			client := geoloc.NewClient(geoloc.Config{
				Key:    key,
				Store:  backend,
				Logger: c.Logger,
			})

			srv := server.New(client, c.Logger)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "bind address (default "+defaultServeAddr+")")

	return cmd
}

// serveStore picks the cache backend from the environment: Redis when
// GEOAPY_REDIS_ADDR is set, MongoDB when GEOAPY_MONGO_URI is set, the
// file store otherwise.
func serveStore(cmd *cobra.Command) (store.Store, string, error) {
	ctx := cmd.Context()

	if redisAddr := os.Getenv("GEOAPY_REDIS_ADDR"); redisAddr != "" {
		s, err := store.NewRedisStore(ctx, store.RedisConfig{
			Addr:     redisAddr,
			Password: os.Getenv("GEOAPY_REDIS_PASSWORD"),
		})
		if err != nil {
			return nil, "", fmt.Errorf("connect redis: %w", err)
		}
		return s, "redis " + redisAddr, nil
	}

	if mongoURI := os.Getenv("GEOAPY_MONGO_URI"); mongoURI != "" {
		s, err := store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI})
		if err != nil {
			return nil, "", fmt.Errorf("connect mongo: %w", err)
		}
		return s, "mongo", nil
	}

	dir, err := geoapy.CacheDir()
	if err != nil {
		return nil, "", fmt.Errorf("get cache dir: %w", err)
	}
	s, err := store.NewFileStore(dir)
	if err != nil {
		return nil, "", fmt.Errorf("open file store: %w", err)
	}
	return s, "file " + dir, nil
}
