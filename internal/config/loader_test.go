package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
	"github.com/tashifkhan/faculty-appraisal-system/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.StorageDriver, convey.ShouldEqual, config.DriverMemory)
			convey.So(cfg.RequestTimeout(), convey.ShouldEqual, 30*time.Second)
			convey.So(cfg.AuthSecret, convey.ShouldBeEmpty)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, 0)
			convey.So(cfg.QueueSize, convey.ShouldEqual, 1024)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.StorageDriver, convey.ShouldEqual, "memory")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("APISCORE_ADDR", ":8080")
			_ = os.Setenv("APISCORE_STORAGE_DRIVER", "sqlite")
			_ = os.Setenv("APISCORE_STORAGE_DSN", "file:test.db")
			_ = os.Setenv("APISCORE_REQUEST_TIMEOUT_MS", "1500")
			_ = os.Setenv("APISCORE_CORS_ORIGINS", "https://a.example, https://b.example")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.StorageDriver, convey.ShouldEqual, "sqlite")
				convey.So(cfg.StorageDSN, convey.ShouldEqual, "file:test.db")
				convey.So(cfg.RequestTimeout(), convey.ShouldEqual, 1500*time.Millisecond)
				convey.So(cfg.CORSOrigins, convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, `
addr: ":9090"
log_level: debug
storage_driver: postgres
storage_dsn: "postgres://localhost/appraisal"
`)
			_ = os.Setenv("APISCORE_CONFIG", tmpFile)
			_ = os.Setenv("APISCORE_ADDR", ":8081")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8081")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.StorageDriver, convey.ShouldEqual, "postgres")
				convey.So(cfg.StorageDSN, convey.ShouldEqual, "postgres://localhost/appraisal")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			_ = os.Setenv("APISCORE_CONFIG", createTempConfigFile(t, `invalid: yaml: content: [`))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("APISCORE_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("APISCORE_CONFIG", createTempConfigFile(t, `addr: ""`))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
			})
		})

		convey.Convey("When loading config with an unknown storage driver", func() {
			_ = os.Setenv("APISCORE_STORAGE_DRIVER", "mongo")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should be rejected", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with a zero queue size", func() {
			_ = os.Setenv("APISCORE_QUEUE_SIZE", "0")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should be rejected", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "queue_size")
			})
		})

		convey.Convey("When loading config with a worker count", func() {
			_ = os.Setenv("APISCORE_WORKER_COUNT", "8")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it is applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 8)
			})
		})

		convey.Convey("When loading config with an invalid numeric variable", func() {
			_ = os.Setenv("APISCORE_REQUEST_TIMEOUT_MS", "soon")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigWatch(t *testing.T) {
	convey.Convey("Given a watched config file", t, func() {
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		path := createTempConfigFile(t, "log_level: info\n")
		_ = os.Setenv("APISCORE_CONFIG", path)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes := make(chan *config.Config, 4)
		err := config.Watch(ctx, path, func(c *config.Config) { changes <- c }, nil)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When the file is rewritten", func() {
			convey.So(os.WriteFile(path, []byte("log_level: debug\n"), 0o600), convey.ShouldBeNil)

			convey.Convey("Then the new config is delivered", func() {
				select {
				case c := <-changes:
					convey.So(c.LogLevel, convey.ShouldEqual, "debug")
				case <-time.After(5 * time.Second):
					convey.So("timeout waiting for reload", convey.ShouldBeEmpty)
				}
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, envVar := range []string{
		"APISCORE_CONFIG",
		"APISCORE_ADDR",
		"APISCORE_LOG_LEVEL",
		"APISCORE_STORAGE_DRIVER",
		"APISCORE_STORAGE_DSN",
		"APISCORE_REQUEST_TIMEOUT_MS",
		"APISCORE_CORS_ORIGINS",
		"APISCORE_AUTH_SECRET",
		"APISCORE_WORKER_COUNT",
		"APISCORE_QUEUE_SIZE",
	} {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "apiscore.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
