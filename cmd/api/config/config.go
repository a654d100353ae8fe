package config

import (
	"cmp"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/book-network/cmd/api/database"
)

const (
	defaultHost                 = "localhost"
	defaultPort                 = 8080
	defaultMigratePath          = "migrations"
	defaultRequestTimeout       = 10 * time.Second
	defaultLockWait             = 2 * time.Second
	defaultNotificationsURL     = "https://ntfy.sh"
	defaultNotificationsTopic   = "book-network"
	defaultNotificationsTimeout = 5 * time.Second
)

type Config struct {
	Host  string
	Port  int
	Debug bool

	// DBDsn empty keeps every book in memory.
	DBDsn       string
	DBDriver    string
	MigratePath string

	RequestTimeout time.Duration
	LockWait       time.Duration

	NotificationsEnabled bool
	NotificationsURL     string
	NotificationsTopic   string
	NotificationsTimeout time.Duration
}

/* Reads the flags in args, then lets the environment override each of them. */
func ReadConfig(args []string) (*Config, error) {
	fs := flag.NewFlagSet("book-network", flag.ContinueOnError)

	var c Config
	fs.StringVar(&c.Host, "addr", defaultHost, "flag to set the server startup host")
	fs.IntVar(&c.Port, "port", defaultPort, "flag to set the server startup port")
	fs.BoolVar(&c.Debug, "debug", false, "flag to set Debug logger level")
	fs.StringVar(&c.DBDsn, "db", "", "database connection address, books stay in memory when empty")
	fs.StringVar(&c.DBDriver, "driver", database.DriverPQ, "database driver: postgres or pgx")
	fs.StringVar(&c.MigratePath, "m", defaultMigratePath, "path to migrations")
	fs.DurationVar(&c.RequestTimeout, "request-timeout", defaultRequestTimeout, "deadline of every http request, 0 disables it")
	fs.DurationVar(&c.LockWait, "lock-wait", defaultLockWait, "how long a request waits for a busy book")
	fs.BoolVar(&c.NotificationsEnabled, "notifications", false, "publish lending events to ntfy")
	fs.StringVar(&c.NotificationsURL, "ntfy-url", defaultNotificationsURL, "ntfy server")
	fs.StringVar(&c.NotificationsTopic, "ntfy-topic", defaultNotificationsTopic, "ntfy topic")
	fs.DurationVar(&c.NotificationsTimeout, "ntfy-timeout", defaultNotificationsTimeout, "deadline of one notification")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var err error
	c.Host = cmp.Or(os.Getenv("SERVER_HOST"), c.Host)
	if c.Port, err = envInt("SERVER_PORT", c.Port); err != nil {
		return nil, err
	}
	if c.Debug, err = envBool("DEBUG", c.Debug); err != nil {
		return nil, err
	}
	c.DBDsn = cmp.Or(os.Getenv("DATABASE_URL"), c.DBDsn)
	c.DBDriver = cmp.Or(os.Getenv("DATABASE_DRIVER"), c.DBDriver)
	c.MigratePath = cmp.Or(os.Getenv("DATABASE_MIGRATIONS_PATH"), c.MigratePath)
	if c.RequestTimeout, err = envDuration("HTTP_REQUEST_TIMEOUT", c.RequestTimeout); err != nil {
		return nil, err
	}
	if c.LockWait, err = envDuration("LOCK_WAIT", c.LockWait); err != nil {
		return nil, err
	}
	if c.NotificationsEnabled, err = envBool("NOTIFICATIONS_ENABLED", c.NotificationsEnabled); err != nil {
		return nil, err
	}
	c.NotificationsURL = cmp.Or(os.Getenv("NOTIFICATIONS_URL"), c.NotificationsURL)
	c.NotificationsTopic = cmp.Or(os.Getenv("NOTIFICATIONS_TOPIC"), c.NotificationsTopic)
	if c.NotificationsTimeout, err = envDuration("NOTIFICATIONS_TIMEOUT", c.NotificationsTimeout); err != nil {
		return nil, err
	}

	if c.DBDriver != database.DriverPQ && c.DBDriver != database.DriverPGX {
		return nil, fmt.Errorf("unknown database driver %q", c.DBDriver)
	}
	return &c, nil
}

func envInt(key string, def int) (int, error) {
	v, err := strconv.Atoi(cmp.Or(os.Getenv(key), strconv.Itoa(def)))
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", key, err)
	}
	return v, nil
}

func envBool(key string, def bool) (bool, error) {
	v, err := strconv.ParseBool(cmp.Or(os.Getenv(key), strconv.FormatBool(def)))
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	return v, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v, err := time.ParseDuration(cmp.Or(os.Getenv(key), def.String()))
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", key, err)
	}
	return v, nil
}
