package config_test

import (
	"testing"
	"time"

	"github.com/book-network/cmd/api/config"
	"github.com/book-network/cmd/api/database"
	"github.com/matryer/is"
)

func TestReadConfig(t *testing.T) {

	t.Run("uses the defaults", func(t *testing.T) {
		is := is.New(t)
		t.Setenv("DATABASE_URL", "")

		c, err := config.ReadConfig(nil)
		is.NoErr(err)
		is.Equal(c.Port, 8080)
		is.Equal(c.DBDsn, "")
		is.Equal(c.DBDriver, database.DriverPQ)
		is.Equal(c.RequestTimeout, 10*time.Second)
		is.True(!c.NotificationsEnabled)
	})

	t.Run("flags set the values", func(t *testing.T) {
		is := is.New(t)

		c, err := config.ReadConfig([]string{"-port", "9090", "-driver", "pgx", "-lock-wait", "250ms", "-debug"})
		is.NoErr(err)
		is.Equal(c.Port, 9090)
		is.Equal(c.DBDriver, database.DriverPGX)
		is.Equal(c.LockWait, 250*time.Millisecond)
		is.True(c.Debug)
	})

	t.Run("the environment overrides the flags", func(t *testing.T) {
		is := is.New(t)
		t.Setenv("SERVER_PORT", "7070")
		t.Setenv("DATABASE_URL", "postgres://localhost/books")
		t.Setenv("NOTIFICATIONS_ENABLED", "true")
		t.Setenv("NOTIFICATIONS_TIMEOUT", "1s")

		c, err := config.ReadConfig([]string{"-port", "9090"})
		is.NoErr(err)
		is.Equal(c.Port, 7070)
		is.Equal(c.DBDsn, "postgres://localhost/books")
		is.True(c.NotificationsEnabled)
		is.Equal(c.NotificationsTimeout, time.Second)
	})

	t.Run("expected error for malformed values", func(t *testing.T) {
		is := is.New(t)

		t.Setenv("LOCK_WAIT", "soon")
		_, err := config.ReadConfig(nil)
		is.True(err != nil)
	})

	t.Run("expected error for an unknown driver", func(t *testing.T) {
		is := is.New(t)

		_, err := config.ReadConfig([]string{"-driver", "mysql"})
		is.True(err != nil)
	})
}
