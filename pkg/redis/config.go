package redis

import "time"

// Option configures the Redis client.
type Option func(*Config)

// Config holds Redis connection configuration.
type Config struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	PoolTimeout  time.Duration
	DialTimeout  time.Duration
}

// WithAddr sets the Redis address (host:port).
func WithAddr(addr string) Option {
	return func(c *Config) {
		if addr != "" {
			c.Addr = addr
		}
	}
}

// WithPassword sets the Redis password.
func WithPassword(password string) Option {
	return func(c *Config) {
		c.Password = password
	}
}

// WithDB sets the Redis database number.
func WithDB(db int) Option {
	return func(c *Config) {
		c.DB = db
	}
}

// WithPool sets connection pool settings.
func WithPool(size, minIdle int, timeout time.Duration) Option {
	return func(c *Config) {
		if size > 0 {
			c.PoolSize = size
		}
		if minIdle > 0 {
			c.MinIdleConns = minIdle
		}
		if timeout > 0 {
			c.PoolTimeout = timeout
		}
	}
}

// WithDialTimeout sets the connect timeout.
func WithDialTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.DialTimeout = timeout
		}
	}
}
