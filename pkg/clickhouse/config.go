package clickhouse

import "time"

// ClientOption configures the ClickHouse client.
type ClientOption func(*ClientConfig)

// ClientConfig holds connection pool configuration.
type ClientConfig struct {
	Host            string
	Port            int
	Database        string
	User            string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
}

// WithHost sets the server host.
func WithHost(host string) ClientOption {
	return func(c *ClientConfig) {
		c.Host = host
	}
}

// WithPort sets the native protocol port.
func WithPort(port int) ClientOption {
	return func(c *ClientConfig) {
		if port > 0 {
			c.Port = port
		}
	}
}

// WithDatabase sets the target database.
func WithDatabase(db string) ClientOption {
	return func(c *ClientConfig) {
		if db != "" {
			c.Database = db
		}
	}
}

// WithCredentials sets user and password.
func WithCredentials(user, password string) ClientOption {
	return func(c *ClientConfig) {
		c.User = user
		c.Password = password
	}
}

// WithMaxConnections sets pool limits.
func WithMaxConnections(open, idle int) ClientOption {
	return func(c *ClientConfig) {
		if open > 0 {
			c.MaxOpenConns = open
		}
		if idle > 0 {
			c.MaxIdleConns = idle
		}
	}
}

// WithTimeouts sets dial and read timeouts.
func WithTimeouts(dial, read time.Duration) ClientOption {
	return func(c *ClientConfig) {
		if dial > 0 {
			c.DialTimeout = dial
		}
		if read > 0 {
			c.ReadTimeout = read
		}
	}
}
