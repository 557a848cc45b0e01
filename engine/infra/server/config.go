package server

import "fmt"

// Config holds HTTP server settings.
type Config struct {
	Host string
	Port int
}

func (c *Config) FullAddress() string {
	host := c.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := c.Port
	if port == 0 {
		port = 5001
	}
	return fmt.Sprintf("%s:%d", host, port)
}
