package main

import "time"

type Config struct {
	Secret               string        `env:"SECRET,required=true"`
	AuthScheme           string        `env:"AUTH_SCHEME,default=header"`
	TimestampFormat      string        `env:"TIMESTAMP_FORMAT,default=iso8601"`
	BufferSize           int           `env:"BUFFER_SIZE,default=64"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=8"`
	MaxContentLength     int           `env:"MAX_CONTENT_LENGTH,default=512"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=1s"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=15s"`
	ReadTimeout          time.Duration `env:"READ_TIMEOUT,default=5s"`
	WriteTimeout         time.Duration `env:"WRITE_TIMEOUT,default=15s"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	DebugPort            *int          `env:"DEBUG_PORT"`
	LogLevel             string        `env:"LOG_LEVEL,default=info"`
	Host                 string        `env:"HOST,default=localhost"`
	Port                 int           `env:"PORT,default=8080"`
}
