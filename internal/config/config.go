package config

import (
	"fmt"
	"time"

	"psychrometer/pkg/psychro"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, psychrometric engine,
// database connection, background jobs, stream processors and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, testing)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's default log level when set
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MaxBodyBytes caps request bodies accepted by the API
		MaxBodyBytes int64 `env:"HTTP_MAX_BODY_BYTES" env-default:"1048576" yaml:"maxBodyBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// APIPrefix is the path prefix of the calculation API
		APIPrefix string `env:"HTTP_API_PREFIX" env-default:"/api" yaml:"apiPrefix"`
	} `yaml:"http"`

	// CORS configures cross-origin access to the API
	CORS struct {
		AllowOrigins     []string `env:"CORS_ALLOW_ORIGINS" env-default:"*" env-separator:"," yaml:"allowOrigins"`
		AllowMethods     []string `env:"CORS_ALLOW_METHODS" env-default:"GET,POST,DELETE,OPTIONS" env-separator:"," yaml:"allowMethods"` //nolint: lll
		AllowHeaders     []string `env:"CORS_ALLOW_HEADERS" env-default:"*" env-separator:"," yaml:"allowHeaders"`
		AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" env-default:"false" yaml:"allowCredentials"`
	} `yaml:"cors"`

	// Engine configures the psychrometric engine; it is frozen at start-up
	Engine struct {
		// Pressure is the total atmospheric pressure in Pa
		Pressure float64 `env:"ENGINE_PRESSURE" env-default:"101325" yaml:"pressure"`
		// Precision is the number of decimal places in outputs
		Precision int `env:"ENGINE_PRECISION" env-default:"2" yaml:"precision"`
		// Rounding is the tie-breaking policy (half-away-from-zero or half-even)
		Rounding string `env:"ENGINE_ROUNDING" env-default:"half-away-from-zero" yaml:"rounding"`
		// Method selects the absolute humidity formulation (vapor-pressure or humidity-ratio)
		Method            string  `env:"ENGINE_METHOD" env-default:"vapor-pressure" yaml:"method"`
		MinTemperature    float64 `env:"ENGINE_MIN_TEMPERATURE" env-default:"-273.15" yaml:"minTemperature"`
		MaxTemperature    float64 `env:"ENGINE_MAX_TEMPERATURE" env-default:"1000" yaml:"maxTemperature"`
		MinHumidity       int     `env:"ENGINE_MIN_HUMIDITY" env-default:"0" yaml:"minHumidity"`
		MaxHumidity       int     `env:"ENGINE_MAX_HUMIDITY" env-default:"100" yaml:"maxHumidity"`
		WetBulbIterations int     `env:"ENGINE_WET_BULB_ITERATIONS" env-default:"100" yaml:"wetBulbIterations"`
		WetBulbTolerance  float64 `env:"ENGINE_WET_BULB_TOLERANCE" env-default:"0.001" yaml:"wetBulbTolerance"`
	} `yaml:"engine"`

	// Database contains all database connection related configurations
	Database struct {
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"psychrometer" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// Batch configures asynchronous batch calculations
	Batch struct {
		// MaxAttempts is how often the worker retries a batch before marking it failed
		MaxAttempts int `env:"BATCH_MAX_ATTEMPTS" env-default:"5" yaml:"maxAttempts"`
		// MaxReadings caps the readings accepted in one batch
		MaxReadings int `env:"BATCH_MAX_READINGS" env-default:"1000" yaml:"maxReadings"`
		// Workers is the number of batches processed concurrently
		Workers int `env:"BATCH_WORKERS" env-default:"10" yaml:"workers"`
	} `yaml:"batch"`

	// JWT holds the RS256 key pair; the private key is only needed to issue tokens
	JWT struct {
		PrivateKey string        `env:"JWT_PRIVATE_KEY" yaml:"privateKey"`
		PublicKey  string        `env:"JWT_PUBLIC_KEY" yaml:"publicKey"`
		Issuer     string        `env:"JWT_ISSUER" env-default:"psychrometer" yaml:"issuer"`
		TTL        time.Duration `env:"JWT_TTL" env-default:"24h" yaml:"ttl"`
	} `yaml:"jwt"`

	// Kafka configures the stream pipeline
	Kafka struct {
		Brokers        []string      `env:"KAFKA_BROKERS" env-default:"localhost:9092" env-separator:"," yaml:"brokers"`
		SourceTopic    string        `env:"KAFKA_SOURCE_TOPIC" env-default:"raw-readings" yaml:"sourceTopic"`
		SinkTopic      string        `env:"KAFKA_SINK_TOPIC" env-default:"derived-readings" yaml:"sinkTopic"`
		GroupID        string        `env:"KAFKA_GROUP_ID" env-default:"psychrometer" yaml:"groupId"`
		BatchSize      int           `env:"KAFKA_BATCH_SIZE" env-default:"100" yaml:"batchSize"`
		BatchTimeout   time.Duration `env:"KAFKA_BATCH_TIMEOUT" env-default:"1s" yaml:"batchTimeout"`
		HealthAddr     string        `env:"KAFKA_HEALTH_ADDR" env-default:":8081" yaml:"healthAddr"`
		InitialBackoff time.Duration `env:"KAFKA_INITIAL_BACKOFF" env-default:"200ms" yaml:"initialBackoff"`
		MaxBackoff     time.Duration `env:"KAFKA_MAX_BACKOFF" env-default:"5s" yaml:"maxBackoff"`
	} `yaml:"kafka"`

	// MQTT configures the telemetry bridge
	MQTT struct {
		Broker        string `env:"MQTT_BROKER" env-default:"localhost" yaml:"broker"`
		Port          int    `env:"MQTT_PORT" env-default:"1883" yaml:"port"`
		ClientID      string `env:"MQTT_CLIENT_ID" env-default:"psychrometer" yaml:"clientId"`
		Username      string `env:"MQTT_USERNAME" yaml:"username"`
		Password      string `env:"MQTT_PASSWORD" yaml:"password"`
		Topic         string `env:"MQTT_TOPIC" env-default:"weather/+/telemetry" yaml:"topic"`
		DerivedSuffix string `env:"MQTT_DERIVED_SUFFIX" env-default:"derived" yaml:"derivedSuffix"`
		QoS           int    `env:"MQTT_QOS" env-default:"1" yaml:"qos"`
	} `yaml:"mqtt"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// EngineOptions converts the engine section into engine options. Parse
// errors for the rounding policy and method are reported here so a bad
// config fails at start-up.
func (c *Config) EngineOptions() ([]psychro.Option, error) {
	rounding, err := psychro.ParseRounding(c.Engine.Rounding)
	if err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	method, err := psychro.ParseMethod(c.Engine.Method)
	if err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	return []psychro.Option{
		psychro.WithPressure(c.Engine.Pressure),
		psychro.WithPrecision(c.Engine.Precision),
		psychro.WithRounding(rounding),
		psychro.WithMethod(method),
		psychro.WithTemperatureBounds(c.Engine.MinTemperature, c.Engine.MaxTemperature),
		psychro.WithHumidityBounds(c.Engine.MinHumidity, c.Engine.MaxHumidity),
		psychro.WithWetBulbIterations(c.Engine.WetBulbIterations),
		psychro.WithWetBulbTolerance(c.Engine.WetBulbTolerance),
	}, nil
}

// NewEngine builds the psychrometric engine described by the config.
func (c *Config) NewEngine() (*psychro.Engine, error) {
	opts, err := c.EngineOptions()
	if err != nil {
		return nil, err
	}

	engine, err := psychro.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	return engine, nil
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
