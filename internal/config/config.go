package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer

	// Optional sqlite file for the check-history audit trail.
	// History endpoints report disabled when empty.
	DatabasePath string `env:"DATABASE_PATH"`

	Gumroad Gumroad `envPrefix:"GUMROAD_"`
}

type Gumroad struct {
	BaseApiURL        string `env:"BASE_API_URL" envDefault:"https://api.gumroad.com/v2"`
	ApplicationID     string `env:"APPLICATION_ID"`
	ApplicationSecret string `env:"APPLICATION_SECRET"`
	AccessToken       string `env:"ACCESS_TOKEN"`
	CheckoutHost      string `env:"CHECKOUT_HOST" envDefault:"gumroad.com"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
