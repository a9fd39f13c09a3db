package commons

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Action string

const (
	Exit    Action = "exit"
	Serve   Action = "serve"
	Resolve Action = "resolve"
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:91.0) Gecko/20100101 Firefox/91.0"

type BrowserConfig struct {
	Headless  bool
	Install   bool   // download the firefox build at startup
	UserAgent string // sent by every browsing context
}

type ResolveConfig struct {
	BaseURL        string
	ResolveTimeout time.Duration // bound for one whole resolution attempt
	NavTimeout     time.Duration // bound for a single page.Goto
	Settle         time.Duration // time left for XHR/JS to fire after a navigation
	NavRate        float64       // navigations per second, 0 means unlimited
}

type Config struct {
	Action  Action
	Host    string
	Port    string
	Debug   bool
	Browser BrowserConfig
	Resolve ResolveConfig

	// Set for Action == Resolve
	Title   string
	Season  string
	Episode string
}

func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// WriteTimeout leaves room for a full resolution plus encoding the response.
func (c Config) WriteTimeout() time.Duration {
	return c.Resolve.ResolveTimeout + 15*time.Second
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func PrintHelp() {
	fmt.Println("DekhoCrawler - animedekho video URL resolver")
	fmt.Println("Usage:")
	fmt.Println("  dekhocrawler [flags]                           Start the HTTP API")
	fmt.Println("  dekhocrawler resolve <title> <season> <episode> Resolve a single episode and print JSON")
	fmt.Println("Flags:")
	fmt.Println("  --host <HOST>          Listen address (default: 0.0.0.0, env HOST)")
	fmt.Println("  --port, -p <PORT>      Listen port (default: 5000, env PORT)")
	fmt.Println("  --base-url <URL>       Upstream site (default: https://animedekho.co)")
	fmt.Println("  --timeout, -t <DUR>    Bound for a whole resolution, e.g. 45s (default: 60s)")
	fmt.Println("  --nav-rate <N>         Max upstream navigations per second (default: unlimited)")
	fmt.Println("  --user-agent <UA>      User agent for browser contexts")
	fmt.Println("  --headful              Show the browser window")
	fmt.Println("  --no-install           Skip the playwright firefox install step")
	fmt.Println("  --debug, -d            Verbose logging")
	fmt.Println("  --help, -h             Show this help message")
}

// LoadConfig reads defaults from the environment and applies command-line
// overrides from args (os.Args[1:]).
func LoadConfig(args []string) (Config, error) {
	cfg, err := configFromEnv()
	if err != nil {
		return Config{}, err
	}
	if err := parseArgs(&cfg, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func configFromEnv() (Config, error) {
	cfg := Config{
		Action: Serve,
		Host:   GetEnv("HOST", "0.0.0.0"),
		Port:   GetEnv("PORT", "5000"),
		Browser: BrowserConfig{
			UserAgent: GetEnv("DEKHO_USER_AGENT", DefaultUserAgent),
		},
		Resolve: ResolveConfig{
			BaseURL: strings.TrimSuffix(GetEnv("DEKHO_BASE_URL", "https://animedekho.co"), "/"),
		},
	}

	var err error
	if cfg.Debug, err = envBool("DEBUG", false); err != nil {
		return Config{}, err
	}
	if cfg.Browser.Headless, err = envBool("DEKHO_HEADLESS", true); err != nil {
		return Config{}, err
	}
	if cfg.Browser.Install, err = envBool("DEKHO_INSTALL", true); err != nil {
		return Config{}, err
	}
	if cfg.Resolve.ResolveTimeout, err = envDuration("DEKHO_RESOLVE_TIMEOUT", 60*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.Resolve.NavTimeout, err = envDuration("DEKHO_NAV_TIMEOUT", 20*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.Resolve.Settle, err = envDuration("DEKHO_SETTLE", 3*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.Resolve.NavRate, err = parseRate(GetEnv("DEKHO_NAV_RATE", "0")); err != nil {
		return Config{}, fmt.Errorf("DEKHO_NAV_RATE: %w", err)
	}
	return cfg, nil
}

func parseArgs(cfg *Config, args []string) error {
	// value returns the argument following args[i] or an error naming the flag
	value := func(i int, what string) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf("%s requires %s", args[i], what)
		}
		return args[i+1], nil
	}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			cfg.Action = Exit
			return nil
		case "resolve":
			if len(args) < i+4 {
				return fmt.Errorf("resolve requires <title> <season> <episode>")
			}
			cfg.Action = Resolve
			cfg.Title, cfg.Season, cfg.Episode = args[i+1], args[i+2], args[i+3]
			i += 3
		case "--host":
			v, err := value(i, "an address")
			if err != nil {
				return err
			}
			cfg.Host = v
			i++
		case "--port", "-p":
			v, err := value(i, "a port number")
			if err != nil {
				return err
			}
			if p, err := strconv.Atoi(v); err != nil || p < 1 || p > 65535 {
				return fmt.Errorf("%s requires a port between 1 and 65535, got %q", args[i], v)
			}
			cfg.Port = v
			i++
		case "--base-url":
			v, err := value(i, "a URL")
			if err != nil {
				return err
			}
			cfg.Resolve.BaseURL = strings.TrimSuffix(v, "/")
			i++
		case "--timeout", "-t":
			v, err := value(i, "a duration")
			if err != nil {
				return err
			}
			d, err := parseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", args[i], err)
			}
			cfg.Resolve.ResolveTimeout = d
			i++
		case "--nav-rate":
			v, err := value(i, "a number")
			if err != nil {
				return err
			}
			r, err := parseRate(v)
			if err != nil {
				return fmt.Errorf("%s: %w", args[i], err)
			}
			cfg.Resolve.NavRate = r
			i++
		case "--user-agent":
			v, err := value(i, "a user agent string")
			if err != nil {
				return err
			}
			cfg.Browser.UserAgent = v
			i++
		case "--headful":
			cfg.Browser.Headless = false
		case "--no-install":
			cfg.Browser.Install = false
		case "--debug", "-d":
			cfg.Debug = true
		default:
			return fmt.Errorf("unknown argument: %s", args[i])
		}
	}
	return nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := parseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// parseDuration accepts Go durations ("45s") and bare seconds ("45").
func parseDuration(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		v = strconv.Itoa(secs) + "s"
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", v)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %q", v)
	}
	return d, nil
}

func parseRate(v string) (float64, error) {
	r, err := strconv.ParseFloat(v, 64)
	if err != nil || r < 0 {
		return 0, fmt.Errorf("invalid rate %q", v)
	}
	return r, nil
}
