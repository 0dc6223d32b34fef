// FILE: lixenwraith/envproxy/example/main.go
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/lixenwraith/envproxy"
)

// AppConfig declares the service configuration. The Go types double as
// annotations, the tags carry names, defaults and documentation.
type AppConfig struct {
	Host     string         `env:"host" default:"localhost" description:"Address to bind."`
	Port     int            `env:"port" default:"8080" description:"Port to listen on."`
	Timeout  *float64       `env:"timeout" description:"Request timeout in seconds.\nUnset disables the timeout."`
	Services []string       `env:"services" default:"rabbitmq,redis" description:"Upstream services."`
	Debug    bool           `env:"debug" default:"off"`
	Extra    map[string]any `env:"extra" hint:"json" optional:"true" description:"Free-form JSON settings."`
	Token    string         `env:"token" description:"API token." mutable:"true"`
}

func main() {
	cfg, err := envproxy.DeclareStruct(
		envproxy.NewClassBuilder("app").WithPrefix("DEMO"),
		&AppConfig{},
	).Build()
	if err != nil {
		log.Fatalf("❌ Failed to declare configuration: %v", err)
	}

	log.Println("---")
	log.Println("➡️  Sample environment file:")
	if err := cfg.ExportEnv(os.Stdout, envproxy.DefaultExportOptions()); err != nil {
		log.Fatalf("❌ Export failed: %v", err)
	}

	// Required field missing, then provided for the duration of a scope.
	if _, err := cfg.Get("token"); errors.Is(err, envproxy.ErrNotFound) {
		log.Printf("✅ token is required and missing: %v", err)
	}

	err = envproxy.WithEnv(envproxy.Environ{}, map[string]string{
		"DEMO_PORT":  "9090",
		"DEMO_DEBUG": "yes",
		"DEMO_EXTRA": `{"region": "eu-west-1"}`,
	}, func() error {
		if err := cfg.Set("token", "s3cr3t"); err != nil {
			return err
		}
		defer os.Unsetenv("DEMO_TOKEN")

		var app AppConfig
		if err := cfg.Scan(&app); err != nil {
			return err
		}
		fmt.Printf("Scanned: host=%s port=%d debug=%t services=%v extra=%v\n",
			app.Host, app.Port, app.Debug, app.Services, app.Extra)

		log.Println("➡️  Resolved values:")
		return cfg.Dump(os.Stdout, envproxy.FormatYAML)
	})
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
}
