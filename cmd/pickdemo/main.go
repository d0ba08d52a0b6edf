package main

import (
	"fmt"
	"net/http"
	"os"
	"reflect"
	"runtime"

	"scenequery/internal/config"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
	"github.com/xlab/closer"
)

var version = "v0.1.0"

func init() {
	runtime.LockOSThread()
}

// Keeps the config keys readable to the cli package under garble.
var _ = reflect.TypeOf(demoConfig{})

type demoConfig struct {
	Width         int     `cli:""        env:"PICKDEMO_WIDTH"           help:"Window width."`
	Height        int     `cli:""        env:"PICKDEMO_HEIGHT"          help:"Window height."`
	FOV           float32 `cli:""        env:"PICKDEMO_FOV"             help:"Vertical field of view in degrees."`
	Grid          int     `cli:""        env:"PICKDEMO_GRID"            help:"Boxes per grid side."`
	Spacing       float32 `cli:""        env:"PICKDEMO_SPACING"         help:"Distance between box centers."`
	FPSLimit      int     `cli:""        env:"PICKDEMO_FPS_LIMIT"       help:"Frame rate cap, 0 for none."`
	NearPlaneBias float32 `cli:",hidden" env:"PICKDEMO_NEAR_PLANE_BIAS" help:"Near plane culling bias."`
	PlaneEpsilon  float32 `cli:",hidden" env:"PICKDEMO_PLANE_EPSILON"   help:"Degenerate frustum plane threshold."`
	MetricsAddr   string  `cli:""        env:"PICKDEMO_METRICS_ADDR"    help:"Listening address for Prometheus metrics, empty to disable."`
	LogLevel      string  `cli:""        env:"PICKDEMO_LOG_LEVEL"       help:"Log level (debug|info|warning|error)."`
	LogIndent     bool    `cli:""        env:"PICKDEMO_LOG_INDENT"      help:"Indent logs."`
	Version       bool    `cli:""        env:"-"                        help:"Show version."`
	Help          bool    `cli:""        env:"-"                        help:"Show help."`
}

func main() {
	conf := demoConfig{
		Width:         900,
		Height:        600,
		FOV:           60,
		Grid:          24,
		Spacing:       3,
		FPSLimit:      120,
		NearPlaneBias: config.DefaultNearPlaneBias,
		PlaneEpsilon:  config.DefaultPlaneEpsilon,
		LogLevel:      logs.InfoLevel.String(),
	}

	cli.Register().
		Help("Opens a window with a grid of boxes; click a box to pick it.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	config.SetNearPlaneBias(conf.NearPlaneBias)
	config.SetPlaneEpsilon(conf.PlaneEpsilon)

	if conf.MetricsAddr != "" {
		server := &http.Server{Addr: conf.MetricsAddr, Handler: promhttp.Handler()}
		go func() {
			logs.WithTag("addr", conf.MetricsAddr).Info("starting metrics server")
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logs.Warn(errors.New("metrics server stopped").Wrap(err))
			}
		}()
		closer.Bind(func() {
			server.Close()
		})
	}
	closer.Bind(func() {
		logs.WithTag("version", version).Info("pickdemo stopped")
	})
	defer closer.Close()

	if err := run(conf); err != nil {
		logs.Fatal(err)
	}
}

func validateConfig(conf demoConfig) error {
	switch {
	case conf.Width <= 0 || conf.Height <= 0:
		return errors.New("window size must be positive").
			WithTag("width", conf.Width).
			WithTag("height", conf.Height)
	case conf.Grid <= 0:
		return errors.New("grid must be positive").WithTag("grid", conf.Grid)
	case conf.FOV <= 0 || conf.FOV >= 180:
		return errors.New("fov must be within (0, 180)").WithTag("fov", conf.FOV)
	case conf.Spacing <= 0:
		return errors.New("spacing must be positive").WithTag("spacing", conf.Spacing)
	}
	return nil
}
