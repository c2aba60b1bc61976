// Command uplink-decode decodes LoRaWAN weather-station payloads.
//
// It runs in two modes. With -data it decodes a single base64 payload and
// prints the record, optionally as a table with -pretty:
//
//	uplink-decode -data 'XyxAArEz8AAAAP8=' -profile barani -pretty
//
// Without -data it runs as a stream processor, reading NDJSON uplink
// envelopes from -in and writing decoded NDJSON records to -out, where
// "-" means stdin/stdout:
//
//	uplink-decode -in uplinks.ndjson -out decoded.ndjson
//
// Configuration (log level, device registry, extra profiles, metrics
// listener) comes from the environment; see internal/config.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/pterm/pterm"

	httpadapter "github.com/lorasense/uplink-decoder/internal/adapter/http"
	"github.com/lorasense/uplink-decoder/internal/adapter/ndjson"
	"github.com/lorasense/uplink-decoder/internal/config"
	"github.com/lorasense/uplink-decoder/internal/decode"
	"github.com/lorasense/uplink-decoder/internal/devices"
	"github.com/lorasense/uplink-decoder/internal/domain"
	"github.com/lorasense/uplink-decoder/internal/observability"
	"github.com/lorasense/uplink-decoder/internal/pipeline"
	"github.com/lorasense/uplink-decoder/internal/profile"
)

func main() {
	inPath := flag.String("in", "-", "NDJSON uplink source, - for stdin")
	outPath := flag.String("out", "-", "NDJSON record sink, - for stdout")
	data := flag.String("data", "", "decode a single base64 payload and exit")
	profileID := flag.String("profile", "", "profile id for -data (default: configured default)")
	pretty := flag.Bool("pretty", false, "with -data, render the record as a table")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	registry, err := buildRegistry(cfg, logger)
	if err != nil {
		logger.Error("failed to build profile registry", "error", err)
		os.Exit(1)
	}
	decoder := decode.New(registry, logger, metrics)

	if *data != "" {
		if err := decodeOne(decoder, *data, *profileID, *pretty); err != nil {
			logger.Error("decode failed", "error", err)
			os.Exit(1)
		}
		return
	}

	deviceReg, err := buildDevices(cfg, logger)
	if err != nil {
		logger.Error("failed to load device registry", "error", err)
		os.Exit(1)
	}

	if err := runStream(cfg, logger, metrics, decoder, deviceReg, *inPath, *outPath); err != nil {
		logger.Error("pipeline error", "error", err)
		os.Exit(1)
	}
}

func buildRegistry(cfg *config.Config, logger *slog.Logger) (*profile.Registry, error) {
	registry := profile.NewRegistry()

	if cfg.ProfilesFile != "" {
		extra, err := profile.LoadFile(cfg.ProfilesFile)
		if err != nil {
			return nil, err
		}
		for _, p := range extra {
			if err := registry.Register(p); err != nil {
				return nil, err
			}
		}
		logger.Info("loaded extra profiles", "file", cfg.ProfilesFile, "count", len(extra))
	}

	if err := registry.SetDefault(cfg.DefaultProfile); err != nil {
		return nil, err
	}
	return registry, nil
}

func buildDevices(cfg *config.Config, logger *slog.Logger) (*devices.Registry, error) {
	if cfg.DevicesFile == "" {
		return devices.Empty(cfg.DefaultProfile), nil
	}
	reg, err := devices.Load(cfg.DevicesFile, cfg.DefaultProfile)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded device registry", "file", cfg.DevicesFile, "devices", reg.Len())
	return reg, nil
}

func decodeOne(decoder *decode.Decoder, data, profileID string, pretty bool) error {
	payload, err := domain.Uplink{Data: data}.Payload()
	if err != nil {
		return err
	}
	rec, res, err := decoder.DecodeDetail(payload, profileID)
	if err != nil {
		return err
	}

	if pretty {
		table := pterm.TableData{{"Field", "Value"}}
		for _, name := range rec.Fields() {
			v, _ := rec.Get(name)
			table = append(table, []string{name, strconv.FormatFloat(v, 'f', -1, 64)})
		}
		pterm.Info.Println("profile: " + res.Profile)
		return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
	}

	out, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runStream(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics,
	decoder *decode.Decoder, deviceReg *devices.Registry, inPath, outPath string) error {

	in, err := openInput(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := openOutput(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	transformer := pipeline.NewTransformer(deviceReg, decoder, logger)
	p := pipeline.New(ndjson.NewReader(in, logger), transformer, ndjson.NewWriter(out), logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		srv := httpadapter.NewServer(cfg.MetricsAddr, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("metrics server shutdown error", "error", err)
			}
		}()
	}

	return p.Run(ctx)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return os.Stdin, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return f, nil
}
