package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/aslakb/plumetrace/plume"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	configFile  = flag.String("config", "config.yaml", "Path to configuration file")
	dataDir     = flag.String("data-dir", "", "Override data directory from config")
	outputFile  = flag.String("output", "plume-contours.geojson", "Output file for the contour collection")
	renderPNG   = flag.Bool("render", false, "Render a heatmap PNG alongside the GeoJSON output")
	renderSVG   = flag.Bool("svg", false, "Render a contour SVG alongside the GeoJSON output")
	serveMode   = flag.Bool("serve", false, "Publish results over MQTT and serve them over HTTP")
	httpPort    = flag.Int("http-port", 8080, "HTTP server port for --serve mode")
	chainTracer = flag.Bool("chain-tracer", false, "Use boundary-cell chaining instead of marching squares (lower fidelity)")
)

func main() {
	flag.Parse()
	fmt.Printf("plumetrace version: %s\n", Version)

	cfg, err := plume.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("[MAIN] %v", err)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	if *serveMode {
		runServe(cfg)
		return
	}
	runCompute(cfg)
}

// computeCollection runs the pipeline once for the configured ensemble and
// attribute, returning the smoothed count field alongside the contours so
// render modes can reuse it.
func computeCollection(cfg *plume.Config) (plume.ScalarField, *plume.FeatureCollection, error) {
	source := plume.DirectorySource{Dir: cfg.DataDir}
	attribute := plume.MapAttribute(cfg.Attribute)

	fields, err := source.Surfaces(cfg.Ensemble, attribute, cfg.Realizations)
	if err != nil {
		return plume.ScalarField{}, nil, err
	}
	log.Printf("[MAIN] loaded %d of %d realizations for %q", len(fields), len(cfg.Realizations), cfg.Attribute)

	opts := cfg.PipelineOptions()
	if *chainTracer {
		opts.Geometry = &plume.Capability{
			Tracer:     plume.BoundaryChain{},
			Simplifier: plume.DouglasPeucker{},
		}
	}

	fc, err := plume.PlumePolygons(fields, cfg.Threshold, opts)
	if err != nil {
		return plume.ScalarField{}, nil, err
	}

	// Recompute the smoothed field for rendering. Cheap relative to I/O.
	count, err := plume.CountPresence(fields, cfg.Threshold)
	if err != nil {
		return plume.ScalarField{}, nil, err
	}
	smoothed := plume.Smooth(count, opts.Smoothing)

	return smoothed, fc, nil
}

func runCompute(cfg *plume.Config) {
	smoothed, fc, err := computeCollection(cfg)
	if err != nil {
		log.Fatalf("[MAIN] computing plume contours: %v", err)
	}

	payload, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		log.Fatalf("[MAIN] marshaling collection: %v", err)
	}
	if err := os.WriteFile(*outputFile, payload, 0644); err != nil {
		log.Fatalf("[MAIN] writing %s: %v", *outputFile, err)
	}
	log.Printf("[MAIN] wrote %d contour features to %s", len(fc.Features), *outputFile)

	if *renderPNG {
		path := replaceExt(*outputFile, ".png")
		renderer := plume.NewRasterRenderer()
		if cfg.Render.Scale > 0 {
			renderer.Scale = cfg.Render.Scale
		}
		f, err := os.Create(path)
		if err != nil {
			log.Fatalf("[MAIN] creating %s: %v", path, err)
		}
		if err := renderer.RenderPNG(smoothed, fc, f); err != nil {
			f.Close()
			log.Fatalf("[MAIN] rendering %s: %v", path, err)
		}
		f.Close()
		log.Printf("[MAIN] wrote heatmap preview to %s", path)
	}

	if *renderSVG {
		if len(fc.Features) == 0 {
			log.Printf("[MAIN] no contours extracted, skipping SVG output")
			return
		}
		path := replaceExt(*outputFile, ".svg")
		renderer := plume.NewVectorRenderer(smoothed.Grid)
		f, err := os.Create(path)
		if err != nil {
			log.Fatalf("[MAIN] creating %s: %v", path, err)
		}
		if err := renderer.RenderSVG(fc, f); err != nil {
			f.Close()
			log.Fatalf("[MAIN] rendering %s: %v", path, err)
		}
		f.Close()
		log.Printf("[MAIN] wrote contour SVG to %s", path)
	}
}

// runServe computes the collection, publishes it over MQTT when a broker is
// configured, and serves the latest result over HTTP until interrupted.
func runServe(cfg *plume.Config) {
	_, fc, err := computeCollection(cfg)
	if err != nil {
		log.Fatalf("[SERVICE] computing plume contours: %v", err)
	}

	if cfg.MQTT.Broker != "" {
		client, err := plume.NewMQTTClient(cfg.MQTT)
		if err != nil {
			log.Fatalf("[SERVICE] %v", err)
		}
		defer client.Disconnect(250)

		publisher := plume.NewPublisher(client, cfg.MQTT.PublishPrefix)
		attribute := plume.MapAttribute(cfg.Attribute)
		if err := publisher.PublishCollection(cfg.Ensemble, attribute, fc); err != nil {
			log.Printf("[SERVICE] publish failed: %v", err)
		} else {
			log.Printf("[SERVICE] published %d features to MQTT", len(fc.Features))
		}
	}

	var mu sync.RWMutex
	latest := fc

	http.HandleFunc("/contours", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()
		w.Header().Set("Content-Type", "application/geo+json")
		if err := json.NewEncoder(w).Encode(latest); err != nil {
			log.Printf("[SERVICE] encoding response: %v", err)
		}
	})
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	addr := fmt.Sprintf(":%d", *httpPort)
	server := &http.Server{Addr: addr}
	go func() {
		log.Printf("[SERVICE] serving contours on %s/contours", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[SERVICE] HTTP server: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Printf("[SERVICE] shutting down")
	server.Close()
}

// replaceExt swaps the extension of a file path.
func replaceExt(path, ext string) string {
	if i := strings.LastIndex(path, "."); i > 0 {
		return path[:i] + ext
	}
	return path + ext
}
