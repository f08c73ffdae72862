package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	motmetrics "github.com/swdee/go-motmetrics"
	"github.com/swdee/go-motmetrics/lap"
	"github.com/swdee/go-motmetrics/render"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// Config selects the solver backend, the metrics to report, and the
// sequence name shown in the summary
type Config struct {
	Solver  string   `yaml:"solver"`
	Metrics []string `yaml:"metrics"`
	Name    string   `yaml:"name"`
}

// loadConfig reads the evaluation config from a YAML file
func loadConfig(path string) (Config, error) {

	var c Config

	b, err := os.ReadFile(path)

	if err != nil {
		return c, err
	}

	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, err
	}

	return c, nil
}

func main() {

	configFile := flag.String("config", "", "optional YAML evaluation config")
	flag.Parse()

	cfg := Config{Name: "seq"}

	if *configFile != "" {

		var err error
		cfg, err = loadConfig(*configFile)

		if err != nil {
			log.Fatalf("error loading config: %v", err)
		}
	}

	lapCfg, err := lap.NewDefaultConfig()

	if err != nil {
		log.Fatalf("error initializing assignment solvers: %v", err)
	}

	log.Printf("available solvers %v, using %q", lapCfg.Available(),
		lapCfg.Default())

	// the accumulator is fed one frame at a time with the ground truth
	// objects, the tracker hypotheses, and their pairwise distances
	acc := motmetrics.NewAccumulator(lapCfg, cfg.Solver)

	nan := math.NaN()

	// frame 0: two matches, one false alarm
	frames := []struct {
		oids  []string
		hids  []string
		dists []float64
	}{
		{
			oids: []string{"a", "b"},
			hids: []string{"1", "2", "3"},
			dists: []float64{
				0.1, nan, 0.3,
				0.5, 0.2, 0.3,
			},
		},
		// frame 1: one match, one miss
		{
			oids:  []string{"a", "b"},
			hids:  []string{"1"},
			dists: []float64{0.2, 0.4},
		},
		// frame 2: one match, one switch
		{
			oids: []string{"a", "b"},
			hids: []string{"1", "3"},
			dists: []float64{
				0.6, 0.2,
				0.1, 0.6,
			},
		},
	}

	for i, f := range frames {

		events, err := acc.Update(f.oids, f.hids,
			mat.NewDense(len(f.oids), len(f.hids), f.dists))

		if err != nil {
			log.Fatalf("error updating frame %d: %v", i, err)
		}

		for _, e := range events {
			fmt.Printf("frame=%d event=%d type=%-6s oid=%-2q hid=%-2q d=%v\n",
				e.FrameID, e.EventID, e.Type, e.OID, e.HID, e.D)
		}
	}

	mh := motmetrics.DefaultMetrics()

	metrics := cfg.Metrics

	if metrics == nil {
		metrics = motmetrics.MOTChallengeMetrics
	}

	// summarize the full sequence and the first two frames side by side
	var part motmetrics.EventLog

	for _, e := range acc.Events() {
		if e.FrameID <= 1 {
			part = append(part, e)
		}
	}

	summary, err := mh.ComputeMany(
		[]motmetrics.EventSource{acc, part},
		metrics,
		[]string{cfg.Name, cfg.Name + "-part"},
	)

	if err != nil {
		log.Fatalf("error computing metrics: %v", err)
	}

	fmt.Println()
	fmt.Print(render.Summary(summary, render.DefaultFormatters,
		render.MOTChallengeNames))
}
