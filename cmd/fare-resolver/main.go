package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	faresolver "github.com/transit-tools/fare-resolver"
	"github.com/transit-tools/fare-resolver/config"
	"github.com/transit-tools/fare-resolver/fare"
	"github.com/transit-tools/fare-resolver/ingest"
	"github.com/transit-tools/fare-resolver/internal"
)

func main() {
	mode := flag.String("mode", "resolve", "resolve|serve")
	cfgPath := flag.String("config", "", "config file path (default: config.yml candidates)")
	sourceName := flag.String("source", "", "source name from config.sources[]")
	legsPath := flag.String("legs", "", "delimited legs file (date, from, to)")
	date := flag.String("date", "", "single-leg date (overrides -legs)")
	from := flag.String("from", "", "single-leg origin")
	to := flag.String("to", "", "single-leg destination")
	flag.Parse()

	_ = godotenv.Load(".env")

	var cfgPaths []string
	if *cfgPath != "" {
		cfgPaths = append(cfgPaths, *cfgPath)
	}
	if err := config.LoadAppConfig(cfgPaths...); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := internal.InitLogging(config.Config.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}

	src := config.SelectSource(*sourceName)
	build := func() (*fare.Table, error) {
		rows, aliasRows, label, err := ingest.LoadSource(src)
		if err != nil {
			return nil, err
		}
		return fare.Build(rows, aliasRows, label)
	}

	store := fare.NewStore()
	table, err := store.Reload(build)
	if err != nil {
		internal.L().Fatalw("fare table build failed", "err", err)
	}
	internal.L().Infow("fare table built",
		"source", table.Source,
		"fares", len(table.Records),
		"places", len(table.Places()))

	switch *mode {
	case "serve":
		cache := faresolver.NewResolveCache(config.Config.Cache)
		svc := faresolver.NewService(store, cache, build)
		faresolver.StartServer(svc, config.Config.Server.Port)
		faresolver.HandleGracefulShutdown()
	case "resolve":
		legs, err := collectLegs(*legsPath, *date, *from, *to)
		if err != nil {
			internal.L().Fatalw("legs input", "err", err)
		}
		results, summary := table.ResolveAll(legs)
		out := struct {
			Results []fare.MatchResult  `json:"results"`
			Summary fare.ResolveSummary `json:"summary"`
		}{results, summary}
		buf, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			internal.L().Fatalw("marshal results", "err", err)
		}
		fmt.Println(string(buf))
	default:
		internal.L().Fatalw("unknown mode", "mode", *mode)
	}
}

func collectLegs(legsPath, date, from, to string) ([]fare.Leg, error) {
	if date != "" || from != "" || to != "" {
		d, ok := fare.ParseDateLoose(date)
		if !ok {
			return nil, fmt.Errorf("unparseable -date %q", date)
		}
		if from == "" || to == "" {
			return nil, fmt.Errorf("-from and -to are required with -date")
		}
		return []fare.Leg{{Date: d.Time, From: from, To: to}}, nil
	}
	if legsPath == "" {
		return nil, fmt.Errorf("provide -legs or -date/-from/-to")
	}
	f, err := os.Open(legsPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.ParseLegs(f)
}
