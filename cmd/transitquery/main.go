// Command transitquery answers a batch of stop, bus, route, and map
// queries against a transit network described entirely in one input
// document. It loads everything once, answers every query in order,
// and exits -- no server, no persistence between runs.
package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"

	"transitquery/internal/appconfig"
	"transitquery/internal/diagnostics"
	"transitquery/internal/query"
	"transitquery/internal/requestdoc"
)

func main() {
	inPath := flag.String("in", "", "input request document path (default: stdin)")
	outPath := flag.String("out", "", "output response document path (default: stdout)")
	configPath := flag.String("config", "", "optional YAML config file")
	logLevel := flag.String("log-level", "", "quiet|info|debug (overrides config)")
	flag.Parse()

	bootLogger := diagnostics.New(diagnostics.Info)

	if err := godotenv.Load(); err != nil {
		bootLogger.Info("no .env file found, using default environment variables")
	}

	cfg, err := appconfig.Load(*configPath)
	if err != nil {
		bootLogger.Fatalf("loading config: %v", err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *inPath == "" {
		*inPath = cfg.InputPath
	}
	if *outPath == "" {
		*outPath = cfg.OutputPath
	}

	logger := diagnostics.New(diagnostics.ParseLevel(cfg.LogLevel))

	in := os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			logger.Fatalf("opening input %q: %v", *inPath, err)
		}
		defer f.Close()
		in = f
	}

	logger.Info("loading request document...")
	doc, err := requestdoc.Decode(in)
	if err != nil {
		// Input-format errors: diagnostic, then abort. Never answered
		// as a stat response.
		logger.Fatalf("%v", err)
	}
	logger.Infof("loaded %d base requests, %d stat requests", len(doc.BaseRequests), len(doc.StatRequests))

	engine, err := query.Build(doc)
	if err != nil {
		// Internal invariant violations are fatal.
		logger.Fatalf("%v", err)
	}
	logger.Info("built transit graph, router, layout, and base map")

	responses := make([]requestdoc.Response, 0, len(doc.StatRequests))
	for _, req := range doc.StatRequests {
		logger.Debugf("answering %s request id=%d", req.Type, req.ID)
		responses = append(responses, engine.Answer(req))
	}
	logger.Infof("answered %d stat requests", len(responses))

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			logger.Fatalf("opening output %q: %v", *outPath, err)
		}
		defer f.Close()
		out = f
	}

	if err := requestdoc.Encode(out, responses); err != nil {
		logger.Fatalf("encoding response document: %v", err)
	}
	logger.Info("done")
}
