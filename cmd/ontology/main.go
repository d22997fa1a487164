// Package main implements the command-line interface over one ontology
// file: open, apply a single operation, save on close.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/thdiaman/OntologyAPI/config"
	"github.com/thdiaman/OntologyAPI/metric"
	"github.com/thdiaman/OntologyAPI/ontology"
	"github.com/thdiaman/OntologyAPI/ontology/query"
	"github.com/thdiaman/OntologyAPI/storage"
	"github.com/thdiaman/OntologyAPI/vocabulary"
)

const appName = "ontology"

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "JSON configuration file")
		filePath   = fs.String("file", "", "ontology file path")
		namespace  = fs.String("ns", "", "base namespace URI")
		logLevel   = fs.String("log", "", "log level (debug, info, warn, error)")
		metricAddr = fs.String("metrics", "", "serve Prometheus metrics on this address")
	)
	fs.Usage = func() { usage(fs) }
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := resolveConfig(*configPath, *filePath, *namespace, *logLevel, *metricAddr)
	if err != nil {
		return err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	verb := fs.Arg(0)
	if verb == "" {
		usage(fs)
		return fmt.Errorf("no operation given")
	}

	var metrics *metric.Metrics
	if cfg.Metrics.Enabled {
		metrics = metric.NewMetrics()
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				logger.Warn("metrics server stopped", "error", err)
			}
		}()
	}

	f, err := storage.Open(cfg.Path, vocabulary.New(cfg.Namespace), metrics, logger)
	if err != nil {
		return err
	}

	if err := apply(f.Store(), metrics, logger, verb, fs.Args()[1:], out); err != nil {
		return err
	}
	return f.Close()
}

// resolveConfig merges the config file (when given) with flag overrides
// and validates the result.
func resolveConfig(configPath, filePath, namespace, logLevel, metricAddr string) (config.Config, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if filePath != "" {
		cfg.Path = filePath
	}
	if namespace != "" {
		cfg.Namespace = namespace
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if metricAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = metricAddr
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// apply dispatches one verb against the open store.
func apply(
	s *ontology.Store, metrics *metric.Metrics, logger *slog.Logger,
	verb string, args []string, out io.Writer,
) error {
	need := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s expects %d argument(s), got %d", verb, n, len(args))
		}
		return nil
	}

	switch verb {
	case "define-class":
		if err := need(1); err != nil {
			return err
		}
		s.DefineClass(args[0])
		return nil

	case "add":
		if err := need(2); err != nil {
			return err
		}
		return s.AddIndividual(args[0], args[1])

	case "remove":
		if err := need(1); err != nil {
			return err
		}
		return s.RemoveIndividual(args[0])

	case "remove-prop":
		if err := need(2); err != nil {
			return err
		}
		return s.RemoveProperty(args[0], args[1])

	case "remove-related":
		if err := need(2); err != nil {
			return err
		}
		return s.RemoveRelatedIndividuals(args[0], args[1])

	case "relate":
		if err := need(3); err != nil {
			return err
		}
		return s.AddRelation(args[0], args[1], args[2])

	case "set":
		if err := need(3); err != nil {
			return err
		}
		return s.AddStringProperty(args[0], args[1], args[2])

	case "set-num":
		if err := need(3); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("set-num: %q is not a number", args[2])
		}
		return s.AddFloatProperty(args[0], args[1], v)

	case "names":
		if err := need(2); err != nil {
			return err
		}
		names, err := s.RelatedIndividualNames(args[0], args[1])
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(out, name)
		}
		return nil

	case "value":
		if err := need(2); err != nil {
			return err
		}
		v, err := s.PropertyValue(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, v.String())
		return nil

	case "query":
		if err := need(1); err != nil {
			return err
		}
		engine := query.NewEngine(s, metrics, logger)
		result, err := engine.ExecuteString(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, strings.Join(result.Vars, "\t"))
		for _, row := range result.Rows {
			cells := make([]string, len(row.Values))
			for i, v := range row.Values {
				cells[i] = v.String()
			}
			fmt.Fprintln(out, strings.Join(cells, "\t"))
		}
		return nil

	case "stats":
		if err := need(0); err != nil {
			return err
		}
		stats := s.Stats()
		fmt.Fprintf(out, "classes: %d\nindividuals: %d\nfacts: %d\n",
			stats.Classes, stats.Individuals, stats.Facts)
		return nil

	default:
		return fmt.Errorf("unknown operation %q", verb)
	}
}

func usage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Usage: %s -file <path> -ns <uri> [flags] <operation> [args...]

Operations:
  define-class <class>                       declare a class
  add <class> <name>                         add an individual
  remove <name>                              remove an individual (cascades)
  remove-prop <name> <property>              remove one property fact
  remove-related <name> <property>           remove all linked individuals
  relate <subject> <property> <object>       link two individuals
  set <name> <property> <string>             set a string property
  set-num <name> <property> <number>         set a numeric property
  names <name> <property>                    list linked individual names
  value <name> <property>                    print a property value
  query <SELECT ... WHERE { ... }>           run a pattern query
  stats                                      print store sizes

Flags:
`, appName)
	fs.PrintDefaults()
}
