// Command kvmemo-server runs the engine behind a minimal line-oriented
// TCP protocol and an HTTP /metrics endpoint, the concrete consumer of
// Config's listen_port/max_connections/worker_threads fields. The
// protocol here is intentionally minimal: it exists to exercise the
// engine end to end, not to be a serious substitute for a real
// client/server contract.
package main

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v3"

	"github.com/Gagan2004bansal/KVMemo/config"
	"github.com/Gagan2004bansal/KVMemo/engine"
	"github.com/Gagan2004bansal/KVMemo/logging"
	pmet "github.com/Gagan2004bansal/KVMemo/metrics/prom"
	"github.com/Gagan2004bansal/KVMemo/sweeper"
)

func main() {
	cmd := &cli.Command{
		Name:  "kvmemo-server",
		Usage: "run the kvmemo sharded key/value engine as a TCP service",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a YAML or JSON config file"},
			&cli.IntFlag{Name: "port", Usage: "override listen_port"},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "trace|debug|info|warn|error"},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := engine.DefaultConfig()
	if path := cmd.String("config"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		format := config.FormatYAML
		if strings.HasSuffix(path, ".json") {
			format = config.FormatJSON
		}
		cfg, err = config.Load(data, format)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if p := cmd.Int("port"); p != 0 {
		cfg.ListenPort = int(p)
	}

	log := logging.New(os.Stderr, parseLevel(cmd.String("log-level")))

	var opts []engine.Option
	if cfg.EnableMetrics {
		opts = append(opts, engine.WithMetrics(pmet.New(nil, "kvmemo", "server", nil)))
	}
	e, err := engine.New(cfg, opts...)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	if cfg.EnableTTL {
		sw, err := sweeper.New(e, time.Duration(cfg.TTLSweepIntervalMs)*time.Millisecond, log)
		if err != nil {
			return fmt.Errorf("build sweeper: %w", err)
		}
		sw.Start()
		defer func() { <-sw.Stop().Done() }()
	}

	if cfg.EnableMetrics {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			log.Info("metrics: serving", "addr", ":9090")
			log.Error("metrics server stopped", "error", http.ListenAndServe(":9090", mux))
		}()
	}

	addr := ":" + strconv.Itoa(cfg.ListenPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	log.Info("kvmemo: listening", "addr", addr)

	// sem admits at most MaxConnections connections at a time; a fixed
	// pool of WorkerThreads goroutines (0 = one per CPU) drains the
	// admitted connections, so the two fields bound two different
	// things: how many connections may be outstanding, and how many of
	// them are served concurrently.
	workerCount := cfg.WorkerThreads
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	sem := make(chan struct{}, cfg.MaxConnections)
	conns := make(chan net.Conn)
	for i := 0; i < workerCount; i++ {
		go func() {
			for conn := range conns {
				handleConn(conn, e, log)
				<-sem
			}
		}()
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Error("accept failed", "error", err)
			continue
		}
		sem <- struct{}{}
		conns <- conn
	}
}

func parseLevel(s string) logging.Level {
	switch strings.ToLower(s) {
	case "trace":
		return logging.LevelTrace
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

// handleConn serves one connection's line-oriented commands:
//
//	SET <key> <value>
//	SETTTL <key> <ttl_ms> <value>
//	GET <key>
//	DEL <key>
func handleConn(conn net.Conn, e *engine.Engine, log *logging.Logger) {
	defer conn.Close()
	scanner := bufio.NewScanner(conn)
	w := bufio.NewWriter(conn)
	defer w.Flush()

	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.SplitN(line, " ", 4)
		if len(fields) == 0 {
			continue
		}
		switch strings.ToUpper(fields[0]) {
		case "SET":
			if len(fields) != 3 {
				fmt.Fprintln(w, "ERROR usage: SET <key> <value>")
				break
			}
			if err := e.Set([]byte(fields[1]), []byte(fields[2])); err != nil {
				fmt.Fprintln(w, "ERROR", err)
				break
			}
			fmt.Fprintln(w, "OK")
		case "SETTTL":
			if len(fields) != 4 {
				fmt.Fprintln(w, "ERROR usage: SETTTL <key> <ttl_ms> <value>")
				break
			}
			ttl, err := strconv.ParseUint(fields[2], 10, 64)
			if err != nil {
				fmt.Fprintln(w, "ERROR invalid ttl_ms")
				break
			}
			if err := e.SetWithTTL([]byte(fields[1]), []byte(fields[3]), ttl); err != nil {
				fmt.Fprintln(w, "ERROR", err)
				break
			}
			fmt.Fprintln(w, "OK")
		case "GET":
			if len(fields) != 2 {
				fmt.Fprintln(w, "ERROR usage: GET <key>")
				break
			}
			v, ok := e.Get([]byte(fields[1]))
			if !ok {
				fmt.Fprintln(w, "NOTFOUND")
				break
			}
			fmt.Fprintln(w, "VALUE", string(v))
		case "DEL":
			if len(fields) != 2 {
				fmt.Fprintln(w, "ERROR usage: DEL <key>")
				break
			}
			if e.Delete([]byte(fields[1])) {
				fmt.Fprintln(w, "OK")
			} else {
				fmt.Fprintln(w, "NOTFOUND")
			}
		default:
			fmt.Fprintln(w, "ERROR unknown command")
		}
		w.Flush()
	}
	if err := scanner.Err(); err != nil {
		log.Debug("connection closed with error", "error", err)
	}
}
