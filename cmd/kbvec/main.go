package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/google/gops/agent"
	"github.com/viant/kbvec/config"
	"github.com/viant/kbvec/service"
	"github.com/viant/kbvec/tool"
)

var version = "dev"

func main() {
	startGops()
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "query", "search":
		queryCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	case "version":
		fmt.Println(version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: kbvec <command> [options]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  query    Print the knowledge base passages nearest to a question")
	fmt.Fprintln(os.Stderr, "  search   Alias for query")
	fmt.Fprintln(os.Stderr, "  serve    Serve the lookup_knowledge MCP tool on stdio")
	fmt.Fprintln(os.Stderr, "  version  Print the version")
}

func queryCmd(args []string) {
	flags := flag.NewFlagSet("query", flag.ExitOnError)
	configPath := flags.String("config", "", "config yaml (optional)")
	kb := flags.String("kb", "", "knowledge base path or URL (overrides config)")
	k := flags.Int("k", 0, "number of passages (default from config)")
	verbosity := flags.Int("v", 0, "log verbosity")
	flags.Parse(args)

	question := strings.TrimSpace(strings.Join(flags.Args(), " "))
	if question == "" {
		flags.Usage()
		os.Exit(2)
	}
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := newService(ctx, *configPath, *kb, newLogger(*verbosity))
	defer func() { _ = srv.Close() }()
	topK := *k
	if topK == 0 {
		topK = srv.TopK()
	}
	text, err := srv.Lookup(ctx, question, topK)
	if err != nil {
		log.Fatalf("query: %v", err)
	}
	fmt.Println(text)
}

func serveCmd(args []string) {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := flags.String("config", "", "config yaml (optional)")
	kb := flags.String("kb", "", "knowledge base path or URL (overrides config)")
	verbosity := flags.Int("v", 0, "log verbosity")
	warm := flags.Bool("warm", false, "build the index before accepting calls")
	flags.Parse(args)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := newLogger(*verbosity)
	srv := newService(ctx, *configPath, *kb, logger)
	defer func() { _ = srv.Close() }()
	if *warm {
		if _, err := srv.Retriever(ctx); err != nil {
			log.Fatalf("serve: %v", err)
		}
	}
	mcpServer := tool.NewServer(tool.New(srv, logger.WithName("tool")), version)
	if err := tool.ServeStdio(mcpServer); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

func newService(ctx context.Context, configPath, kb string, logger logr.Logger) *service.Service {
	cfg, err := config.Load(ctx, nil, configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if kb != "" {
		cfg.KnowledgeBase = kb
	}
	return service.New(cfg, logger)
}

// newLogger logs to stderr; stdout carries query output and the MCP stream.
func newLogger(verbosity int) logr.Logger {
	stdr.SetVerbosity(verbosity)
	return stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("kbvec")
}

func startGops() {
	if err := agent.Listen(agent.Options{ShutdownCleanup: true}); err != nil {
		log.Printf("gops: %v", err)
	}
}
