package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"trpgdice/internal/check"
	"trpgdice/internal/command"
	"trpgdice/internal/config"
	"trpgdice/internal/dice"
	"trpgdice/internal/random"
	"trpgdice/internal/session"
	"trpgdice/internal/sheet"
	"trpgdice/internal/sheetpdf"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run reads command lines from in until EOF and writes one reply per line
// to out. Diagnostics go to errOut.
func run(args []string, in io.Reader, out, errOut io.Writer) int {
	logger := log.New(errOut, "", 0)

	flags := flag.NewFlagSet("trpgdice", flag.ContinueOnError)
	flags.SetOutput(errOut)
	cfg, err := config.ParseConfig(flags, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		logger.Printf("config: %v", err)
		return 2
	}

	seed, err := random.ResolveSeed(cfg.Seed)
	if err != nil {
		logger.Printf("seed: %v", err)
		return 1
	}
	engine := dice.New(cfg.Dice(), dice.WithSource(dice.NewLockedSource(dice.NewSeededSource(seed))))

	templates, err := sheet.NewRegistry(engine)
	if err != nil {
		logger.Printf("templates: %v", err)
		return 1
	}
	if cfg.TemplatesDir != "" {
		if err := templates.LoadDir(cfg.TemplatesDir); err != nil {
			logger.Printf("templates: %v", err)
			return 1
		}
	}

	store := session.NewMemoryStore[sheet.Character]()
	user := cfg.User
	if user == "" {
		user = store.NewID()
	}

	router, err := command.New(command.Deps{
		Engine:    engine,
		Judge:     check.New(engine),
		Templates: templates,
		Store:     store,
		Language:  cfg.Language(),
	})
	if err != nil {
		logger.Printf("commands: %v", err)
		return 1
	}

	ctx := context.Background()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		reply, err := router.Handle(ctx, user, line)
		if err != nil {
			if !errors.Is(err, command.ErrUsage) {
				logger.Printf("%q: %v", line, err)
			}
			reply = router.Describe(err)
		}
		if reply != "" {
			fmt.Fprintln(out, reply)
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Printf("read input: %v", err)
		return 1
	}

	if cfg.Export != "" {
		if err := export(ctx, router, user, cfg.Export); err != nil {
			logger.Printf("export: %v", err)
			return 1
		}
	}
	return 0
}

func export(ctx context.Context, router *command.Router, user, path string) error {
	ch, ok, err := router.Active(ctx, user)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("no active character")
	}
	b, err := sheetpdf.Render(ch)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Clean(path), b, 0o600)
}
