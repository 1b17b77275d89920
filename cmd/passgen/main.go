package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/vaultpass/passforge/internal/crypto"
)

// Config holds the parsed CLI flags.
type Config struct {
	Length      int
	Count       int
	Lowercase   bool
	Uppercase   bool
	Numeric     bool
	Special     bool
	MaxAttempts int
	MinLength   int
	MaxLength   int
	Seed        uint64
	Seeded      bool
	Hash        bool
}

// ParseFlags registers and parses command-line flags on fs, so tests can
// call it without touching the global flag state.
func ParseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config

	fs.IntVar(&cfg.Length, "length", crypto.DefaultLength, "Password length")
	fs.IntVar(&cfg.Count, "count", 1, "Number of passwords to generate")
	fs.BoolVar(&cfg.Lowercase, "lower", true, "Require lowercase letters (a-z)")
	fs.BoolVar(&cfg.Uppercase, "upper", true, "Require uppercase letters (A-Z)")
	fs.BoolVar(&cfg.Numeric, "numeric", true, "Require digits (0-9)")
	fs.BoolVar(&cfg.Special, "special", true, `Require special characters (!#$%&*@\)`)
	fs.IntVar(&cfg.MaxAttempts, "attempts", crypto.DefaultMaxAttempts, "Maximum generation attempts per password")
	fs.IntVar(&cfg.MinLength, "min", crypto.MinLength, "Minimum allowed length")
	fs.IntVar(&cfg.MaxLength, "max", crypto.MaxLength, "Maximum allowed length")
	fs.Uint64Var(&cfg.Seed, "seed", 0, "Deterministic seed (testing only, output is predictable)")
	fs.BoolVar(&cfg.Hash, "hash", false, "Also print the Argon2id hash of each password")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.Seeded = true
		}
	})
	return cfg, nil
}

// Settings maps the flags onto generator settings.
func (c Config) Settings() crypto.Settings {
	s := crypto.CustomSettings(false, false, false, false, c.Length, c.MaxAttempts).
		WithBounds(c.MinLength, c.MaxLength)
	if c.Lowercase {
		s = s.IncludeLowercase()
	}
	if c.Uppercase {
		s = s.IncludeUppercase()
	}
	if c.Numeric {
		s = s.IncludeNumeric()
	}
	if c.Special {
		s = s.IncludeSpecial()
	}
	return s
}

// Run generates cfg.Count passwords, one per line on stdout. Failures are
// reported on stderr and make the exit code non-zero.
func Run(cfg Config, stdout, stderr io.Writer) int {
	if cfg.Count < 1 {
		cfg.Count = 1
	}

	var opts []crypto.GeneratorOption
	if cfg.Seeded {
		opts = append(opts, crypto.WithSource(crypto.NewSeededSource(cfg.Seed)))
	}
	gen := crypto.NewGenerator(cfg.Settings(), opts...)

	var hasher *crypto.Hasher
	if cfg.Hash {
		hasher = crypto.NewHasher(crypto.DefaultHashParams())
	}

	code := 0
	for _, r := range gen.NextGroup(cfg.Count) {
		if r.Err != nil {
			fmt.Fprintf(stderr, "error: %v\n", r.Err)
			if crypto.IsConfigError(r.Err) {
				return 2
			}
			code = 1
			continue
		}
		if hasher == nil {
			fmt.Fprintln(stdout, r.Password)
			continue
		}
		h, err := hasher.Hash(r.Password)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "%s\t%s\n", r.Password, h)
	}
	return code
}

func main() {
	cfg, err := ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	os.Exit(Run(cfg, os.Stdout, os.Stderr))
}
