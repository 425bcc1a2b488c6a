package main

import (
	"errors"
	"flag"
	"fmt"
)

// errFlagParse is returned after the flag package has already printed the problem.
var errFlagParse = errors.New("invalid flags")

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string, positional int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%s: %w", fs.Name(), errFlagParse)
	}
	if positional >= 0 && fs.NArg() != positional {
		return nil, usagef("%s: expected %d argument(s), got %d", fs.Name(), positional, fs.NArg())
	}
	return fs.Args(), nil
}

// formField binds a string flag to a draft field. Only flags given on the
// command line are applied, so edits keep the values they do not mention.
type formField[T any] struct {
	name  string
	usage string
	set   func(*T, string)
}

func defineForm[T any](fs *flag.FlagSet, fields []formField[T]) {
	for _, f := range fields {
		fs.String(f.name, "", f.usage)
	}
}

func applyForm[T any](fs *flag.FlagSet, fields []formField[T], draft *T) {
	byName := make(map[string]formField[T], len(fields))
	for _, f := range fields {
		byName[f.name] = f
	}
	fs.Visit(func(fl *flag.Flag) {
		if f, ok := byName[fl.Name]; ok {
			f.set(draft, fl.Value.String())
		}
	})
}

func flagGiven(fs *flag.FlagSet, name string) bool {
	given := false
	fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			given = true
		}
	})
	return given
}
