// Command capq queries the slate capability tables.
//
// Usage:
//
//	capq [options] [required-atoms...]
//
// Each positional argument is one accepted capability combination,
// written as atoms joined with "+". The query succeeds when the
// target plus the stage baseline of the configured profile implies
// any one of the combinations.
//
// Examples:
//
//	capq -list-atoms                               # Dump the atom table
//	capq -target vulkan1.1 -profile fs_6_0 ext_ray_query
//	capq -target-file minspec.toml spirv_1_4 ext_subgroup_ops+spirv_1_1
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/phuslu/log"

	"github.com/gogpu/slate/caps"
	"github.com/gogpu/slate/profile"
)

var (
	targetName  = flag.String("target", "vulkan1.0", "well-known target name")
	targetFile  = flag.String("target-file", "", "TOML target description (overrides -target)")
	profileName = flag.String("profile", "vs_6_0", "profile whose stage baseline is folded into the target")
	strict      = flag.Bool("strict", false, "exit non-zero when the requirement is not implied")
	listAtoms   = flag.Bool("list-atoms", false, "print the capability atom table")
	listTargets = flag.Bool("list-targets", false, "print the well-known target names")
	verbose     = flag.Bool("v", false, "enable trace logging")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	logger := log.Logger{Level: log.InfoLevel, Writer: &log.ConsoleWriter{ColorOutput: true}}
	if *verbose {
		logger.Level = log.DebugLevel
	}

	if *listAtoms {
		for _, atom := range caps.Atoms() {
			fmt.Println(atom)
		}
		return
	}
	if *listTargets {
		for _, name := range caps.TargetNames() {
			baseline, _ := caps.TargetBaseline(name)
			fmt.Printf("%-12s %s\n", name, baseline)
		}
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no required capabilities specified")
		usage()
		os.Exit(1)
	}

	prof, err := profile.Parse(*profileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	name := *targetName
	target, ok := caps.TargetBaseline(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown target %q (see -list-targets)\n", name)
		os.Exit(1)
	}
	if *targetFile != "" {
		name, target, err = caps.LoadTargetFile(*targetFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	required, err := parseRequired(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	effective := target.Join(prof.StageBaseline())
	logger.Debug().
		Str("target", name).
		Str("effective", effective.String()).
		Str("required", required.String()).
		Msg("implication query")

	if effective.ImpliesAny(required) == caps.Implied {
		fmt.Printf("%s (%s): implied\n", name, prof.Name())
		return
	}

	missing := required.Join(prof.StageBaseline()).PrimaryAlternative().
		Subtract(effective.PrimaryAlternative())
	fmt.Printf("%s (%s): not implied, missing %s\n", name, prof.Name(), missing)
	if *strict {
		os.Exit(1)
	}
}

// parseRequired turns "+"-joined atom groups into a capability set,
// one alternative per argument.
func parseRequired(args []string) (caps.Set, error) {
	alts := make([]caps.AtomSet, 0, len(args))
	for _, arg := range args {
		var set caps.AtomSet
		for _, name := range strings.Split(arg, "+") {
			atom, err := caps.ParseAtom(strings.TrimSpace(name))
			if err != nil {
				return caps.Set{}, err
			}
			set = set.With(atom)
		}
		alts = append(alts, set)
	}
	return caps.NewSet(alts...), nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: capq [options] [required-atoms...]\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  capq -list-atoms\n")
	fmt.Fprintf(os.Stderr, "  capq -target vulkan1.1 -profile fs_6_0 ext_ray_query\n")
	fmt.Fprintf(os.Stderr, "  capq -target-file minspec.toml spirv_1_4 ext_subgroup_ops+spirv_1_1\n")
}
