// Command dna prints, creates and inspects pet DNA strings.
//
//	dna new -archetype Intellectual -seed 7
//	dna decode <dna>
//	dna pet -db nadagotchi.db [-slot main]
//	dna hall -db nadagotchi.db [-limit 10]
//
// DNA is signed with NADAGOTCHI_DNA_SALT.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	"github.com/pthm-cable/nadagotchi/config"
	"github.com/pthm-cable/nadagotchi/genetics"
	"github.com/pthm-cable/nadagotchi/storage"
	"github.com/pthm-cable/nadagotchi/traits"
)

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
	}
	env, err := config.LoadEnv()
	if err != nil {
		log.Fatal(err)
	}

	args := os.Args[2:]
	switch os.Args[1] {
	case "new":
		err = cmdNew(args, env.DNASalt)
	case "decode":
		err = cmdDecode(args, env.DNASalt)
	case "pet":
		err = cmdPet(args, env)
	case "hall":
		err = cmdHall(args, env)
	default:
		usage()
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: dna new|decode|pet|hall [flags]")
	os.Exit(2)
}

func cmdNew(args []string, salt string) error {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config.yaml (empty = use defaults)")
	archetype := fs.String("archetype", "Adventurer", "Starter archetype")
	seed := fs.Uint64("seed", 1, "RNG seed")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	a, ok := traits.ParseArchetype(*archetype)
	if !ok {
		return fmt.Errorf("unknown archetype %q", *archetype)
	}
	rng := rand.New(rand.NewPCG(*seed, *seed))
	dna, err := genetics.Encode(genetics.NewGenome(a, cfg.Genetics, rng), salt)
	if err != nil {
		return err
	}
	fmt.Println(dna)
	return nil
}

func cmdDecode(args []string, salt string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("decode takes one DNA string")
	}
	g, err := genetics.Decode(fs.Arg(0), salt)
	if err != nil {
		return err
	}
	return printJSON(struct {
		Genotype  genetics.Genotype  `json:"genotype"`
		Phenotype genetics.Phenotype `json:"phenotype"`
	}{g.Genotype(), g.CalculatePhenotype()})
}

func cmdPet(args []string, env config.Env) error {
	fs := flag.NewFlagSet("pet", flag.ExitOnError)
	dbPath := fs.String("db", env.DBPath, "SQLite database")
	slot := fs.String("slot", storage.DefaultSlot, "Save slot")
	fs.Parse(args)

	ctx := context.Background()
	store, err := storage.Open(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	session, err := store.LoadSession(ctx, *slot)
	if err != nil {
		return err
	}
	if session.Pet.Genome == nil {
		return fmt.Errorf("saved pet has no genome")
	}
	g, err := genetics.FromGenotype(*session.Pet.Genome)
	if err != nil {
		return err
	}
	dna, err := genetics.Encode(g, env.DNASalt)
	if err != nil {
		return err
	}
	fmt.Println(dna)
	return nil
}

func cmdHall(args []string, env config.Env) error {
	fs := flag.NewFlagSet("hall", flag.ExitOnError)
	dbPath := fs.String("db", env.DBPath, "SQLite database")
	limit := fs.Int("limit", 10, "Entries to list")
	fs.Parse(args)

	ctx := context.Background()
	store, err := storage.Open(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.HallOfFame(ctx, *limit)
	if err != nil {
		return err
	}
	return printJSON(entries)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
