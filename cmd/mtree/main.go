// Command mtree is a small harness around the M-Tree index. It seeds a set
// of random points (or loads them from a SQLite database), runs one range
// query and one kNN query, and can dump the tree structure or cross-check
// the results against an exhaustive scan.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/xd009642/m-tree/bruteforce"
	"github.com/xd009642/m-tree/metric"
	"github.com/xd009642/m-tree/mtree"
	"github.com/xd009642/m-tree/store"
)

func main() {
	app := &cli.App{
		Name:  "mtree",
		Usage: "build an M-Tree over a point set and run similarity queries",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Usage: "load points from this SQLite database instead of seeding"},
			&cli.IntFlag{Name: "count", Value: 15, Usage: "number of random points to seed"},
			&cli.IntFlag{Name: "dim", Value: 1, Usage: "dimensionality of seeded points"},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "random seed for point generation"},
			&cli.IntFlag{Name: "capacity", Value: mtree.DefaultCapacity, Usage: "node capacity"},
			&cli.StringFlag{Name: "query", Value: "60", Usage: "comma-separated query point"},
			&cli.Float64Flag{Name: "radius", Value: 10, Usage: "range query radius"},
			&cli.IntFlag{Name: "k", Value: 3, Usage: "neighbour count for the kNN query"},
			&cli.BoolFlag{Name: "dump", Usage: "print the tree structure"},
			&cli.BoolFlag{Name: "verify", Usage: "cross-check results against an exhaustive scan"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	recs, err := loadRecords(c)
	if err != nil {
		return err
	}
	q, err := parsePoint(c.String("query"))
	if err != nil {
		return err
	}

	tree := store.BuildTree(recs, mtree.WithCapacity(c.Int("capacity")))
	radius := float32(c.Float64("radius"))
	k := c.Int("k")

	ids := tree.Range(q, radius)
	sort.Strings(ids)
	fmt.Printf("range(%s, %v): %s\n", c.String("query"), radius, strings.Join(ids, ", "))

	nn := tree.KNN(q, k)
	for _, n := range nn {
		fmt.Printf("knn: %s at %v\n", n.ID, n.Distance)
	}

	if c.Bool("verify") {
		if err := verify(recs, q, radius, k, ids, nn); err != nil {
			return err
		}
		fmt.Println("verified against exhaustive scan")
	}
	if c.Bool("dump") {
		tree.Dump(os.Stdout)
	}
	return nil
}

func loadRecords(c *cli.Context) ([]store.Record, error) {
	if dsn := c.String("db"); dsn != "" {
		db, err := store.Open(dsn)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		st, err := store.New(db)
		if err != nil {
			return nil, err
		}
		return st.Load(c.Context)
	}
	rng := rand.New(rand.NewSource(c.Int64("seed")))
	dim := c.Int("dim")
	recs := make([]store.Record, c.Int("count"))
	for i := range recs {
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = rng.Float32() * 100
		}
		recs[i] = store.Record{ID: strconv.Itoa(i), Vector: vec}
	}
	return recs, nil
}

func parsePoint(s string) (*metric.Point, error) {
	parts := strings.Split(s, ",")
	vec := make([]float32, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("invalid query point %q: %w", s, err)
		}
		vec = append(vec, float32(f))
	}
	return metric.NewPoint(vec...), nil
}

func verify(recs []store.Record, q *metric.Point, radius float32, k int, gotRange []string, gotNN []mtree.Neighbor[string, float32]) error {
	brecs := make([]bruteforce.Record, len(recs))
	for i, r := range recs {
		brecs[i] = bruteforce.Record{ID: r.ID, Point: metric.NewPoint(r.Vector...)}
	}
	var idx bruteforce.Index
	idx.Build(brecs)

	wantRange := idx.Range(q, radius)
	sort.Strings(wantRange)
	if strings.Join(wantRange, ",") != strings.Join(gotRange, ",") {
		return fmt.Errorf("range mismatch: tree %v, scan %v", gotRange, wantRange)
	}

	_, wantDists := idx.KNN(q, k)
	if len(wantDists) != len(gotNN) {
		return fmt.Errorf("knn count mismatch: tree %d, scan %d", len(gotNN), len(wantDists))
	}
	for i := range gotNN {
		if gotNN[i].Distance != wantDists[i] {
			return fmt.Errorf("knn distance mismatch at %d: tree %v, scan %v", i, gotNN[i].Distance, wantDists[i])
		}
	}
	return nil
}
