// Command perft enumerates the legal move tree from a position to a fixed
// depth and reports leaf counts, optionally broken down per root move.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"chesskernel/internal/board"
	"chesskernel/internal/perft"
)

var (
	fen       = flag.String("fen", board.StartFEN, "FEN of the position to search, or the literal \"startpos\"")
	depth     = flag.Int("depth", 5, "search depth in plies")
	divide    = flag.Bool("divide", false, "report leaf counts per root move")
	cacheDir  = flag.String("cache", "", "directory for a persistent node-count cache; disabled if empty")
	parallel  = flag.Bool("parallel", true, "search root moves concurrently when dividing")
)

func main() {
	flag.Parse()

	if *fen == "startpos" {
		*fen = board.StartFEN
	}
	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("invalid FEN %q: %v", *fen, err)
	}

	var cache *perft.Cache
	if *cacheDir != "" {
		cache, err = perft.OpenCache(*cacheDir)
		if err != nil {
			log.Fatalf("opening cache: %v", err)
		}
		defer cache.Close()
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if *divide {
		if err := runDivide(pos, *depth, cache, out); err != nil {
			log.Fatalf("divide: %v", err)
		}
		return
	}

	var nodes int64
	if cache != nil {
		nodes, err = perft.CountCached(cache, pos, *depth)
		if err != nil {
			log.Fatalf("count: %v", err)
		}
	} else {
		nodes = perft.Count(pos, *depth)
	}
	fmt.Fprintf(out, "Nodes searched: %d\n", nodes)
}

// runDivide prints one "<move>: <count>" line per legal root move followed
// by the total, optionally computing the per-move counts concurrently
// since each root move's subtree is independent once the move is made on
// its own copy of the position.
func runDivide(pos *board.Position, depth int, cache *perft.Cache, out *bufio.Writer) error {
	if !*parallel || cache != nil {
		_, err := perft.Divide(pos, depth, out)
		return err
	}

	moves := pos.GenerateLegalMoves()
	results := make([]perft.RootDivide, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		results[i].Move = moves.Get(i)
	}

	if depth == 0 {
		fmt.Fprintf(out, "Nodes searched: 1\n")
		return nil
	}

	var mu sync.Mutex
	var g errgroup.Group
	for i := range results {
		i := i
		g.Go(func() error {
			child := pos.Copy()
			undo := child.Make(results[i].Move)
			nodes := perft.Count(child, depth-1)
			child.Unmake(results[i].Move, undo)

			mu.Lock()
			results[i].Nodes = nodes
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var total int64
	for _, r := range results {
		fmt.Fprintf(out, "%s: %d\n", r.Move.String(), r.Nodes)
		total += r.Nodes
	}
	fmt.Fprintf(out, "Nodes searched: %d\n", total)
	return nil
}
