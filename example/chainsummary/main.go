package main

import (
	"flag"
	"log"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/carbocation/pfx"
	"github.com/oncoplume/thet"
	_ "github.com/mattn/go-sqlite3"
)

// Accumulator keeps running sums over chain records so means can be printed
// at the end.
type Accumulator struct {
	N                   int
	Concentration       float64
	AveragedPloidy      float64
	PopulationFractions []float64
}

func (a *Accumulator) Add(o Accumulator) {
	a.N += o.N
	a.Concentration += o.Concentration
	a.AveragedPloidy += o.AveragedPloidy
	if len(o.PopulationFractions) > len(a.PopulationFractions) {
		grown := make([]float64, len(o.PopulationFractions))
		copy(grown, a.PopulationFractions)
		a.PopulationFractions = grown
	}
	for i := range o.PopulationFractions {
		a.PopulationFractions[i] += o.PopulationFractions[i]
	}
}

func main() {
	path := flag.String("chain", "", "Filename of the chain index to summarize")
	burnin := flag.Int("burnin", 0, "Number of leading iterations to discard")
	flag.Parse()

	if *path == "" {
		flag.PrintDefaults()
		log.Fatalln("No chain index found")
	}

	if strings.HasPrefix(*path, "~/") {
		usr, err := user.Current()
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		*path = filepath.Join(usr.HomeDir, (*path)[2:])
	}

	ci, err := thet.OpenChainIndex(*path)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	defer ci.Close()
	log.Printf("Chain metadata: %+v\n", ci.Metadata)
	log.Println("SQLite driver:", thet.WhichSQLiteDriver())

	records, err := ci.Records()
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	if len(records) <= *burnin {
		log.Fatalln("Chain has", len(records), "records, burnin of", *burnin, "leaves nothing to summarize")
	}

	work := make(chan thet.ChainRecord)
	output := make(chan Accumulator)

	log.Println("Launching", runtime.NumCPU(), "workers")
	var workers sync.WaitGroup
	for i := 0; i < runtime.NumCPU(); i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			local := Accumulator{}
			for record := range work {
				fractions, err := thet.DecodePopulationFractions(record)
				if err != nil {
					log.Fatalln(pfx.Err(err))
				}
				local.Add(Accumulator{
					N:                   1,
					Concentration:       record.Concentration,
					AveragedPloidy:      record.AveragedPloidy,
					PopulationFractions: fractions,
				})
			}
			output <- local
		}()
	}
	go func() {
		workers.Wait()
		close(output)
	}()

	go func() {
		for _, record := range records[*burnin:] {
			work <- record
		}
		close(work)
	}()

	total := Accumulator{}
	for local := range output {
		total.Add(local)
	}

	n := float64(total.N)
	log.Println("Summarized", total.N, "records after burnin")
	log.Printf("Posterior mean concentration:   %.6f\n", total.Concentration/n)
	log.Printf("Posterior mean averaged ploidy: %.6f\n", total.AveragedPloidy/n)
	for i, sum := range total.PopulationFractions {
		label := "variant"
		if i == len(total.PopulationFractions)-1 {
			label = "normal"
		}
		log.Printf("Posterior mean fraction, population %d (%s): %.6f\n", i, label, sum/n)
	}
}
