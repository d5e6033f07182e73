// Command dream daydreams with a randomly initialized CRBM layer: it runs
// a Gibbs chain from a random visible state and writes the reconstruction
// probabilities of every step to an animated GIF. No training happens;
// the point is to exercise and eyeball the sampling machinery.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gorgonia/crbm"
	crbmgif "github.com/gorgonia/crbm/encoding/gif"
	"github.com/gorgonia/crbm/internal/timing"
	"gorgonia.org/tensor"
)

var (
	nv    = flag.Int("nv", 16, "visible spatial size")
	nh    = flag.Int("nh", 12, "hidden spatial size")
	k     = flag.Int("k", 9, "number of filters")
	steps = flag.Int("steps", 30, "number of Gibbs steps")
	out   = flag.String("o", "dream.gif", "output file")
	seed  = flag.Int64("seed", 0, "rng seed (0 seeds from the clock)")
)

type snapshot struct {
	planes  *tensor.Dense
	epoch   int
	caption string
}

func (s snapshot) Planes() *tensor.Dense { return s.planes }
func (s snapshot) Epoch() int            { return s.epoch }
func (s snapshot) Caption() string       { return s.caption }

func main() {
	flag.Parse()

	conf := crbm.DefaultConf(1, *nv, *k, *nh)
	conf.Seed = *seed
	l, err := crbm.New(conf)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	l.Init()
	fmt.Println(l)

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	v1 := l.V1.Data().([]float32)
	for i := range v1 {
		if r.Float32() < 0.5 {
			v1[i] = 1
		}
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	enc := crbmgif.NewEncoder()
	enc.Writer = f

	for i := 0; i < *steps; i++ {
		if err := l.ActivateHidden(l.H1A, l.H1S, l.V1); err != nil {
			log.Fatalf("%+v", err)
		}
		if err := l.ActivateVisible(l.V2A, l.V2S, l.H1S); err != nil {
			log.Fatalf("%+v", err)
		}
		copy(v1, l.V2S.Data().([]float32))

		fe := l.FreeEnergyV1()
		fmt.Printf("step %d\tfree energy %.3f\n", i, fe)
		if err := enc.Encode(snapshot{
			planes:  l.V2A,
			epoch:   i,
			caption: fmt.Sprintf("free energy %.3f", fe),
		}); err != nil {
			log.Fatalf("%+v", err)
		}
	}
	if err := enc.Flush(); err != nil {
		log.Fatal(err)
	}

	timing.Report(os.Stdout)
}
