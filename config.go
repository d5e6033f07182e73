package crbm

// Config configures a convolutional RBM layer.
type Config struct {
	NC       int // number of input channels
	NV1, NV2 int // visible spatial dimensions
	K        int // number of filters
	NH1, NH2 int // hidden spatial dimensions

	BatchSize int      // batch size hint for the batched entry points
	Hidden    UnitType // hidden unit family
	Visible   UnitType // visible unit family

	Serial bool  // run batched activations on the calling goroutine
	Seed   int64 // RNG seed. 0 means seed from the clock
}

// DefaultConf describes a layer with square visible and hidden maps,
// binary units on both sides and the stock batch size.
func DefaultConf(nc, nv, k, nh int) Config {
	return Config{
		NC:  nc,
		NV1: nv, NV2: nv,
		K:   k,
		NH1: nh, NH2: nh,

		BatchSize: 25,
		Hidden:    Binary,
		Visible:   Binary,
	}
}

// IsValid reports whether the configuration describes a usable layer.
// Init does not call this; a degenerate kernel size (NH > NV) is accepted
// silently and surfaces downstream.
func (conf Config) IsValid() bool {
	return conf.NC >= 1 &&
		conf.NV1 >= 1 && conf.NV2 >= 1 &&
		conf.K >= 1 &&
		conf.NH1 >= 1 && conf.NH2 >= 1 &&
		conf.NH1 <= conf.NV1 && conf.NH2 <= conf.NV2 &&
		conf.BatchSize >= 1
}
