package mlp

// Config configures the neural network
type Config struct {
	Lambda       float64 // steepness of the tanh activation
	LearningRate float64 // eta, default for every neuron
	Momentum     float64 // alpha, default for every neuron

	SmoothingWindow float64 // number of samples the running mean error is averaged over
}

// DefaultConf returns the configuration the network was originally tuned with.
func DefaultConf() Config {
	return Config{
		Lambda:          1.0,
		LearningRate:    0.15,
		Momentum:        0.5,
		SmoothingWindow: 100.0,
	}
}

func (conf Config) IsValid() bool {
	return conf.Lambda > 0 &&
		conf.LearningRate > 0 &&
		conf.Momentum >= 0 &&
		conf.SmoothingWindow >= 0
}
