package config

const (
	defaultDescription      = "LUFT data intake thresholds"
	defaultRawDataDir       = "~/.local/share/luft/raw_csv"
	defaultSummariesDir     = "~/.local/share/luft/summaries"
	defaultCapsulesDir      = "~/.local/share/luft/capsules"
	defaultLogDir           = "~/.local/share/luft/logs"
	defaultDBPath           = "~/.local/share/luft/runs.db"
	defaultMasterIndex      = "manifest_master_index.yaml"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultMinCompleteness  = 0.95
	defaultMaxMissingValues = 0.05
	defaultMinSampleSize    = 100
	defaultMaxOutlierRatio  = 0.02
	defaultBatchSize        = 1000
	defaultMaxMemoryMB      = 4096
	defaultParallelThreads  = 4
	defaultChunkSize        = 500
	defaultMinFrequencyHz   = 1e6
	defaultMaxFrequencyHz   = 1e12
	defaultSampleRateHz     = 1e9
	defaultBandwidthHz      = 1e8
	defaultMinLattice       = 0.1
	defaultMaxLattice       = 100.0
	defaultEnergyThreshold  = 1e-6
	defaultPrecision        = 1e-10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Version:     SchemaVersion,
		Description: defaultDescription,
		DataQuality: DataQuality{
			MinCompleteness:  defaultMinCompleteness,
			MaxMissingValues: defaultMaxMissingValues,
			MinSampleSize:    defaultMinSampleSize,
			MaxOutlierRatio:  defaultMaxOutlierRatio,
		},
		Validation: Validation{
			NumericRangeCheck:     true,
			CategoricalValidation: true,
			TemporalConsistency:   true,
			DuplicateDetection:    true,
		},
		Processing: Processing{
			BatchSize:       defaultBatchSize,
			MaxMemoryMB:     defaultMaxMemoryMB,
			ParallelThreads: defaultParallelThreads,
			ChunkSize:       defaultChunkSize,
		},
		RadioFrequency: RadioFrequency{
			MinFrequencyHz: defaultMinFrequencyHz,
			MaxFrequencyHz: defaultMaxFrequencyHz,
			SampleRateHz:   defaultSampleRateHz,
			BandwidthHz:    defaultBandwidthHz,
		},
		LatticeParameters: LatticeParameters{
			MinLatticeConstant: defaultMinLattice,
			MaxLatticeConstant: defaultMaxLattice,
			EnergyThreshold:    defaultEnergyThreshold,
			Precision:          defaultPrecision,
		},
		Paths: Paths{
			RawDataDir:   defaultRawDataDir,
			SummariesDir: defaultSummariesDir,
			CapsulesDir:  defaultCapsulesDir,
			LogDir:       defaultLogDir,
			DBPath:       defaultDBPath,
			IndexRoots:   []string{"."},
			MasterIndex:  defaultMasterIndex,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
