package config

const (
	defaultSourceDir     = "data/predicted_wob_imgs"
	defaultAnnotationDir = "data/annotated_imgs"
	defaultCombinedDir   = "data/combined_imgs"
	defaultTrainDir      = "data/train"
	defaultValDir        = "data/val"
	defaultLogDir        = "~/.local/share/abprep/logs"
	defaultSplitRatio    = 0.8
	defaultJPEGQuality   = 95
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir:     defaultSourceDir,
			AnnotationDir: defaultAnnotationDir,
			CombinedDir:   defaultCombinedDir,
			TrainDir:      defaultTrainDir,
			ValDir:        defaultValDir,
			LogDir:        defaultLogDir,
		},
		Split: Split{
			Ratio:        defaultSplitRatio,
			Seed:         0,
			VerifyCopies: true,
		},
		Pairing: Pairing{
			JPEGQuality: defaultJPEGQuality,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
