package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/limaJavier/coursegrid/pkg/model"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	OutputDir string

	Log       LogConfig
	Scheduler SchedulerConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// SchedulerConfig carries the tunables of both placement engines.
type SchedulerConfig struct {
	Seed               uint64
	Strategy           string
	MaxClassesPerDay   int
	MinClassesPerDay   int
	StudentsPerSection uint64
	CoreAttempts       int
	ElectiveAttempts   int
	OverbookMarker     string
	ElectiveRoomLedger bool
}

// Load reads the configuration from a .env file in the working directory, when present, and the environment
func Load() (*Config, error) {
	return LoadFile(".env")
}

func LoadFile(path string) (*Config, error) {
	_ = godotenv.Load(path)

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("SERVER_PORT")
	cfg.OutputDir = v.GetString("OUTPUT_DIR")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Scheduler = SchedulerConfig{
		Seed:               v.GetUint64("SEED"),
		Strategy:           strings.ToLower(strings.TrimSpace(v.GetString("STRATEGY"))),
		MaxClassesPerDay:   v.GetInt("MAX_CLASSES_PER_DAY"),
		MinClassesPerDay:   v.GetInt("MIN_CLASSES_PER_DAY"),
		StudentsPerSection: v.GetUint64("STUDENTS_PER_SECTION"),
		CoreAttempts:       v.GetInt("CORE_ATTEMPTS"),
		ElectiveAttempts:   v.GetInt("ELECTIVE_ATTEMPTS"),
		OverbookMarker:     v.GetString("OVERBOOK_MARKER"),
		ElectiveRoomLedger: v.GetBool("ELECTIVE_ROOM_LEDGER"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := model.DefaultParameters()

	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("OUTPUT_DIR", "./output")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("SEED", defaults.Seed)
	v.SetDefault("STRATEGY", string(defaults.Strategy))
	v.SetDefault("MAX_CLASSES_PER_DAY", defaults.MaxClassesPerDay)
	v.SetDefault("MIN_CLASSES_PER_DAY", defaults.MinClassesPerDay)
	v.SetDefault("STUDENTS_PER_SECTION", defaults.StudentsPerSection)
	v.SetDefault("CORE_ATTEMPTS", defaults.CoreAttempts)
	v.SetDefault("ELECTIVE_ATTEMPTS", defaults.ElectiveAttempts)
	v.SetDefault("OVERBOOK_MARKER", defaults.OverbookMarker)
	v.SetDefault("ELECTIVE_ROOM_LEDGER", defaults.ElectiveRoomLedger)
}

// Parameters converts the scheduler configuration into validated engine parameters
func (cfg *Config) Parameters() (model.Parameters, error) {
	params := model.DefaultParameters()
	params.Seed = cfg.Scheduler.Seed
	params.Strategy = model.Strategy(cfg.Scheduler.Strategy)
	params.MaxClassesPerDay = cfg.Scheduler.MaxClassesPerDay
	params.MinClassesPerDay = cfg.Scheduler.MinClassesPerDay
	params.StudentsPerSection = cfg.Scheduler.StudentsPerSection
	params.CoreAttempts = cfg.Scheduler.CoreAttempts
	params.ElectiveAttempts = cfg.Scheduler.ElectiveAttempts
	params.OverbookMarker = cfg.Scheduler.OverbookMarker
	params.ElectiveRoomLedger = cfg.Scheduler.ElectiveRoomLedger

	if err := params.Validate(); err != nil {
		return model.Parameters{}, err
	}
	return params, nil
}
