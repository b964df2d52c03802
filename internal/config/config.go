package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Hardware modes.
const (
	ModeSim = "sim"
	ModeI2C = "i2c"
)

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Console  ConsoleConfig  `mapstructure:"console"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Session  SessionConfig  `mapstructure:"session"`
	Tick     TickConfig     `mapstructure:"tick"`
	Curtain  CurtainConfig  `mapstructure:"curtain"`
	Hardware HardwareConfig `mapstructure:"hardware"`
	RTC      RTCConfig      `mapstructure:"rtc"`
	DB       DBConfig       `mapstructure:"db"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
}

// ConsoleConfig selects the operator console. An empty Port means the
// process's own stdin/stdout.
type ConsoleConfig struct {
	Port string `mapstructure:"port"`
	Baud int    `mapstructure:"baud"`
	CRLF bool   `mapstructure:"crlf"`
}

type AuthConfig struct {
	Password     string `mapstructure:"password"`
	PasswordHash string `mapstructure:"password_hash"`
}

type SessionConfig struct {
	TimeoutTicks int `mapstructure:"timeout_ticks"`
}

type TickConfig struct {
	Period time.Duration `mapstructure:"period"`
}

type CurtainConfig struct {
	FullCycles int           `mapstructure:"full_cycles"`
	PhaseDelay time.Duration `mapstructure:"phase_delay"`
}

type HardwareConfig struct {
	Mode        string `mapstructure:"mode"`
	I2CBus      string `mapstructure:"i2c_bus"`
	DisplayAddr uint8  `mapstructure:"display_addr"`
	RTCAddr     uint8  `mapstructure:"rtc_addr"`
	MotorAddr   uint8  `mapstructure:"motor_addr"`
	PWMPath     string `mapstructure:"pwm_path"`
	PWMPeriodNs int64  `mapstructure:"pwm_period_ns"`
}

// RTCConfig.Seed uses the console's "HH:MM:SS MM/DD/YY" layout.
type RTCConfig struct {
	Seed string `mapstructure:"seed"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("console.baud", 9600)
	v.SetDefault("console.crlf", true)
	v.SetDefault("auth.password", "1234")
	v.SetDefault("session.timeout_ticks", 60)
	v.SetDefault("tick.period", time.Second)
	v.SetDefault("curtain.full_cycles", 9)
	v.SetDefault("curtain.phase_delay", 50*time.Millisecond)
	v.SetDefault("hardware.mode", ModeSim)
	v.SetDefault("hardware.i2c_bus", "/dev/i2c-1")
	v.SetDefault("hardware.display_addr", 0x23)
	v.SetDefault("hardware.rtc_addr", 0x68)
	v.SetDefault("hardware.motor_addr", 0x20)
	v.SetDefault("hardware.pwm_path", "/sys/class/pwm/pwmchip0/pwm0")
	v.SetDefault("hardware.pwm_period_ns", 1_000_000)
}

// Load reads config.yml from dir. A missing file is not an error; the
// defaults describe the stock node.
func Load(dir string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config in %q: %w", dir, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Hardware.Mode {
	case ModeSim, ModeI2C:
	default:
		return fmt.Errorf("invalid hardware.mode %q: must be %s or %s", c.Hardware.Mode, ModeSim, ModeI2C)
	}
	if c.Session.TimeoutTicks <= 0 {
		return errors.New("session.timeout_ticks must be > 0")
	}
	if c.Tick.Period <= 0 {
		return errors.New("tick.period must be > 0")
	}
	if c.Curtain.FullCycles < 0 {
		return errors.New("curtain.full_cycles must be >= 0")
	}
	if c.Auth.Password == "" && c.Auth.PasswordHash == "" {
		return errors.New("auth.password or auth.password_hash is required")
	}
	return nil
}
