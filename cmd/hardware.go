package main

import (
	"fmt"

	"github.com/spf13/afero"

	"smartroom/internal/config"
	"smartroom/internal/device"
	"smartroom/internal/device/hw"
	"smartroom/internal/device/i2cbus"
	"smartroom/internal/logger"
	"smartroom/internal/service"
)

// openHardware builds the node's collaborators for the configured mode.
// The returned func releases whatever was opened.
func openHardware(cfg config.HardwareConfig, log *logger.Logger) (service.Hardware, func(), error) {
	switch cfg.Mode {
	case config.ModeI2C:
		return openI2C(cfg, log)
	default:
		return service.Hardware{
			Display: device.NewSimDisplay(log),
			RTC:     device.NewSimRTC(nil),
			Motor:   &device.SimMotor{},
			PWM:     &device.SimPWM{},
		}, func() {}, nil
	}
}

func openI2C(cfg config.HardwareConfig, log *logger.Logger) (service.Hardware, func(), error) {
	bus, err := i2cbus.Open(cfg.I2CBus)
	if err != nil {
		return service.Hardware{}, nil, err
	}
	fail := func(err error) (service.Hardware, func(), error) {
		_ = bus.Close()
		return service.Hardware{}, nil, err
	}

	lcd, err := hw.NewLCD(bus, cfg.DisplayAddr)
	if err != nil {
		return fail(fmt.Errorf("lcd: %w", err))
	}
	rtc, err := hw.NewRTC(bus, cfg.RTCAddr)
	if err != nil {
		return fail(fmt.Errorf("rtc: %w", err))
	}
	pwm, err := hw.NewSysfsPWM(afero.NewOsFs(), cfg.PWMPath, cfg.PWMPeriodNs)
	if err != nil {
		return fail(fmt.Errorf("pwm: %w", err))
	}
	motor := hw.NewExpanderMotor(bus, cfg.MotorAddr)

	release := func() {
		if err := motor.Release(); err != nil {
			log.Warnw("failed to release motor coils", "err", err)
		}
		if err := bus.Close(); err != nil {
			log.Warnw("failed to close i2c bus", "err", err)
		}
	}
	return service.Hardware{Display: lcd, RTC: rtc, Motor: motor, PWM: pwm}, release, nil
}
