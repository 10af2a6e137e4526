package hardware

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// LEDSink drives a common-anode RGB LED on three GPIO pins. Common anode
// means a low level lights the channel, so "off" is all pins high.
type LEDSink struct {
	r, g, b gpio.PinIO
}

// NewLEDSink initializes the GPIO host and claims the three pins by name
// (e.g. "GPIO17"). Pins start high, LED off.
func NewLEDSink(rPin, gPin, bPin string) (*LEDSink, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("gpio init: %w", err)
	}
	s := &LEDSink{}
	for _, p := range []struct {
		name string
		pin  *gpio.PinIO
	}{
		{rPin, &s.r},
		{gPin, &s.g},
		{bPin, &s.b},
	} {
		pin := gpioreg.ByName(p.name)
		if pin == nil {
			return nil, fmt.Errorf("gpio pin %q not found", p.name)
		}
		if err := pin.Out(gpio.High); err != nil {
			return nil, fmt.Errorf("setup pin %q: %w", p.name, err)
		}
		*p.pin = pin
	}
	log.Printf("LED sink ready on pins R=%s G=%s B=%s", rPin, gPin, bPin)
	return s, nil
}

// SetStatus shows the color for the given status.
func (s *LEDSink) SetStatus(status int) error {
	return s.setColor(ColorForStatus(status))
}

func (s *LEDSink) setColor(color string) error {
	// Channel levels per color; low lights the channel.
	var r, g, b gpio.Level = gpio.High, gpio.High, gpio.High
	switch color {
	case "red":
		r = gpio.Low
	case "yellow":
		r, g = gpio.Low, gpio.Low
	case "green":
		g = gpio.Low
	case "blue":
		b = gpio.Low
	case "purple":
		r, b = gpio.Low, gpio.Low
	case "off":
	default:
		return fmt.Errorf("unknown color: %s", color)
	}
	if err := s.r.Out(r); err != nil {
		return err
	}
	if err := s.g.Out(g); err != nil {
		return err
	}
	return s.b.Out(b)
}

// Close turns the LED off.
func (s *LEDSink) Close() error {
	return s.setColor("off")
}
