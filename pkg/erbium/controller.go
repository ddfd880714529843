// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package erbium

// Transport moves frame bytes to and from a device. Implementations own all
// blocking, timeout, and serialization concerns; the codec never blocks on
// its own. A successful Read of zero bytes means the device did not answer
// within the transport's deadline, distinct from a transport error.
type Transport interface {
	Write(p []byte) error
	Read(maxLen int) ([]byte, error)
}

// Controller drives one EDFA module over a Transport. The device address is
// fixed for the lifetime of the controller. A Controller holds no mutable
// state across exchanges, so it is safe to share across goroutines as long
// as the callers serialize access to the underlying transport: the exchange
// is half-duplex, one outstanding request per physical link.
type Controller struct {
	address   [2]byte
	transport Transport
}

// NewController creates a controller for the device at the given address.
func NewController(address [2]byte, transport Transport) *Controller {
	return &Controller{address: address, transport: transport}
}

// Address returns the device address this controller talks to.
func (c *Controller) Address() [2]byte {
	return c.address
}

// Execute performs one request/response exchange for the named operation:
// catalog lookup, frame encoding, transport exchange, envelope validation,
// and response decoding. It fails fast at the first error and never retries;
// retry/backoff policy belongs to the transport or the caller.
func (c *Controller) Execute(op Operation, args ...byte) (Record, error) {
	desc, err := Lookup(op)
	if err != nil {
		return nil, err
	}
	if len(args) != desc.ArgCount {
		return nil, &ArgumentCountError{Op: op, Want: desc.ArgCount, Got: len(args)}
	}

	raw, err := c.exchange(EncodeFrame(c.address, desc.Command, args))
	if err != nil {
		return nil, err
	}

	payload, err := DecodeEnvelope(raw)
	if err != nil {
		return nil, err
	}

	if desc.decode == nil {
		return Ack{Payload: payload}, nil
	}
	return desc.decode(payload)
}

// SendRaw transmits a caller-built frame verbatim and returns the raw
// response bytes. This is the diagnostic escape hatch: no envelope or CRC
// validation is performed on either side.
func (c *Controller) SendRaw(frame []byte) ([]byte, error) {
	return c.exchange(frame)
}

func (c *Controller) exchange(frame []byte) ([]byte, error) {
	if err := c.transport.Write(frame); err != nil {
		return nil, &TransportFailure{Err: err}
	}
	raw, err := c.transport.Read(MaxResponseSize)
	if err != nil {
		return nil, &TransportFailure{Err: err}
	}
	if len(raw) == 0 {
		return nil, ErrNoResponse
	}
	return raw, nil
}

// Typed query helpers. These mirror the semantic operations one to one and
// save callers the Record type assertion.

// GetModuleStatus queries the status flag byte(s) for an amplifier.
func (c *Controller) GetModuleStatus(amp uint8) (ModuleStatusList, error) {
	rec, err := c.Execute(OpGetModuleStatus, amp)
	if err != nil {
		return nil, err
	}
	return rec.(ModuleStatusList), nil
}

// GetModeStatus queries the operating mode of an amplifier.
func (c *Controller) GetModeStatus(amp uint8) (ModeStatus, error) {
	rec, err := c.Execute(OpGetModeStatus, amp)
	if err != nil {
		return ModeStatus{}, err
	}
	return rec.(ModeStatus), nil
}

// GetTemperature queries the ambient and erbium coil temperatures.
func (c *Controller) GetTemperature(amp uint8) (Temperature, error) {
	rec, err := c.Execute(OpGetTemperature, amp)
	if err != nil {
		return Temperature{}, err
	}
	return rec.(Temperature), nil
}

// GetInputPower queries the optical input power reading(s).
func (c *Controller) GetInputPower(amp uint8) (PowerReadings, error) {
	rec, err := c.Execute(OpGetInputPower, amp)
	if err != nil {
		return nil, err
	}
	return rec.(PowerReadings), nil
}

// GetOutputPower queries the total optical output power reading(s).
func (c *Controller) GetOutputPower(amp uint8) (PowerReadings, error) {
	rec, err := c.Execute(OpGetOutputPower, amp)
	if err != nil {
		return nil, err
	}
	return rec.(PowerReadings), nil
}

// GetOutputSignalPower queries the signal portion of the output power.
func (c *Controller) GetOutputSignalPower(amp uint8) (PowerReadings, error) {
	rec, err := c.Execute(OpGetOutputSignalPower, amp)
	if err != nil {
		return nil, err
	}
	return rec.(PowerReadings), nil
}

// GetSignalGain queries the signal gain in dB.
func (c *Controller) GetSignalGain(amp uint8) (PowerReadings, error) {
	rec, err := c.Execute(OpGetSignalGain, amp)
	if err != nil {
		return nil, err
	}
	return rec.(PowerReadings), nil
}

// GetPumpLaserStatus queries the diagnostic block of one pump laser.
func (c *Controller) GetPumpLaserStatus(amp, laser uint8) (PumpLaserStatus, error) {
	rec, err := c.Execute(OpGetPumpLaserStatus, amp, laser)
	if err != nil {
		return PumpLaserStatus{}, err
	}
	return rec.(PumpLaserStatus), nil
}

// GetAlarmStatus queries the current and latched alarm words.
func (c *Controller) GetAlarmStatus(amp uint8) (AlarmStatus, error) {
	rec, err := c.Execute(OpGetAlarmStatus, amp)
	if err != nil {
		return nil, err
	}
	return rec.(AlarmStatus), nil
}

// GetVOAMode queries the variable optical attenuator state.
func (c *Controller) GetVOAMode(amp uint8) (VOAStatusList, error) {
	rec, err := c.Execute(OpGetVOAMode, amp)
	if err != nil {
		return nil, err
	}
	return rec.(VOAStatusList), nil
}

// Typed control helpers.

// SetMode switches an amplifier's operating mode.
func (c *Controller) SetMode(amp uint8, mode AmpMode) (Ack, error) {
	return c.ack(OpSetMode, amp, byte(mode))
}

// SetPumpCurrent sets one pump laser's drive current setpoint.
func (c *Controller) SetPumpCurrent(amp, laser, current uint8) (Ack, error) {
	return c.ack(OpSetPumpCurrent, amp, laser, current)
}

// SetGainTilt adjusts the gain tilt setpoint.
func (c *Controller) SetGainTilt(amp uint8, tilt int8) (Ack, error) {
	return c.ack(OpSetGainTilt, amp, byte(tilt))
}

// SetVOAMode switches the variable optical attenuator's mode.
func (c *Controller) SetVOAMode(amp uint8, mode VOAMode) (Ack, error) {
	return c.ack(OpSetVOAMode, amp, byte(mode))
}

// SetGainStageMode switches one gain stage's mode.
func (c *Controller) SetGainStageMode(amp, mode uint8) (Ack, error) {
	return c.ack(OpSetGainStageMode, amp, mode)
}

func (c *Controller) ack(op Operation, args ...byte) (Ack, error) {
	rec, err := c.Execute(op, args...)
	if err != nil {
		return Ack{}, err
	}
	return rec.(Ack), nil
}
