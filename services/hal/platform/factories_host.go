// services/hal/platform/factories_host.go
//go:build !avr

package platform

import (
	"sync"

	"blinkytree-go/services/hal/halcore"
)

// ------------------------------ Time (host) ----------------------------------

// SimClock is a virtual microsecond clock. It implements Delayer and Timer:
// delays advance virtual time and fire the timer tick on every period
// boundary they cross, which is how the compare interrupt preempts a busy
// wait on the device.
type SimClock struct {
	mu       sync.Mutex
	nowUs    uint64
	periodUs uint64
	nextTick uint64
	tick     func()
}

func (c *SimClock) Start(hz uint32, tick func()) {
	if hz == 0 {
		return
	}
	c.mu.Lock()
	c.periodUs = 1_000_000 / uint64(hz)
	c.nextTick = c.nowUs + c.periodUs
	c.tick = tick
	c.mu.Unlock()
}

func (c *SimClock) DelayUs(us uint32) { c.Advance(uint64(us)) }

func (c *SimClock) DelayMs(ms uint32) { c.Advance(uint64(ms) * 1000) }

// Advance moves virtual time forward by us, running due ticks in order.
func (c *SimClock) Advance(us uint64) {
	c.mu.Lock()
	target := c.nowUs + us
	for c.tick != nil && c.nextTick <= target {
		c.nowUs = c.nextTick
		c.nextTick += c.periodUs
		tick := c.tick
		c.mu.Unlock()
		tick()
		c.mu.Lock()
	}
	c.nowUs = target
	c.mu.Unlock()
}

// NowUs returns virtual time since power-on.
func (c *SimClock) NowUs() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nowUs
}

// ------------------------------ GPIO (host) ----------------------------------

// Edge is one recorded change of a pin's driven state.
type Edge struct {
	Pin    int
	Driven bool // output mode and latch high
	AtUs   uint64
}

// FakePin implements GPIOPin for host-side tests.
type FakePin struct {
	mu       sync.RWMutex
	number   int
	level    bool
	modeOut  bool
	pull     halcore.Pull
	clock    *SimClock
	onChange func(Edge)
}

func (p *FakePin) ConfigureInput(pull halcore.Pull) error {
	p.mu.Lock()
	was := p.modeOut && p.level
	p.modeOut = false
	p.pull = pull
	p.level = pull == halcore.PullUp
	p.mu.Unlock()
	p.notify(was)
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	was := p.modeOut && p.level
	p.modeOut = true
	p.pull = halcore.PullNone
	p.level = initial
	p.mu.Unlock()
	p.notify(was)
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	was := p.modeOut && p.level
	p.level = level
	if !p.modeOut {
		// Latch selects the pull-up on input pins.
		if level {
			p.pull = halcore.PullUp
		} else {
			p.pull = halcore.PullNone
		}
	}
	p.mu.Unlock()
	p.notify(was)
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.level
}

func (p *FakePin) Number() int { return p.number }

// Output reports whether the pin's direction bit is set.
func (p *FakePin) Output() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

// Driven reports output mode with the latch high.
func (p *FakePin) Driven() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut && p.level
}

// Pull returns the effective pull configuration (meaningful on inputs).
func (p *FakePin) Pull() halcore.Pull {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pull
}

// OnChange registers a recorder for driven-state transitions.
func (p *FakePin) OnChange(fn func(Edge)) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

func (p *FakePin) notify(was bool) {
	p.mu.RLock()
	now := p.modeOut && p.level
	fn := p.onChange
	clk := p.clock
	p.mu.RUnlock()
	if fn == nil || now == was {
		return
	}
	var at uint64
	if clk != nil {
		at = clk.NowUs()
	}
	fn(Edge{Pin: p.number, Driven: now, AtUs: at})
}

// HostPinFactory returns stable *FakePin instances for PB0..PB5.
type HostPinFactory struct {
	mu    sync.Mutex
	clock *SimClock
	pins  map[int]*FakePin
}

func (f *HostPinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	p, ok := f.Get(n)
	if !ok {
		return nil, false
	}
	return p, true
}

// Get exposes the underlying *FakePin for tests.
func (f *HostPinFactory) Get(n int) (*FakePin, bool) {
	if n < 0 || n > 5 {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n, clock: f.clock}
		f.pins[n] = p
	}
	return p, true
}

// ------------------------------ ADC (host) -----------------------------------

// conversionUs is 13 converter clocks at 8 MHz / 128.
const conversionUs = 208

// FakeADC serves conversions from Source, stamped with virtual time.
type FakeADC struct {
	mu     sync.Mutex
	cfg    halcore.ADCConfig
	clock  *SimClock
	watch  *FakePin
	Source func(nowUs uint64) uint16

	conversions int
	hotReads    int
}

func (a *FakeADC) Configure(cfg halcore.ADCConfig) {
	a.mu.Lock()
	a.cfg = cfg
	a.mu.Unlock()
}

func (a *FakeADC) Convert() uint16 {
	a.mu.Lock()
	a.conversions++
	if a.watch != nil && a.watch.Driven() {
		a.hotReads++
	}
	src := a.Source
	a.mu.Unlock()

	var v uint16
	if src != nil {
		v = src(a.clock.NowUs())
	}
	a.clock.DelayUs(conversionUs)
	return v & 0x3FF
}

// Config returns the last applied converter configuration.
func (a *FakeADC) Config() halcore.ADCConfig {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

// Conversions counts completed conversions.
func (a *FakeADC) Conversions() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.conversions
}

// HotReads counts conversions started while the microphone pin was driven
// high as an output.
func (a *FakeADC) HotReads() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hotReads
}

// ----------------------------- EEPROM (host) ---------------------------------

// EEPROMSize matches the ATtiny85.
const EEPROMSize = 512

// MemEEPROM starts erased (0xFF) like a blank part.
type MemEEPROM struct {
	mu     sync.Mutex
	mem    [EEPROMSize]byte
	writes int
}

func NewMemEEPROM() *MemEEPROM {
	e := &MemEEPROM{}
	for i := range e.mem {
		e.mem[i] = 0xFF
	}
	return e
}

func (e *MemEEPROM) ReadByte(addr uint16) byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mem[addr%EEPROMSize]
}

func (e *MemEEPROM) WriteByte(addr uint16, v byte) {
	e.mu.Lock()
	e.mem[addr%EEPROMSize] = v
	e.writes++
	e.mu.Unlock()
}

// Writes counts physical write cycles.
func (e *MemEEPROM) Writes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.writes
}

// ------------------------------ CPU (host) -----------------------------------

type FakeCPU struct{ full bool }

func (c *FakeCPU) FullSpeed()        { c.full = true }
func (c *FakeCPU) IsFullSpeed() bool { return c.full }

// ------------------------------ Board (host) ---------------------------------

// Host is a complete simulated board.
type Host struct {
	Layout halcore.Layout
	Clock  *SimClock
	Pins   *HostPinFactory
	ADC    *FakeADC
	EEPROM *MemEEPROM
	CPU    *FakeCPU
}

// NewHost builds a simulated board wired per layout.
func NewHost(layout halcore.Layout) *Host {
	clk := &SimClock{}
	pins := &HostPinFactory{clock: clk}
	mic, _ := pins.Get(layout.MicPin)
	return &Host{
		Layout: layout,
		Clock:  clk,
		Pins:   pins,
		ADC:    &FakeADC{clock: clk, watch: mic},
		EEPROM: NewMemEEPROM(),
		CPU:    &FakeCPU{},
	}
}

// Board exposes the simulated hardware through the halcore interfaces.
func (h *Host) Board() halcore.Board {
	return halcore.Board{
		Layout: h.Layout,
		Pins:   h.Pins,
		ADC:    h.ADC,
		EEPROM: h.EEPROM,
		Delay:  h.Clock,
		Timer:  h.Clock,
		CPU:    h.CPU,
	}
}

// Pin returns the fake behind port bit n.
func (h *Host) Pin(n int) *FakePin {
	p, _ := h.Pins.Get(n)
	return p
}

// Default returns a board for rev. On the host it is a fresh simulator.
func Default(rev halcore.Revision) halcore.Board {
	return NewHost(halcore.LayoutFor(rev)).Board()
}
