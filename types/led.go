package types

// Channel identifies one of the four LED ring groups, ordered tip to base.
type Channel uint8

const (
	ChannelTip    Channel = iota // ring 1, top of the tree
	ChannelUpper                 // ring 3, shares its pin with the microphone on debug boards
	ChannelMiddle                // ring 4
	ChannelBase                  // ring 5, bottom of the tree

	LEDCount = 4
)

// Valid reports whether c names a physical channel.
func (c Channel) Valid() bool { return c < LEDCount }

func (c Channel) String() string {
	switch c {
	case ChannelTip:
		return "tip"
	case ChannelUpper:
		return "upper"
	case ChannelMiddle:
		return "middle"
	case ChannelBase:
		return "base"
	default:
		return "invalid"
	}
}

// Brightness is one frame of per-channel PWM levels.
type Brightness [LEDCount]uint8
