package enums

import "fmt"

// LinuxSLLPacketType is the sll_pkttype of a Linux cooked capture header,
// see packet(7).
type LinuxSLLPacketType uint16

const (
	LinuxSLLPacketTypeHost      LinuxSLLPacketType = 0 // to us
	LinuxSLLPacketTypeBroadcast LinuxSLLPacketType = 1 // to all
	LinuxSLLPacketTypeMulticast LinuxSLLPacketType = 2 // to group
	LinuxSLLPacketTypeOtherHost LinuxSLLPacketType = 3 // to someone else
	LinuxSLLPacketTypeOutgoing  LinuxSLLPacketType = 4 // outgoing of any type
	LinuxSLLPacketTypeLoopback  LinuxSLLPacketType = 5 // MC/BRD frame looped back
	LinuxSLLPacketTypeFastRoute LinuxSLLPacketType = 6
)

var linuxSLLPacketTypeNames = [...]string{
	LinuxSLLPacketTypeHost:      "Host",
	LinuxSLLPacketTypeBroadcast: "Broadcast",
	LinuxSLLPacketTypeMulticast: "Multicast",
	LinuxSLLPacketTypeOtherHost: "OtherHost",
	LinuxSLLPacketTypeOutgoing:  "Outgoing",
	LinuxSLLPacketTypeLoopback:  "Loopback",
	LinuxSLLPacketTypeFastRoute: "FastRoute",
}

// IsOutgoing reports whether the frame was sent by the capturing host.
func (t LinuxSLLPacketType) IsOutgoing() bool { return t == LinuxSLLPacketTypeOutgoing }

func (t LinuxSLLPacketType) String() string {
	if int(t) < len(linuxSLLPacketTypeNames) {
		return linuxSLLPacketTypeNames[t]
	}
	return fmt.Sprintf("LinuxSLLPacketType(%d)", uint16(t))
}
