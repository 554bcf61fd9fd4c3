package enums

import "github.com/google/gopacket/layers"

// Conversions to the gopacket layer enums. The numeric values are shared,
// so these never fail.

func (t EthernetType) Layers() layers.EthernetType { return layers.EthernetType(t) }
func (p IPProtocol) Layers() layers.IPProtocol     { return layers.IPProtocol(p) }
func (t LinkType) Layers() layers.LinkType         { return layers.LinkType(t) }

// LinkTypeFromLayers converts a gopacket link type, failing for codes the
// registry does not carry. gopacket keeps link types in 8 bits, so file
// headers go through LinkTypeFromHeader instead.
func LinkTypeFromLayers(t layers.LinkType) (LinkType, error) {
	return LinkTypeFrom(uint8(t))
}
