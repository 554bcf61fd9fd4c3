package fastpkt

import "unsafe"

// DataPtr is a helper function to cast a data type to a pointer
func DataPtr[T any](data []byte, off int) *T                     { return (*T)(unsafe.Pointer(&data[off])) }
func DataPtrEthHeader(data []byte, off int) *EthHeader           { return DataPtr[EthHeader](data, off) }
func DataPtrLinuxSLLHeader(data []byte, off int) *LinuxSLLHeader { return DataPtr[LinuxSLLHeader](data, off) }
func DataPtrARPHeader(data []byte, off int) *ARPHeader           { return DataPtr[ARPHeader](data, off) }
func DataPtrVLANHeader(data []byte, off int) *VLANHeader         { return DataPtr[VLANHeader](data, off) }
func DataPtrIPv4Header(data []byte, off int) *IPv4Header         { return DataPtr[IPv4Header](data, off) }
func DataPtrIPv6Header(data []byte, off int) *IPv6Header         { return DataPtr[IPv6Header](data, off) }
func DataPtrTCPHeader(data []byte, off int) *TCPHeader           { return DataPtr[TCPHeader](data, off) }
func DataPtrUDPHeader(data []byte, off int) *UDPHeader           { return DataPtr[UDPHeader](data, off) }
func DataPtrICMPHeader(data []byte, off int) *ICMPHeader         { return DataPtr[ICMPHeader](data, off) }
