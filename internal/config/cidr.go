package config

import (
	"encoding/binary"
	"fmt"
	"net"
)

// CIDRSubnet calculates a subnet address given a network address, a netmask
// size increase, and a subnet number, carving the nth sub-prefix out of the
// parent block.
//
// Only IPv4 prefixes are supported.
func CIDRSubnet(prefix string, newbits, netnum int) (string, error) {
	network, err := parseIPv4CIDR(prefix)
	if err != nil {
		return "", err
	}

	maskSize, totalBits := network.Mask.Size()
	newMaskSize := maskSize + newbits
	if newMaskSize > totalBits {
		return "", fmt.Errorf("prefix extension of %d bits is too large for %s", newbits, prefix)
	}
	if netnum >= 1<<newbits {
		return "", fmt.Errorf("subnet number %d exceeds max subnets %d", netnum, 1<<newbits)
	}

	base := ipv4ToUint(network.IP)
	// #nosec G115
	base += uint64(netnum) * (1 << (totalBits - newMaskSize))

	return fmt.Sprintf("%s/%d", uintToIPv4(base).String(), newMaskSize), nil
}

// CIDRWithin reports whether sub is fully contained in outer.
func CIDRWithin(outer, sub string) (bool, error) {
	outerNet, err := parseIPv4CIDR(outer)
	if err != nil {
		return false, err
	}
	subNet, err := parseIPv4CIDR(sub)
	if err != nil {
		return false, err
	}

	outerSize, _ := outerNet.Mask.Size()
	subSize, _ := subNet.Mask.Size()
	if subSize < outerSize {
		return false, nil
	}

	subStart, subEnd := cidrRange(subNet)
	outerStart, outerEnd := cidrRange(outerNet)
	return subStart >= outerStart && subEnd <= outerEnd, nil
}

// CIDROverlap reports whether the two blocks share any address.
func CIDROverlap(a, b string) (bool, error) {
	aNet, err := parseIPv4CIDR(a)
	if err != nil {
		return false, err
	}
	bNet, err := parseIPv4CIDR(b)
	if err != nil {
		return false, err
	}

	aStart, aEnd := cidrRange(aNet)
	bStart, bEnd := cidrRange(bNet)
	return aStart <= bEnd && bStart <= aEnd, nil
}

// parseIPv4CIDR parses prefix and rejects IPv6.
func parseIPv4CIDR(prefix string) (*net.IPNet, error) {
	_, network, err := net.ParseCIDR(prefix)
	if err != nil {
		return nil, fmt.Errorf("invalid CIDR prefix: %w", err)
	}
	if network.IP.To4() == nil {
		return nil, fmt.Errorf("only IPv4 addresses are supported, got IPv6: %s", prefix)
	}
	return network, nil
}

// cidrRange returns the first and last address of the block as integers.
func cidrRange(network *net.IPNet) (uint64, uint64) {
	maskSize, totalBits := network.Mask.Size()
	start := ipv4ToUint(network.IP)
	end := start + (1 << (totalBits - maskSize)) - 1
	return start, end
}

// ipv4ToUint converts an IPv4 address to uint64.
func ipv4ToUint(ip net.IP) uint64 {
	if ip4 := ip.To4(); ip4 != nil {
		return uint64(binary.BigEndian.Uint32(ip4))
	}
	return 0
}

// uintToIPv4 converts a uint64 value back to an IPv4 address.
func uintToIPv4(val uint64) net.IP {
	ip := make(net.IP, 4)
	// #nosec G115
	binary.BigEndian.PutUint32(ip, uint32(val))
	return ip
}
