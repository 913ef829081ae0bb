package topology

import (
	"encoding/binary"
	"fmt"
	"net/netip"
)

// addrToUint converts an IPv4 address to its integer form.
func addrToUint(a netip.Addr) uint64 {
	b := a.As4()
	return uint64(binary.BigEndian.Uint32(b[:]))
}

// uintToAddr converts an integer back to an IPv4 address.
func uintToAddr(v uint64) netip.Addr {
	var b [4]byte
	// #nosec G115
	binary.BigEndian.PutUint32(b[:], uint32(v))
	return netip.AddrFrom4(b)
}

// allocator hands out aligned IPv4 blocks from a VPC range in order,
// the way the CDK lays out subnet configurations.
type allocator struct {
	vpc    netip.Prefix
	cursor uint64
	end    uint64
}

func newAllocator(cidr string) (*allocator, error) {
	p, err := netip.ParsePrefix(cidr)
	if err != nil {
		return nil, fmt.Errorf("invalid CIDR %q: %w", cidr, err)
	}
	if !p.Addr().Is4() {
		return nil, fmt.Errorf("only IPv4 address spaces are supported, got %s", cidr)
	}
	p = p.Masked()
	start := addrToUint(p.Addr())
	return &allocator{
		vpc:    p,
		cursor: start,
		end:    start + uint64(1)<<(32-p.Bits()),
	}, nil
}

// next returns the next free block with the given prefix length.
func (a *allocator) next(bits int) (netip.Prefix, error) {
	if bits < a.vpc.Bits() || bits > 32 {
		return netip.Prefix{}, fmt.Errorf("/%d does not fit in %s", bits, a.vpc)
	}
	size := uint64(1) << (32 - bits)
	if rem := a.cursor % size; rem != 0 {
		a.cursor += size - rem
	}
	if a.cursor+size > a.end {
		return netip.Prefix{}, fmt.Errorf("address space %s exhausted while allocating a /%d", a.vpc, bits)
	}
	p := netip.PrefixFrom(uintToAddr(a.cursor), bits)
	a.cursor += size
	return p, nil
}
