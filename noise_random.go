// noise_random.go - Uniform pseudorandom sources feeding the noise generator

package main

import "math"

// RandomSource produces uniformly distributed values in [0,1).
// Implementations are not safe for concurrent use; each Noise signal owns
// its own source for the duration of a render.
type RandomSource interface {
	Float64() float64
}

const (
	DEK_MBIG  = 1000000000
	DEK_MSEED = 161803398
	DEK_FAC   = 1.0 / DEK_MBIG
)

// DEKSource is Knuth's subtractive generator (lagged Fibonacci over a 55
// entry table, slot 0 unused).
type DEKSource struct {
	table  [56]int32
	inext  int
	inextp int
	seeded bool
	seed   int32

	// reseedEachCall restores the table from seed before every draw, which
	// makes every value identical. Kept for bit-parity with old renders.
	reseedEachCall bool
}

// NewDEKSource returns a generator that initialises from seed on first use.
func NewDEKSource(seed int32) *DEKSource {
	return &DEKSource{seed: seed}
}

// NewLegacyDEKSource returns a generator that reinitialises from seed on
// every call.
func NewLegacyDEKSource(seed int32) *DEKSource {
	return &DEKSource{seed: seed, reseedEachCall: true}
}

func (d *DEKSource) reset(seed int32) {
	mj := absInt32(DEK_MSEED - absInt32(seed))
	mj %= DEK_MBIG
	d.table[55] = mj
	mk := int32(1)
	for i := 1; i <= 54; i++ {
		ii := (21 * i) % 55
		d.table[ii] = mk
		mk = mj - mk
		if mk < 0 {
			mk += DEK_MBIG
		}
		mj = d.table[ii]
	}
	for k := 0; k < 4; k++ {
		for i := 1; i <= 55; i++ {
			d.table[i] -= d.table[1+(i+30)%55]
			if d.table[i] < 0 {
				d.table[i] += DEK_MBIG
			}
		}
	}
	d.inext = 0
	d.inextp = 31
	d.seeded = true
}

func (d *DEKSource) Float64() float64 {
	if !d.seeded || d.reseedEachCall {
		d.reset(d.seed)
	}
	d.inext++
	if d.inext == 56 {
		d.inext = 1
	}
	d.inextp++
	if d.inextp == 56 {
		d.inextp = 1
	}
	mj := d.table[d.inext] - d.table[d.inextp]
	if mj < 0 {
		mj += DEK_MBIG
	}
	d.table[d.inext] = mj
	return float64(mj) * DEK_FAC
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

var (
	nagC1 = [4]uint32{0xbaa96887, 0x1e17d32c, 0x03bcdc3c, 0x0f33d1b2}
	nagC2 = [4]uint32{0x4b0f3b58, 0xe874f0c3, 0x6955c5a6, 0x55a7ca46}
)

const (
	NAG_FLOAT_ONE  = 0x3f800000
	NAG_FLOAT_MASK = 0x007fffff
)

// NAGSource hashes an incrementing counter through four pseudo-DES rounds.
type NAGSource struct {
	word    uint32
	counter uint32
}

// NewNAGSource starts the counter at seed. A negative seed selects the
// companion word -seed and restarts the counter at 1.
func NewNAGSource(seed int32) *NAGSource {
	if seed < 0 {
		return &NAGSource{word: uint32(-int64(seed)), counter: 1}
	}
	return &NAGSource{counter: uint32(seed)}
}

func (n *NAGSource) Float64() float64 {
	_, right := pseudoDES(n.word, n.counter)
	n.counter++
	bits := NAG_FLOAT_ONE | (NAG_FLOAT_MASK & right)
	return float64(math.Float32frombits(bits)) - 1
}

// pseudoDES runs the four mixing rounds over the (left, right) word pair.
func pseudoDES(left, right uint32) (uint32, uint32) {
	for i := range nagC1 {
		swap := right
		ia := right ^ nagC1[i]
		lo := ia & 0xffff
		hi := ia >> 16
		ib := lo*lo + ^(hi * hi)
		ia = (ib >> 16) | ((ib & 0xffff) << 16)
		right = left ^ ((ia ^ nagC2[i]) + lo*hi)
		left = swap
	}
	return left, right
}
