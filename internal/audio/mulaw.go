package audio

// G.711 μ-law companding. Telephony media streams carry 8-bit μ-law samples
// at 8 kHz; the transcription backend wants linear PCM-16. Decoding is a
// table lookup, encoding is the segment/mantissa decomposition from the
// standard. Decoding the same byte sequence twice is bit-identical, and
// re-encoding decoded output round-trips exactly (μ-law itself is the only
// lossy step).

const (
	mulawBias = 0x84
	mulawClip = 32635
)

// mulawToPCM maps every μ-law code point to its linear PCM-16 sample.
var mulawToPCM [256]int16

func init() {
	for i := 0; i < 256; i++ {
		u := ^uint8(i)
		exponent := (u >> 4) & 0x07
		mantissa := u & 0x0F
		magnitude := ((int32(mantissa) << 3) + mulawBias) << exponent
		magnitude -= mulawBias
		if u&0x80 != 0 {
			mulawToPCM[i] = int16(-magnitude)
		} else {
			mulawToPCM[i] = int16(magnitude)
		}
	}
}

// DecodeMulaw expands μ-law bytes to linear PCM-16 samples, one sample per
// input byte.
func DecodeMulaw(data []byte) []int16 {
	samples := make([]int16, len(data))
	for i, b := range data {
		samples[i] = mulawToPCM[b]
	}
	return samples
}

// EncodeMulaw compresses linear PCM-16 samples to μ-law bytes, one byte per
// input sample.
func EncodeMulaw(samples []int16) []byte {
	data := make([]byte, len(samples))
	for i, s := range samples {
		data[i] = encodeMulawSample(s)
	}
	return data
}

func encodeMulawSample(sample int16) byte {
	var sign uint8
	value := int32(sample)
	if value < 0 {
		value = -value
		sign = 0x80
	}
	if value > mulawClip {
		value = mulawClip
	}
	value += mulawBias

	exponent := uint8(7)
	for mask := int32(0x4000); exponent > 0 && value&mask == 0; mask >>= 1 {
		exponent--
	}
	mantissa := uint8((value >> (exponent + 3)) & 0x0F)

	return ^(sign | (exponent << 4) | mantissa)
}
