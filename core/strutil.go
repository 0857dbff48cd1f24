package core

// Number formatting without fmt, so event lines can be built into a
// caller-owned buffer from the main loop without allocating.

// appendUint appends the decimal form of n to dst.
func appendUint(dst []byte, n uint64) []byte {
	if n == 0 {
		return append(dst, '0')
	}

	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return append(dst, buf[pos:]...)
}

// appendInt appends the decimal form of n to dst.
func appendInt(dst []byte, n int64) []byte {
	if n < 0 {
		dst = append(dst, '-')
		return appendUint(dst, uint64(-n))
	}
	return appendUint(dst, uint64(n))
}

// itoa converts an integer to a string without using fmt package
func itoa(n int) string {
	var buf [21]byte
	return string(appendInt(buf[:0], int64(n)))
}
